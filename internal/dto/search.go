package dto

import "github.com/tcadundee/hobby-finder/api/internal/entity"

// SearchResponse is the payload returned by the search endpoint.
type SearchResponse struct {
	Keyword string         `json:"keyword"`
	Origin  entity.Origin  `json:"origin"`
	Count   int            `json:"count"`
	Places  []entity.Place `json:"places"`
}

// AddHobbyRequest adds a custom hobby to the catalogue.
type AddHobbyRequest struct {
	Name string `json:"name"`
}
