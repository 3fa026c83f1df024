package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tcadundee/hobby-finder/api/internal/repository"
)

const maxRecentKeywords = 30

// RecentsService maintains the per-user list of recently searched keywords,
// most recent first, deduplicated, capped at 30 entries.
type RecentsService struct {
	state repository.StateRepository
}

// NewRecentsService constructs a RecentsService.
func NewRecentsService(state repository.StateRepository) *RecentsService {
	return &RecentsService{state: state}
}

// List returns the user's recent keywords, newest first.
func (s *RecentsService) List(ctx context.Context, userID string) ([]string, error) {
	raw, ok, err := s.state.Get(ctx, repository.UserKey(userID, keyRecentList))
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}

	var recents []string
	if err := json.Unmarshal([]byte(raw), &recents); err != nil {
		return []string{}, nil
	}
	return recents, nil
}

// Push records a keyword: any prior occurrence is removed, the keyword is
// prepended, and the list is trimmed to the cap.
func (s *RecentsService) Push(ctx context.Context, userID, keyword string) error {
	recents, err := s.List(ctx, userID)
	if err != nil {
		return err
	}

	next := make([]string, 0, len(recents)+1)
	next = append(next, keyword)
	for _, existing := range recents {
		if existing != keyword {
			next = append(next, existing)
		}
	}
	if len(next) > maxRecentKeywords {
		next = next[:maxRecentKeywords]
	}

	encoded, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode recent keywords: %w", err)
	}
	return s.state.Set(ctx, repository.UserKey(userID, keyRecentList), string(encoded))
}
