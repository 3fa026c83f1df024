package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tcadundee/hobby-finder/api/internal/auth"
	"github.com/tcadundee/hobby-finder/api/internal/config"
	"github.com/tcadundee/hobby-finder/api/internal/handler"
	middlewarepkg "github.com/tcadundee/hobby-finder/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth       *handler.AuthHandler
	Search     *handler.SearchHandler
	Places     *handler.PlacesHandler
	Settings   *handler.SettingsHandler
	Hobbies    *handler.HobbiesHandler
	Favourites *handler.FavouritesHandler
	CacheAdmin *handler.CacheAdminHandler
	Assets     *handler.AssetsHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)

	// The API is usable anonymously; a valid token switches state from the
	// guest namespace to the caller's own.
	api := e.Group("/api", middlewarepkg.OptionalJWT(jwtManager))
	api.GET("/search", handlers.Search.Search, middlewarepkg.SearchRateLimiter(cfg.RateLimitSearch))
	api.GET("/places/:id", handlers.Places.Details)

	api.GET("/settings", handlers.Settings.GetSettings)
	api.PUT("/settings", handlers.Settings.SaveSettings)
	api.GET("/profile", handlers.Settings.GetProfile)
	api.PUT("/profile", handlers.Settings.SaveProfile)
	api.GET("/recents", handlers.Settings.GetRecents)

	api.GET("/hobbies", handlers.Hobbies.List)
	api.POST("/hobbies", handlers.Hobbies.AddCustom)
	api.GET("/hobbies/random", handlers.Hobbies.Random)

	api.GET("/favourites", handlers.Favourites.List)
	api.POST("/favourites", handlers.Favourites.Add)
	api.DELETE("/favourites/:placeID", handlers.Favourites.Remove)

	admin := e.Group("/admin", middlewarepkg.JWT(jwtManager), middlewarepkg.RequireRole("admin"))
	admin.POST("/cache/install", handlers.CacheAdmin.Install)
	admin.POST("/cache/activate", handlers.CacheAdmin.Activate)

	// Everything else is the cached application shell.
	e.GET("/*", handlers.Assets.Serve)
}
