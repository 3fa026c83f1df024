package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/tcadundee/hobby-finder/api/internal/auth"
	"github.com/tcadundee/hobby-finder/api/internal/cache"
	"github.com/tcadundee/hobby-finder/api/internal/config"
	"github.com/tcadundee/hobby-finder/api/internal/database"
	"github.com/tcadundee/hobby-finder/api/internal/handler"
	middlewarepkg "github.com/tcadundee/hobby-finder/api/internal/middleware"
	"github.com/tcadundee/hobby-finder/api/internal/places"
	"github.com/tcadundee/hobby-finder/api/internal/repository"
	"github.com/tcadundee/hobby-finder/api/internal/router"
	"github.com/tcadundee/hobby-finder/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewSQLiteUsersRepository(db)
	stateRepo := repository.NewSQLiteStateRepository(db)
	cacheRepo := repository.NewSQLiteCacheRepository(db)

	httpClient := &http.Client{Timeout: 15 * time.Second}
	source := places.NewGoogleSource(httpClient, "", cfg.MapsAPIKey)
	geocoder := places.NewGoogleGeocoder(httpClient, "", cfg.MapsAPIKey)
	gateway := places.NewGateway(source)

	settingsService := service.NewSettingsService(stateRepo)
	recentsService := service.NewRecentsService(stateRepo)
	resolver := service.NewLocationResolver(stateRepo, geocoder)
	searchService := service.NewSearchService(gateway, resolver, settingsService, recentsService, stateRepo)
	authService := service.NewAuthService(usersRepo, jwtManager)
	hobbiesService := service.NewHobbiesService(stateRepo)
	favouritesService := service.NewFavouritesService(stateRepo)

	cacheManager := cache.NewManager(
		cache.DefaultManifest(cfg.CacheVersion),
		cacheRepo,
		cache.NewHTTPFetcher(httpClient, cfg.UpstreamBaseURL),
	)

	// Warm the asset cache before taking traffic. A failed install is not
	// fatal: assets fall back to live fetches until an admin reinstalls.
	if err := cacheManager.Install(ctx); err != nil {
		log.Printf("cache install skipped: %v", err)
	} else if err := cacheManager.Activate(ctx); err != nil {
		log.Printf("cache activate failed: %v", err)
	}

	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Search:     handler.NewSearchHandler(searchService),
		Places:     handler.NewPlacesHandler(gateway),
		Settings:   handler.NewSettingsHandler(settingsService, recentsService),
		Hobbies:    handler.NewHobbiesHandler(hobbiesService),
		Favourites: handler.NewFavouritesHandler(favouritesService),
		CacheAdmin: handler.NewCacheAdminHandler(cacheManager),
		Assets:     handler.NewAssetsHandler(cacheManager),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
