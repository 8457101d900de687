package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"waveo-api/internal/config"
	"waveo-api/internal/database"
	"waveo-api/internal/handler"
	"waveo-api/internal/middleware"
	"waveo-api/internal/repository"
	"waveo-api/internal/router"
	"waveo-api/internal/service"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	// One pool handle, injected everywhere; nothing holds a package-level
	// client.
	pool := db.Pool
	accountRepo := repository.NewAccountRepository(pool)
	favoriteRepo := repository.NewFavoriteRepository(pool)
	slog.Info("database ready")

	authService, err := service.NewAuthService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.JWTAccessTTL, cfg.JWTRefreshTTL, accountRepo)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	favoriteService := service.NewFavoriteService(accountRepo, favoriteRepo)
	geocodeService, err := service.NewGeocodeService(cfg.GeocodeBaseURL, cfg.GeocodeUserAgent,
		cfg.GeocodeTimeout, cfg.GeocodeCacheTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize geocode service: %w", err)
	}

	authMiddleware := middleware.NewAuthMiddleware(authService)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:     handler.NewAuthHandler(authService, cfg.CookieSecure),
		Profile:  handler.NewProfileHandler(favoriteService),
		Favorite: handler.NewFavoriteHandler(favoriteService),
		Geocode:  handler.NewGeocodeHandler(geocodeService),
		User:     handler.NewUserHandler(authService),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.db.Close()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
