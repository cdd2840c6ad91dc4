package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/studyowl/studyowl-api/internal/config"
	"github.com/studyowl/studyowl-api/internal/domain/entitlement"
	"github.com/studyowl/studyowl-api/internal/platform/postgres"
	"github.com/studyowl/studyowl-api/internal/platform/templategen"
	"github.com/studyowl/studyowl-api/internal/service"
	"github.com/studyowl/studyowl-api/internal/service/auth"
	"github.com/studyowl/studyowl-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	blobStore store.BlobStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	userService      service.UserService
	lessonService    service.LessonService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies that must be established before
// application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewUserStore(db, logger)
	app.blobStore = postgres.NewBlobStore(db, logger)

	app.userService = service.NewUserService(app.userStore, db, logger)

	identity, err := service.NewUserIdentityAdapter(app.userStore)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity adapter: %w", err)
	}

	policy := entitlement.NewPolicyWithParams(&entitlement.Params{
		FreeLessonLimit: cfg.Entitlement.FreeLessonLimit,
	})

	generator := templategen.New(logger)

	app.lessonService, err = service.NewLessonService(
		app.blobStore,
		identity,
		generator,
		policy,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create lesson service: %w", err)
	}
	logger.Info("Lesson service initialized",
		"free_lesson_limit", cfg.Entitlement.FreeLessonLimit)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
