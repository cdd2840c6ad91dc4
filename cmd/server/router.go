package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/studyowl/studyowl-api/internal/api"
	apiMiddleware "github.com/studyowl/studyowl-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(
		app.userService,
		app.jwtService,
		app.passwordVerifier,
		app.lessonService,
	)
	lessonHandler := api.NewLessonHandler(app.lessonService, app.logger)
	accountHandler := api.NewAccountHandler(
		app.userService,
		app.lessonService,
		app.passwordVerifier,
		app.logger,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/auth/logout", authHandler.Logout)

			// Account endpoints
			r.Get("/account", accountHandler.GetAccount)
			r.Post("/account/premium", accountHandler.UpgradePremium)
			r.Patch("/account/password", accountHandler.UpdatePassword)
			r.Delete("/account", accountHandler.DeleteAccount)

			// Lesson endpoints
			r.Post("/lessons", lessonHandler.CreateLesson)
			r.Get("/lessons", lessonHandler.ListLessons)
			r.Get("/lessons/{id}", lessonHandler.GetLesson)
			r.Delete("/lessons/{id}", lessonHandler.DeleteLesson)
			r.Patch("/lessons/{id}/progress", lessonHandler.UpdateProgress)

			// Content generation endpoints
			r.Post("/lessons/{id}/notes", lessonHandler.GenerateNotes)
			r.Post("/lessons/{id}/flashcards", lessonHandler.GenerateFlashcards)
			r.Post("/lessons/{id}/quiz", lessonHandler.GenerateQuiz)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
