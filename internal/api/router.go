// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"exercise-tracker/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(trackerHandler *handler.TrackerHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)                       // Add a request ID to the context
	r.Use(middleware.RealIP)                          // Use the real IP address
	r.Use(middleware.Logger)                          // Log HTTP requests
	r.Use(middleware.Recoverer)                       // Recover from panics and return 500
	r.Use(middleware.Timeout(handler.DefaultTimeout)) // Set a default timeout for requests

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Static landing page and assets
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join("views", "index.html"))
	})
	r.Handle("/public/*", http.StripPrefix("/public/", http.FileServer(http.Dir("public"))))

	// Tracker API routes
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", trackerHandler.CreateUser)
		r.Get("/", trackerHandler.ListUsers)
		r.Post("/{_id}/exercises", trackerHandler.AddExercise)
		r.Get("/{_id}/logs", trackerHandler.GetLogs)
	})

	return r
}
