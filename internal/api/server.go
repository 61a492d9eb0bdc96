package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/memomaster/backend/internal/api/docs"
	documentapi "github.com/memomaster/backend/internal/api/document"
	"github.com/memomaster/backend/internal/api/middleware"
	studyapi "github.com/memomaster/backend/internal/api/study"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(studyHandler *studyapi.Handler, documentHandler *documentapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                  // Recover from panics
	r.Use(chimiddleware.RequestID)                  // Add request ID
	r.Use(middleware.Logger(logger))                // Log requests
	r.Use(middleware.CORS)                          // Handle CORS
	r.Use(chimiddleware.Timeout(120 * time.Second)) // Generation calls are slow

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	studyapi.RegisterRoutes(r, studyHandler)
	documentapi.RegisterRoutes(r, documentHandler)

	return r
}
