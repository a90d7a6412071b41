// Package router sets up all HTTP routes and middleware chains for the
// inkwell API. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/authgate"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. limiter may be nil when Valkey is not
// available; rate limiting is then skipped.
func New(gate *authgate.Gate, limiter *middleware.RateLimiter, posts *handlers.Posts, categories *handlers.Categories, images *handlers.Images) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	if limiter != nil {
		r.Use(limiter.Middleware)
	}

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Public catalog reads — no credentials required.
		r.Get("/posts", posts.List)
		r.Get("/posts/{id}", posts.Get)
		r.Get("/categories", categories.List)

		// Admin mutations — every request is verified against the
		// identity provider.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth(gate))

			r.Route("/posts", func(r chi.Router) {
				r.Post("/", posts.Create)
				r.Put("/{id}", posts.Update)
				r.Delete("/{id}", posts.Delete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", categories.Create)
				r.Delete("/{id}", categories.Delete)
			})

			r.Post("/images", images.Upload)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
