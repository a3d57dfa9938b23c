package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"media-review/internal/adaptor"
	"media-review/pkg/middleware"
)

func wireUser(r chi.Router, h *adaptor.UserHandler, logger *zap.Logger) {
	r.Route("/users", func(r chi.Router) {
		// Self-profile, any authenticated user. Registered before the
		// {username} routes so "me" is never treated as a username.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", h.GetMe)
			r.Patch("/me", h.UpdateMe)
		})

		// Admin-only user management.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logger))
			r.Get("/", h.List)
			r.Post("/", h.Create)
			r.Get("/{username}", h.Get)
			r.Patch("/{username}", h.Update)
			r.Delete("/{username}", h.Delete)
		})
	})
}
