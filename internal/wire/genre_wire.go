package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"media-review/internal/adaptor"
	"media-review/pkg/middleware"
)

func wireGenre(r chi.Router, h *adaptor.GenreHandler, logger *zap.Logger) {
	r.Route("/genres", func(r chi.Router) {
		r.Get("/", h.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logger))
			r.Post("/", h.Create)
			r.Delete("/{slug}", h.Delete)
		})
	})
}
