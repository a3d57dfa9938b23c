package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"media-review/internal/adaptor"
	"media-review/pkg/middleware"
)

func wireTitle(r chi.Router, handler *adaptor.Handler, logger *zap.Logger) {
	r.Route("/titles", func(r chi.Router) {
		r.Get("/", handler.Title.List)
		r.Get("/{title_id}", handler.Title.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logger))
			r.Post("/", handler.Title.Create)
			r.Patch("/{title_id}", handler.Title.Update)
			r.Delete("/{title_id}", handler.Title.Delete)
		})

		wireReview(r, handler)
	})
}
