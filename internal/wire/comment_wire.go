package wire

import (
	"github.com/go-chi/chi/v5"

	"media-review/internal/adaptor"
	"media-review/pkg/middleware"
)

func wireComment(r chi.Router, h *adaptor.CommentHandler) {
	r.Route("/{review_id}/comments", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{comment_id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", h.Create)
			r.Patch("/{comment_id}", h.Update)
			r.Delete("/{comment_id}", h.Delete)
		})
	})
}
