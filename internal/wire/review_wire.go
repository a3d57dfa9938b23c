package wire

import (
	"github.com/go-chi/chi/v5"

	"media-review/internal/adaptor"
	"media-review/pkg/middleware"
)

// wireReview mounts the review routes under /titles/{title_id}. Object-level
// access (author, moderator, admin) is decided in the service.
func wireReview(r chi.Router, handler *adaptor.Handler) {
	r.Route("/{title_id}/reviews", func(r chi.Router) {
		r.Get("/", handler.Review.List)
		r.Get("/{review_id}", handler.Review.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", handler.Review.Create)
			r.Patch("/{review_id}", handler.Review.Update)
			r.Delete("/{review_id}", handler.Review.Delete)
		})

		wireComment(r, handler.Comment)
	})
}
