package wire

import (
	"github.com/go-chi/chi/v5"

	"media-review/internal/adaptor"
)

func wireAuth(r chi.Router, h *adaptor.AuthHandler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/token", h.ObtainToken)
	})
}
