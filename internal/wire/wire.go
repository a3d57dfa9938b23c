// internal/wire/wire.go
package wire

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"media-review/internal/adaptor"
	"media-review/internal/data/repository"
	"media-review/internal/usecase"
	"media-review/pkg/mail"
	"media-review/pkg/middleware"
	"media-review/pkg/token"
	"media-review/pkg/utils"
)

// App holds the assembled HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	mailer mail.Mailer,
	tokens *token.Maker,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, mailer, tokens, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, tokens, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	tokens *token.Maker,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware. Authenticate lets anonymous requests through so
	// public reads work without a token.
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Authenticate(repo.User, tokens, logger))

	r.Route("/api/v1", func(api chi.Router) {
		wireAuth(api, handler.Auth)
		wireUser(api, handler.User, logger)
		wireCategory(api, handler.Category, logger)
		wireGenre(api, handler.Genre, logger)
		wireTitle(api, handler, logger)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
