package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"media-review/internal/data/repository"
	"media-review/internal/wire"
	"media-review/pkg/database"
	"media-review/pkg/mail"
	"media-review/pkg/token"
	"media-review/pkg/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		logger.Info("Starting application",
			zap.String("app", config.App.Name),
			zap.String("port", config.App.Port),
			zap.Bool("debug", config.App.Debug),
		)

		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Error("Failed to connect to database", zap.Error(err))
			return err
		}
		defer db.Close()

		if err := database.Migrate(cmd.Context(), db); err != nil {
			logger.Error("Failed to apply schema", zap.Error(err))
			return err
		}

		logger.Info("Database ready")

		repos := repository.NewRepository(db, logger)
		tokens := token.NewMaker(config.JWT.Secret, config.JWT.ExpiryHours)
		mailer := newMailer(config, logger)

		app := wire.Wiring(repos, config, mailer, tokens, logger)

		logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

		return runServer(cmd.Context(), app.Router, config.App.Port)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// newMailer falls back to log-only delivery when no SMTP host is configured.
func newMailer(config *utils.Config, logger *zap.Logger) mail.Mailer {
	if config.Email.Host == "" {
		logger.Warn("SMTP_HOST not set, confirmation codes will be logged instead of emailed")
		return &mail.LogMailer{Log: logger}
	}
	return mail.NewSMTPMailer(config.Email, logger)
}

func runServer(ctx context.Context, route *chi.Mux, port string) error {
	addr := fmt.Sprintf(":%s", port)
	fmt.Printf("Server running on http://localhost%s\n", addr)

	server := &http.Server{
		Addr:    addr,
		Handler: route,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return server.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}
