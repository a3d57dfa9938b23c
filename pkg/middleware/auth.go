package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"media-review/internal/access"
	"media-review/internal/data/repository"
	"media-review/pkg/token"
	"media-review/pkg/utils"
)

// Authenticate resolves the caller from a Bearer token and stores it on the
// request context. Requests without a token pass through anonymous; a token
// that fails verification is rejected outright (fail closed).
func Authenticate(userRepo repository.UserRepository, maker *token.Maker, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := maker.Verify(parts[1])
			if err != nil {
				logger.Warn("Token verification failed", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			user, err := userRepo.FindByUsername(r.Context(), claims.Username)
			if err != nil {
				logger.Error("Failed to load token subject",
					zap.Error(err),
					zap.String("username", claims.Username))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil {
				logger.Warn("Token subject no longer exists", zap.String("username", claims.Username))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			caller := &access.Caller{
				ID:          user.ID,
				Username:    user.Username,
				Role:        user.Role,
				IsSuperuser: user.IsSuperuser,
			}

			next.ServeHTTP(w, r.WithContext(utils.SetCallerContext(r.Context(), caller)))
		})
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if utils.GetCallerFromContext(r.Context()) == nil {
			utils.ResponseUnauthorized(w, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin gates the admin-only collections (categories, genres, titles,
// users).
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := utils.GetCallerFromContext(r.Context())
			if caller == nil {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}
			if !access.CanWriteCollection(caller, true) {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("username", caller.Username),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
