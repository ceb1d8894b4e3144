package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"lexgenie/internal/auth"
	"lexgenie/internal/httputil"
)

// Auth verifies a Bearer token when a verifier is configured and stores the
// token subject on the request context. With a nil verifier (auth disabled,
// e.g. local development) requests pass through untouched and handlers trust
// the userId parameter.
func Auth(verifier auth.JWTVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("token verification failed", "path", r.URL.Path)
				httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			next.ServeHTTP(w, httputil.WithAuthSubject(r, claims.Subject))
		})
	}
}
