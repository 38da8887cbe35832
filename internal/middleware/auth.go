package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"admindash/internal/auth"
	"admindash/internal/logging"
	"admindash/internal/model"
)

// RequireAuth rejects requests without a valid bearer token and attaches
// the resolved identity to the request context.
func RequireAuth(tokenManager *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenManager == nil {
				logUnauthorized(r, "token_manager_missing", nil)
				writeUnauthorized(w)
				return
			}
			if _, ok := auth.IdentityFromContext(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			authz := r.Header.Get("Authorization")
			if authz == "" {
				logUnauthorized(r, "missing_auth_header", nil)
				writeUnauthorized(w)
				return
			}
			if !strings.HasPrefix(authz, "Bearer ") {
				logUnauthorized(r, "invalid_auth_header", nil)
				writeUnauthorized(w)
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
			if token == "" {
				logUnauthorized(r, "empty_token", nil)
				writeUnauthorized(w)
				return
			}

			identity, err := tokenManager.Parse(token)
			if err != nil {
				logUnauthorized(r, "token_parse_failed", err)
				writeUnauthorized(w)
				return
			}

			r = r.WithContext(auth.WithIdentity(r.Context(), identity))
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole is the per-route authorization guard. It assumes RequireAuth
// ran earlier in the chain; requests whose identity does not carry the
// required role are rejected with 403.
func RequireRole(role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := auth.IdentityFromContext(r.Context())
			if !ok {
				logUnauthorized(r, "missing_identity", nil)
				writeUnauthorized(w)
				return
			}
			if identity.Role != role {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"status":  "error",
					"message": "You do not have permission to perform this action",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "error",
		"message": "Not authorized to access this route",
	})
}

func logUnauthorized(r *http.Request, reason string, err error) {
	attrs := []any{
		slog.String("reason", reason),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.String("remote", r.RemoteAddr),
	}
	for _, a := range logging.RequestAttrs(r.Context()) {
		attrs = append(attrs, a)
	}
	if ua := r.UserAgent(); ua != "" {
		attrs = append(attrs, slog.String("user_agent", ua))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	slog.Warn("unauthorized request", attrs...)
}
