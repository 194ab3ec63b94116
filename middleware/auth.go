package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Dosada05/league-api/models"
)

// TokenParser проверяет bearer-токен и возвращает принципала.
type TokenParser interface {
	ParseToken(tokenString string) (*models.Principal, error)
}

// Authenticate требует заголовок "Authorization: Bearer <token>".
func Authenticate(parser TokenParser, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				writeError(w, http.StatusUnauthorized, "missing or malformed bearer token")
				return
			}

			principal, err := parser.ParseToken(strings.TrimSpace(token))
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected", slog.String("path", r.URL.Path), slog.Any("error", err))
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireRole пропускает запрос, если роль принципала входит в roles. Ставится после Authenticate.
func RequireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "operation not allowed for role "+string(principal.Role))
		})
	}
}
