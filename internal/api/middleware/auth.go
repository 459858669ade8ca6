package middleware

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const bearerPrefix = "bearer "

// Auth требует валидный Bearer токен
// Роль и тенант берутся из хранилища пользователей, а не из токена
func Auth(tokens TokenParser, users ActorResolver, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				logger.Warn("Auth: missing bearer token for %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w)
				return
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				logger.Warn("Auth: invalid token for %s %s: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w)
				return
			}

			actor, err := users.ResolveActor(r.Context(), claims.UserID)
			if err != nil {
				logger.Warn("Auth: failed to resolve user=%s: %v", claims.UserID, err)
				handlers.RespondUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// OptionalAuth как Auth, но запрос без токена проходит анонимно
// Невалидный токен всё равно отклоняется
func OptionalAuth(tokens TokenParser, users ActorResolver, logger Logger) func(http.Handler) http.Handler {
	required := Auth(tokens, users, logger)
	return func(next http.Handler) http.Handler {
		withAuth := required(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}
			withAuth.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(raw) <= len(bearerPrefix) || !strings.EqualFold(raw[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(raw[len(bearerPrefix):])
}
