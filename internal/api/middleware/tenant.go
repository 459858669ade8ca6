package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

// TenantContext определяет тенант запроса по {slug}; без slug по привязке пользователя
// Неизвестный slug не ошибка: запрос продолжается без тенанта
func TenantContext(resolver TenantResolver, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slug := mux.Vars(r)["slug"]

			tenant, settings, err := resolver.ResolveTenant(r.Context(), OptionalActor(r.Context()), slug)
			if err != nil {
				logger.Error("TenantContext: failed to resolve tenant for slug=%q: %v", slug, err)
				handlers.RespondInternalError(w)
				return
			}
			if tenant == nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), tenant, settings)))
		})
	}
}
