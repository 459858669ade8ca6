package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type ctxKey int

const (
	ctxActor ctxKey = iota
	ctxTenant
	ctxSettings
	ctxRequestID
)

// WithActor кладёт аутентифицированного пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, ctxActor, actor)
}

// ActorFromContext пользователь запроса, если он аутентифицирован
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(ctxActor).(domain.Actor)
	return actor, ok
}

// OptionalActor указатель на пользователя или nil для анонимного запроса
func OptionalActor(ctx context.Context) *domain.Actor {
	if actor, ok := ActorFromContext(ctx); ok {
		return &actor
	}
	return nil
}

// WithTenant кладёт тенант и его настройки в контекст
func WithTenant(ctx context.Context, tenant *domain.Tenant, settings *domain.BusinessSettings) context.Context {
	ctx = context.WithValue(ctx, ctxTenant, tenant)
	return context.WithValue(ctx, ctxSettings, settings)
}

// TenantFromContext тенант запроса или nil
func TenantFromContext(ctx context.Context) *domain.Tenant {
	tenant, _ := ctx.Value(ctxTenant).(*domain.Tenant)
	return tenant
}

// SettingsFromContext настройки тенанта запроса или nil
func SettingsFromContext(ctx context.Context) *domain.BusinessSettings {
	settings, _ := ctx.Value(ctxSettings).(*domain.BusinessSettings)
	return settings
}

// TenantID берёт {tenantId} из пути, иначе тенант из контекста
func TenantID(r *http.Request) string {
	if id := mux.Vars(r)["tenantId"]; id != "" {
		return id
	}
	if tenant := TenantFromContext(r.Context()); tenant != nil {
		return tenant.ID
	}
	return ""
}

// RequestIDFromContext идентификатор запроса
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxRequestID).(string)
	return id
}

// RequireActor пользователь запроса; при его отсутствии отвечает 401
func RequireActor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
	}
	return actor, ok
}
