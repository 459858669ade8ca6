package middleware

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/auth"
)

// TokenParser проверка токена доступа
type TokenParser interface {
	Parse(tokenString string) (*auth.Claims, error)
}

// ActorResolver актуальная роль и тенант пользователя
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID string) (domain.Actor, error)
}

// TenantResolver определение тенанта запроса
type TenantResolver interface {
	ResolveTenant(ctx context.Context, actor *domain.Actor, slug string) (*domain.Tenant, *domain.BusinessSettings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
