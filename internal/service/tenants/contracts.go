package tenants

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// TenantRepository интерфейс репозитория тенантов
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error)
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, filter domain.TenantFilter) ([]*domain.Tenant, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// SettingsRepository интерфейс репозитория настроек бизнеса
type SettingsRepository interface {
	Create(ctx context.Context, s *domain.BusinessSettings) (*domain.BusinessSettings, error)
	GetByTenantID(ctx context.Context, tenantID string) (*domain.BusinessSettings, error)
}

// CatalogSeeder заполняет каталог нового тенанта услугами по умолчанию
type CatalogSeeder interface {
	ReplaceAll(ctx context.Context, tenantID string, services []*domain.Service) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
