package catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// CatalogRepository каталог услуг; реализован на Postgres и на Redis
type CatalogRepository interface {
	List(ctx context.Context, tenantID string, filter domain.ServiceFilter) ([]*domain.Service, error)
	GetByID(ctx context.Context, tenantID, id string) (*domain.Service, error)
	Create(ctx context.Context, service *domain.Service) (*domain.Service, error)
	Update(ctx context.Context, service *domain.Service) (*domain.Service, error)
	SetActive(ctx context.Context, tenantID, id string, active bool) error
	ReplaceAll(ctx context.Context, tenantID string, services []*domain.Service) error
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
