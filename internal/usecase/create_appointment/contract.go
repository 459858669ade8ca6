package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	ListActiveForDate(ctx context.Context, tenantID string, date time.Time) ([]*domain.Appointment, error)
}

// TenantRepository интерфейс репозитория тенантов
type TenantRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
}

// SettingsRepository интерфейс репозитория настроек бизнеса
type SettingsRepository interface {
	GetByTenantID(ctx context.Context, tenantID string) (*domain.BusinessSettings, error)
}

// CatalogRepository интерфейс каталога услуг (Postgres или Redis)
type CatalogRepository interface {
	GetByIDs(ctx context.Context, tenantID string, ids []string) ([]*domain.Service, error)
}

// OwnerNotifier уведомление владельца о новой записи
type OwnerNotifier interface {
	NotifyAppointmentCreated(ctx context.Context, webhook *string, n notifier.AppointmentNotification) error
}

// Metrics бизнес-метрики записи
type Metrics interface {
	AppointmentCreated(location string)
	NotificationFailed(channel string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
