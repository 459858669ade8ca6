package appointments

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	ListByCustomer(ctx context.Context, customerID string, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	ListByTenant(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.AppointmentStatus, reason *string) error
	UpdatePayment(ctx context.Context, id string, method domain.PaymentMethod, status domain.PaymentStatus, transactionID *string) error
}

// Metrics счетчики переходов статусов
type Metrics interface {
	StatusChanged(from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
