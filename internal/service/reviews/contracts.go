package reviews

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	Update(ctx context.Context, review *domain.Review) (*domain.Review, error)
	List(ctx context.Context, filter domain.ReviewFilter) ([]*domain.Review, error)
}

// AppointmentReader чтение записи, к которой оставляется отзыв
type AppointmentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
