package bookingflow

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentModels "github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	reviewModels "github.com/m04kA/SMC-SalonService/internal/service/reviews/models"
	"github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
)

// FlowStore сессии сценария записи (Redis с TTL)
type FlowStore interface {
	Save(ctx context.Context, flow *domain.BookingFlow) error
	Get(ctx context.Context, flowID string) (*domain.BookingFlow, error)
	Delete(ctx context.Context, flowID string) error
}

// AppointmentCreator use case создания записи
type AppointmentCreator interface {
	Execute(ctx context.Context, req *create_appointment.Request) (*create_appointment.Response, error)
}

// AppointmentUpdater оплата и отмена записи, созданной сценарием
type AppointmentUpdater interface {
	RecordPayment(ctx context.Context, actor domain.Actor, id string, req *appointmentModels.RecordPaymentRequest) (*appointmentModels.AppointmentResponse, error)
	ChangeStatus(ctx context.Context, actor domain.Actor, id string, req *appointmentModels.ChangeStatusRequest) (*appointmentModels.AppointmentResponse, error)
}

// ReviewCreator отзыв к записи из сценария
type ReviewCreator interface {
	CreateForBooking(ctx context.Context, actor domain.Actor, req *reviewModels.CreateReviewRequest) (*reviewModels.ReviewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
