package appointments

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

type AppointmentService interface {
	Get(ctx context.Context, actor domain.Actor, id string) (*models.AppointmentResponse, error)
	ListMine(ctx context.Context, actor domain.Actor, status *string) (*models.AppointmentListResponse, error)
	ListForTenant(ctx context.Context, actor domain.Actor, tenantID string, req *models.ListTenantAppointmentsRequest) (*models.AppointmentListResponse, error)
	Stats(ctx context.Context, actor domain.Actor, tenantID string, req *models.ListTenantAppointmentsRequest) (*models.StatsResponse, error)
	Export(ctx context.Context, actor domain.Actor, tenantID string, req *models.ListTenantAppointmentsRequest) ([]byte, error)
	ChangeStatus(ctx context.Context, actor domain.Actor, id string, req *models.ChangeStatusRequest) (*models.AppointmentResponse, error)
	RecordPayment(ctx context.Context, actor domain.Actor, id string, req *models.RecordPaymentRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
