package bookingflow

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/bookingflow/models"
)

type FlowService interface {
	Start(ctx context.Context, actor domain.Actor, tenantID string) (*models.FlowResponse, error)
	Get(ctx context.Context, actor domain.Actor, flowID string) (*models.FlowResponse, error)
	SelectServices(ctx context.Context, actor domain.Actor, flowID string, req *models.SelectServicesRequest) (*models.FlowResponse, error)
	Dispatch(ctx context.Context, actor domain.Actor, flowID string, req *models.EventRequest) (*models.FlowResponse, error)
	Abandon(ctx context.Context, actor domain.Actor, flowID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
