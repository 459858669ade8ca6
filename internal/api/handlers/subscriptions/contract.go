package subscriptions

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/subscriptions/models"
)

type SubscriptionService interface {
	Plans() []*models.PlanResponse
	StartCheckout(ctx context.Context, actor domain.Actor, tenantID string, req *models.StartCheckoutRequest) (*models.StartCheckoutResponse, error)
	CompleteCheckout(ctx context.Context, actor domain.Actor, tenantID string, req *models.CompleteCheckoutRequest) (*models.CompleteCheckoutResponse, error)
	Current(ctx context.Context, actor domain.Actor, tenantID string) (*models.SubscriptionResponse, error)
	History(ctx context.Context, actor domain.Actor, tenantID string) ([]*models.SubscriptionResponse, error)
	Payments(ctx context.Context, actor domain.Actor, tenantID string) ([]*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
