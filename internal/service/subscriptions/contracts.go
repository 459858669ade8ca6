package subscriptions

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/checkout"
)

// SubscriptionRepository подписки и журнал платежей
type SubscriptionRepository interface {
	Create(ctx context.Context, s *domain.Subscription) (*domain.Subscription, error)
	CancelActive(ctx context.Context, tenantID string) (int64, error)
	GetActive(ctx context.Context, tenantID string) (*domain.Subscription, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.Subscription, error)
	CreatePayment(ctx context.Context, p *domain.PaymentRecord) (*domain.PaymentRecord, error)
	ListPayments(ctx context.Context, tenantID string) ([]*domain.PaymentRecord, error)
}

type TenantRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	UpdatePlan(ctx context.Context, id string, plan domain.PlanID, status domain.TenantSubscriptionStatus) error
}

// CheckoutGateway платёжный шлюз
type CheckoutGateway interface {
	CreateOrder(ctx context.Context, req checkout.OrderRequest) (*checkout.Order, error)
	VerifySignature(orderID, paymentID, signature string) error
}

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Metrics interface {
	CheckoutOutcome(plan, outcome string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
