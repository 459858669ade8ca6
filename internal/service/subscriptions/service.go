package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	subscriptionRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/subscription"
	tenantRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-SalonService/internal/integrations/checkout"
	"github.com/m04kA/SMC-SalonService/internal/service/subscriptions/models"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
	"github.com/m04kA/SMC-SalonService/pkg/validation"
)

// Options параметры виджета оплаты из конфигурации
type Options struct {
	KeyID        string
	Currency     string
	BusinessName string
	ThemeColor   string
}

// Service сервис подписок тенантов
type Service struct {
	subscriptionRepo SubscriptionRepository
	tenantRepo       TenantRepository
	gateway          CheckoutGateway
	txManager        TransactionManager
	metrics          Metrics
	options          Options
	logger           Logger
	now              func() time.Time
}

// NewService создает новый экземпляр сервиса подписок
func NewService(
	subscriptionRepo SubscriptionRepository,
	tenantRepo TenantRepository,
	gateway CheckoutGateway,
	txManager TransactionManager,
	metrics Metrics,
	options Options,
	logger Logger,
) *Service {
	return &Service{
		subscriptionRepo: subscriptionRepo,
		tenantRepo:       tenantRepo,
		gateway:          gateway,
		txManager:        txManager,
		metrics:          metrics,
		options:          options,
		logger:           logger,
		now:              time.Now,
	}
}

// Plans встроенная таблица тарифов
func (s *Service) Plans() []*models.PlanResponse {
	return models.FromDomainPlans(domain.Plans())
}

// StartCheckout бесплатный тариф активирует сразу, для платного создаёт заказ в шлюзе
func (s *Service) StartCheckout(ctx context.Context, actor domain.Actor, tenantID string, req *models.StartCheckoutRequest) (*models.StartCheckoutResponse, error) {
	s.logger.Info("StartCheckout: user=%s, tenant=%s, plan=%s", actor.UserID, tenantID, req.PlanID)

	plan, tenant, err := s.prepare(ctx, "StartCheckout", actor, tenantID, req)
	if err != nil {
		return nil, err
	}

	if plan.IsFree() {
		subscription, err := s.activate(ctx, "StartCheckout", tenant.ID, plan, nil)
		if err != nil {
			return nil, err
		}
		s.metrics.CheckoutOutcome(string(plan.ID), string(domain.CheckoutSuccess))
		return &models.StartCheckoutResponse{
			Activated:    true,
			Subscription: models.FromDomainSubscription(subscription),
		}, nil
	}

	order, err := s.gateway.CreateOrder(ctx, checkout.OrderRequest{
		Amount:   plan.MinorUnits(),
		Currency: s.options.Currency,
		Receipt:  fmt.Sprintf("%s-%s", tenant.ID[:min(8, len(tenant.ID))], uuid.NewString()[:8]),
		Notes: map[string]string{
			"tenantId": tenant.ID,
			"planId":   string(plan.ID),
		},
	})
	if err != nil {
		s.logger.Error("StartCheckout: failed to create order for tenant=%s: %v", tenant.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	s.logger.Info("StartCheckout: order=%s created for tenant=%s, amount=%d", order.ID, tenant.ID, order.Amount)

	return &models.StartCheckoutResponse{
		Widget: &models.WidgetOptions{
			Key:         s.options.KeyID,
			Amount:      plan.MinorUnits(),
			Currency:    s.options.Currency,
			Name:        s.options.BusinessName,
			Description: fmt.Sprintf("%s plan for %s", plan.Name, tenant.Name),
			OrderID:     order.ID,
			Prefill: models.Prefill{
				Name:    actor.Name,
				Email:   actor.Email,
				Contact: ptr.Value(actor.Phone),
			},
			Theme: models.Theme{Color: s.options.ThemeColor},
		},
	}, nil
}

// CompleteCheckout обрабатывает результат виджета
// Только success создаёт записи: подписку и платёж в одной транзакции
func (s *Service) CompleteCheckout(ctx context.Context, actor domain.Actor, tenantID string, req *models.CompleteCheckoutRequest) (*models.CompleteCheckoutResponse, error) {
	s.logger.Info("CompleteCheckout: user=%s, tenant=%s, plan=%s, outcome=%s", actor.UserID, tenantID, req.PlanID, req.Outcome)

	plan, tenant, err := s.prepare(ctx, "CompleteCheckout", actor, tenantID, &models.StartCheckoutRequest{PlanID: req.PlanID})
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		s.logger.Warn("CompleteCheckout: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if plan.IsFree() {
		return nil, ErrCheckoutNotRequired
	}

	switch domain.CheckoutOutcome(req.Outcome) {
	case domain.CheckoutDismissed:
		s.logger.Info("CompleteCheckout: checkout dismissed for tenant=%s", tenant.ID)
		s.metrics.CheckoutOutcome(string(plan.ID), string(domain.CheckoutCancelled))
		return &models.CompleteCheckoutResponse{Outcome: string(domain.CheckoutCancelled)}, nil
	case domain.CheckoutLoadFailed:
		s.logger.Warn("CompleteCheckout: checkout widget failed to load for tenant=%s", tenant.ID)
		s.metrics.CheckoutOutcome(string(plan.ID), string(domain.CheckoutLoadFailed))
		return &models.CompleteCheckoutResponse{Outcome: string(domain.CheckoutLoadFailed)}, nil
	}

	if req.PaymentID == "" || req.OrderID == "" {
		return nil, fmt.Errorf("%w: paymentId and orderId are required for success", ErrInvalidInput)
	}

	if err := s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature); err != nil {
		s.logger.Warn("CompleteCheckout: signature check failed for order=%s: %v", req.OrderID, err)
		s.metrics.CheckoutOutcome(string(plan.ID), "invalid_signature")
		if errors.Is(err, checkout.ErrInvalidSignature) {
			return nil, ErrInvalidSignature
		}
		return nil, fmt.Errorf("%w: CompleteCheckout - verify signature: %v", ErrInternal, err)
	}

	var subscription *domain.Subscription
	var payment *domain.PaymentRecord
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		subscription, err = s.activate(ctx, "CompleteCheckout", tenant.ID, plan, ptr.Ptr(req.PaymentID))
		if err != nil {
			return err
		}

		payment, err = s.subscriptionRepo.CreatePayment(ctx, &domain.PaymentRecord{
			ID:               uuid.NewString(),
			TenantID:         tenant.ID,
			SubscriptionID:   ptr.Ptr(subscription.ID),
			AmountMinor:      plan.MinorUnits(),
			Currency:         s.options.Currency,
			Status:           domain.PaymentRecordSuccess,
			GatewayPaymentID: ptr.Ptr(req.PaymentID),
			GatewayOrderID:   ptr.Ptr(req.OrderID),
		})
		if err != nil {
			s.logger.Error("CompleteCheckout: failed to record payment for tenant=%s: %v", tenant.ID, err)
			return fmt.Errorf("%w: CompleteCheckout - create payment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.CheckoutOutcome(string(plan.ID), string(domain.CheckoutSuccess))
	s.logger.Info("CompleteCheckout: tenant=%s moved to plan=%s, subscription=%s", tenant.ID, plan.ID, subscription.ID)

	return &models.CompleteCheckoutResponse{
		Outcome:      string(domain.CheckoutSuccess),
		Subscription: models.FromDomainSubscription(subscription),
		Payment:      models.FromDomainPayment(payment),
	}, nil
}

// Current активная подписка тенанта
func (s *Service) Current(ctx context.Context, actor domain.Actor, tenantID string) (*models.SubscriptionResponse, error) {
	s.logger.Info("Current: user=%s, tenant=%s", actor.UserID, tenantID)

	if !actor.CanManage(tenantID) {
		return nil, ErrAccessDenied
	}

	subscription, err := s.subscriptionRepo.GetActive(ctx, tenantID)
	if err != nil {
		if errors.Is(err, subscriptionRepo.ErrSubscriptionNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		s.logger.Error("Current: repository error for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Current - repository error: %v", ErrInternal, err)
	}

	if !subscription.IsCurrent(s.now()) {
		s.logger.Info("Current: subscription=%s of tenant=%s has ended", subscription.ID, tenantID)
		return nil, ErrSubscriptionNotFound
	}

	return models.FromDomainSubscription(subscription), nil
}

// History все подписки тенанта, новые сверху
func (s *Service) History(ctx context.Context, actor domain.Actor, tenantID string) ([]*models.SubscriptionResponse, error) {
	s.logger.Info("History: user=%s, tenant=%s", actor.UserID, tenantID)

	if !actor.CanManage(tenantID) {
		return nil, ErrAccessDenied
	}

	subscriptions, err := s.subscriptionRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("History: repository error for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: History - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSubscriptions(subscriptions), nil
}

// Payments журнал платежей тенанта
func (s *Service) Payments(ctx context.Context, actor domain.Actor, tenantID string) ([]*models.PaymentResponse, error) {
	s.logger.Info("Payments: user=%s, tenant=%s", actor.UserID, tenantID)

	if !actor.CanManage(tenantID) {
		return nil, ErrAccessDenied
	}

	payments, err := s.subscriptionRepo.ListPayments(ctx, tenantID)
	if err != nil {
		s.logger.Error("Payments: repository error for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Payments - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPayments(payments), nil
}

func (s *Service) prepare(ctx context.Context, method string, actor domain.Actor, tenantID string, req *models.StartCheckoutRequest) (domain.Plan, *domain.Tenant, error) {
	if !actor.CanManage(tenantID) {
		s.logger.Warn("%s: access denied for user=%s to tenant=%s", method, actor.UserID, tenantID)
		return domain.Plan{}, nil, ErrAccessDenied
	}

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("%s: validation failed: %v", method, err)
		return domain.Plan{}, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	plan, err := domain.GetPlan(domain.PlanID(req.PlanID))
	if err != nil {
		return domain.Plan{}, nil, ErrUnknownPlan
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			s.logger.Warn("%s: tenant=%s not found", method, tenantID)
			return domain.Plan{}, nil, ErrTenantNotFound
		}
		s.logger.Error("%s: failed to load tenant=%s: %v", method, tenantID, err)
		return domain.Plan{}, nil, fmt.Errorf("%w: %s - get tenant: %v", ErrInternal, method, err)
	}

	return plan, tenant, nil
}

// activate заменяет активную подписку новой и переводит тенант на тариф
// Вызывается внутри транзакции или открывает свою
func (s *Service) activate(ctx context.Context, method, tenantID string, plan domain.Plan, paymentID *string) (*domain.Subscription, error) {
	now := s.now().UTC()
	subscription := &domain.Subscription{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		PlanID:      plan.ID,
		Status:      domain.SubscriptionActive,
		StartDate:   now,
		EndDate:     now.AddDate(0, 0, domain.PlanPeriodDays),
		PaymentID:   paymentID,
		AmountMinor: plan.MinorUnits(),
	}
	if plan.IsFree() {
		subscription.EndDate = domain.FreePlanEndDate
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		cancelled, err := s.subscriptionRepo.CancelActive(ctx, tenantID)
		if err != nil {
			s.logger.Error("%s: failed to cancel active subscriptions of tenant=%s: %v", method, tenantID, err)
			return fmt.Errorf("%w: %s - cancel active: %v", ErrInternal, method, err)
		}
		if cancelled > 0 {
			s.logger.Info("%s: superseded %d active subscriptions of tenant=%s", method, cancelled, tenantID)
		}

		if _, err := s.subscriptionRepo.Create(ctx, subscription); err != nil {
			s.logger.Error("%s: failed to create subscription for tenant=%s: %v", method, tenantID, err)
			return fmt.Errorf("%w: %s - create subscription: %v", ErrInternal, method, err)
		}

		if err := s.tenantRepo.UpdatePlan(ctx, tenantID, plan.ID, domain.TenantSubscriptionActive); err != nil {
			s.logger.Error("%s: failed to update plan of tenant=%s: %v", method, tenantID, err)
			return fmt.Errorf("%w: %s - update tenant plan: %v", ErrInternal, method, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return subscription, nil
}
