package domain

import "time"

// PlanPeriodDays длительность платного периода
const PlanPeriodDays = 30

// FreePlanEndDate дата окончания бесплатного тарифа
var FreePlanEndDate = time.Date(2099, time.December, 31, 0, 0, 0, 0, time.UTC)

// Plan тариф из встроенной таблицы
type Plan struct {
	ID          PlanID
	Name        string
	Price       int64 // в месяц, целые единицы валюты
	Description string
}

// IsFree бесплатный тариф активируется без оплаты
func (p Plan) IsFree() bool {
	return p.Price == 0
}

// MinorUnits цена в минимальных единицах (пайсы, копейки)
func (p Plan) MinorUnits() int64 {
	return p.Price * 100
}

var plans = map[PlanID]Plan{
	PlanFree:       {ID: PlanFree, Name: "Free", Price: 0, Description: "Basic booking page"},
	PlanBasic:      {ID: PlanBasic, Name: "Basic", Price: 499, Description: "Online booking and reminders"},
	PlanPro:        {ID: PlanPro, Name: "Pro", Price: 999, Description: "Staff accounts and analytics"},
	PlanEnterprise: {ID: PlanEnterprise, Name: "Enterprise", Price: 2499, Description: "Multiple branches and priority support"},
}

// GetPlan возвращает тариф по идентификатору
func GetPlan(id PlanID) (Plan, error) {
	p, ok := plans[id]
	if !ok {
		return Plan{}, ErrUnknownPlan
	}
	return p, nil
}

// Plans все тарифы по возрастанию цены
func Plans() []Plan {
	return []Plan{plans[PlanFree], plans[PlanBasic], plans[PlanPro], plans[PlanEnterprise]}
}

// SubscriptionStatus статус подписки
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Subscription подписка тенанта на тариф
type Subscription struct {
	ID          string
	TenantID    string
	PlanID      PlanID
	Status      SubscriptionStatus
	StartDate   time.Time
	EndDate     time.Time
	PaymentID   *string
	AmountMinor int64 // минимальные единицы, как в PaymentRecord
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsCurrent активна и не истекла
func (s *Subscription) IsCurrent(now time.Time) bool {
	return s.Status == SubscriptionActive && now.Before(s.EndDate)
}

// PaymentRecordStatus статус платежа
type PaymentRecordStatus string

const (
	PaymentRecordPending  PaymentRecordStatus = "pending"
	PaymentRecordSuccess  PaymentRecordStatus = "success"
	PaymentRecordFailed   PaymentRecordStatus = "failed"
	PaymentRecordRefunded PaymentRecordStatus = "refunded"
)

// PaymentRecord неизменяемая запись о платеже
type PaymentRecord struct {
	ID               string
	TenantID         string
	SubscriptionID   *string
	AmountMinor      int64 // минимальные единицы
	Currency         string
	Status           PaymentRecordStatus
	GatewayPaymentID *string
	GatewayOrderID   *string
	CreatedAt        time.Time
}

// CheckoutOutcome результат виджета оплаты
type CheckoutOutcome string

const (
	CheckoutSuccess    CheckoutOutcome = "success"
	CheckoutDismissed  CheckoutOutcome = "dismissed"
	CheckoutLoadFailed CheckoutOutcome = "load_failed"
	// CheckoutCancelled итог для dismissed
	CheckoutCancelled CheckoutOutcome = "cancelled"
)
