package domain

import (
	"strings"
	"time"
	"unicode"
)

// PlanID тариф подписки бизнеса
type PlanID string

const (
	PlanFree       PlanID = "free"
	PlanBasic      PlanID = "basic"
	PlanPro        PlanID = "pro"
	PlanEnterprise PlanID = "enterprise"
)

// TenantSubscriptionStatus состояние подписки, денормализованное в тенант
type TenantSubscriptionStatus string

const (
	TenantSubscriptionActive    TenantSubscriptionStatus = "active"
	TenantSubscriptionExpired   TenantSubscriptionStatus = "expired"
	TenantSubscriptionCancelled TenantSubscriptionStatus = "cancelled"
)

// Tenant бизнес (салон) на платформе
type Tenant struct {
	ID                 string
	Name               string
	Slug               string // уникален среди всех тенантов
	OwnerID            string
	IsActive           bool
	Plan               PlanID
	SubscriptionStatus TenantSubscriptionStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TenantFilter фильтр списка тенантов для суперадмина
type TenantFilter struct {
	IncludeInactive bool
}

// DefaultSlug используется, если в названии нет ни одной буквы или цифры
const DefaultSlug = "salon"

// Slugify строит slug из названия: латиница и цифры в нижнем регистре, разделитель "-"
func Slugify(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
			continue
		}
		pendingDash = true
	}
	if b.Len() == 0 {
		return DefaultSlug
	}
	return b.String()
}
