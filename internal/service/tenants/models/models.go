package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	settingsModels "github.com/m04kA/SMC-SalonService/internal/service/settings/models"
)

// RegisterTenantRequest регистрация бизнеса текущим пользователем
type RegisterTenantRequest struct {
	Name    string  `json:"name" validate:"required,max=100"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
}

// AddStaffRequest привязка существующего пользователя как сотрудника
type AddStaffRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SetActiveRequest деактивация/реактивация тенанта
type SetActiveRequest struct {
	IsActive bool `json:"isActive"`
}

// TenantResponse тенант
type TenantResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Slug               string    `json:"slug"`
	OwnerID            string    `json:"ownerId"`
	IsActive           bool      `json:"isActive"`
	Plan               string    `json:"plan"`
	SubscriptionStatus string    `json:"subscriptionStatus"`
	CreatedAt          time.Time `json:"createdAt"`
}

// TenantWithSettingsResponse тенант вместе с настройками
type TenantWithSettingsResponse struct {
	Tenant   *TenantResponse                  `json:"tenant"`
	Settings *settingsModels.SettingsResponse `json:"settings"`
}

// SessionUser пользователь текущей сессии
type SessionUser struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	TenantID *string `json:"tenantId,omitempty"`
}

// SessionResponse контекст сессии: пользователь и тенант, оба могут отсутствовать
type SessionResponse struct {
	User     *SessionUser                     `json:"user"`
	Tenant   *TenantResponse                  `json:"tenant"`
	Settings *settingsModels.SettingsResponse `json:"settings"`
}

// FromDomainTenant конвертирует domain.Tenant в TenantResponse
func FromDomainTenant(t *domain.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:                 t.ID,
		Name:               t.Name,
		Slug:               t.Slug,
		OwnerID:            t.OwnerID,
		IsActive:           t.IsActive,
		Plan:               string(t.Plan),
		SubscriptionStatus: string(t.SubscriptionStatus),
		CreatedAt:          t.CreatedAt,
	}
}

// FromDomainTenants конвертирует список тенантов
func FromDomainTenants(tenants []*domain.Tenant) []*TenantResponse {
	result := make([]*TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		result = append(result, FromDomainTenant(t))
	}
	return result
}

// FromActor конвертирует domain.Actor в SessionUser
func FromActor(a *domain.Actor) *SessionUser {
	if a == nil {
		return nil
	}
	return &SessionUser{
		ID:       a.UserID,
		Name:     a.Name,
		Email:    a.Email,
		Role:     string(a.Role),
		TenantID: a.TenantID,
	}
}
