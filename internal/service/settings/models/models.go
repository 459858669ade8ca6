package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// UpdateSettingsRequest частичное обновление настроек
// Пустая строка в Phone/Email/Address/NotificationWebhook очищает значение
type UpdateSettingsRequest struct {
	Phone                 *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email                 *string `json:"email,omitempty" validate:"omitempty,max=254"`
	Address               *string `json:"address,omitempty" validate:"omitempty,max=500"`
	OpenTime              *string `json:"openTime,omitempty"`
	CloseTime             *string `json:"closeTime,omitempty"`
	WorkingDays           []int   `json:"workingDays,omitempty"`
	SlotDurationMinutes   *int    `json:"slotDurationMinutes,omitempty"`
	MaxConcurrentBookings *int    `json:"maxConcurrentBookings,omitempty"`
	AdvanceBookingDays    *int    `json:"advanceBookingDays,omitempty"`
	HomeServiceEnabled    *bool   `json:"homeServiceEnabled,omitempty"`
	HomeServiceCharge     *int64  `json:"homeServiceCharge,omitempty"`
	Theme                 *string `json:"theme,omitempty" validate:"omitempty,max=32"`
	Currency              *string `json:"currency,omitempty" validate:"omitempty,len=3"`
	NotificationWebhook   *string `json:"notificationWebhook,omitempty" validate:"omitempty,url"`
}

// Apply применяет изменения к копии настроек
func (r *UpdateSettingsRequest) Apply(s domain.BusinessSettings) domain.BusinessSettings {
	if r.Phone != nil {
		s.Phone = optional(*r.Phone)
	}
	if r.Email != nil {
		s.Email = optional(*r.Email)
	}
	if r.Address != nil {
		s.Address = optional(*r.Address)
	}
	if r.OpenTime != nil {
		s.OpenTime = types.TimeString(*r.OpenTime)
	}
	if r.CloseTime != nil {
		s.CloseTime = types.TimeString(*r.CloseTime)
	}
	if r.WorkingDays != nil {
		s.WorkingDays = append([]int(nil), r.WorkingDays...)
	}
	if r.SlotDurationMinutes != nil {
		s.SlotDurationMinutes = *r.SlotDurationMinutes
	}
	if r.MaxConcurrentBookings != nil {
		s.MaxConcurrentBookings = *r.MaxConcurrentBookings
	}
	if r.AdvanceBookingDays != nil {
		s.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.HomeServiceEnabled != nil {
		s.HomeServiceEnabled = *r.HomeServiceEnabled
	}
	if r.HomeServiceCharge != nil {
		s.HomeServiceCharge = *r.HomeServiceCharge
	}
	if r.Theme != nil {
		s.Theme = *r.Theme
	}
	if r.Currency != nil {
		s.Currency = *r.Currency
	}
	if r.NotificationWebhook != nil {
		s.NotificationWebhook = optional(*r.NotificationWebhook)
	}
	return s
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// SettingsResponse настройки бизнеса
type SettingsResponse struct {
	TenantID              string    `json:"tenantId"`
	Phone                 *string   `json:"phone,omitempty"`
	Email                 *string   `json:"email,omitempty"`
	Address               *string   `json:"address,omitempty"`
	OpenTime              string    `json:"openTime"`
	CloseTime             string    `json:"closeTime"`
	WorkingDays           []int     `json:"workingDays"`
	SlotDurationMinutes   int       `json:"slotDurationMinutes"`
	MaxConcurrentBookings int       `json:"maxConcurrentBookings"`
	AdvanceBookingDays    int       `json:"advanceBookingDays"`
	HomeServiceEnabled    bool      `json:"homeServiceEnabled"`
	HomeServiceCharge     int64     `json:"homeServiceCharge"`
	Theme                 string    `json:"theme"`
	Currency              string    `json:"currency"`
	NotificationWebhook   *string   `json:"notificationWebhook,omitempty"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// FromDomainSettings конвертирует настройки в ответ
// Вебхук уведомлений виден только операторам тенанта
func FromDomainSettings(s *domain.BusinessSettings, includePrivate bool) *SettingsResponse {
	resp := &SettingsResponse{
		TenantID:              s.TenantID,
		Phone:                 s.Phone,
		Email:                 s.Email,
		Address:               s.Address,
		OpenTime:              s.OpenTime.String(),
		CloseTime:             s.CloseTime.String(),
		WorkingDays:           s.WorkingDays,
		SlotDurationMinutes:   s.SlotDurationMinutes,
		MaxConcurrentBookings: s.MaxConcurrentBookings,
		AdvanceBookingDays:    s.AdvanceBookingDays,
		HomeServiceEnabled:    s.HomeServiceEnabled,
		HomeServiceCharge:     s.HomeServiceCharge,
		Theme:                 s.Theme,
		Currency:              s.Currency,
		UpdatedAt:             s.UpdatedAt,
	}
	if includePrivate {
		resp.NotificationWebhook = s.NotificationWebhook
	}
	return resp
}
