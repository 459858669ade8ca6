package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ListServicesRequest фильтр каталога
type ListServicesRequest struct {
	IncludeInactive bool
	Category        *string
}

// CreateServiceRequest новая услуга
type CreateServiceRequest struct {
	Name            string  `json:"name" validate:"required,max=120"`
	Price           int64   `json:"price" validate:"gt=0"`
	DurationMinutes int     `json:"durationMinutes" validate:"gt=0,max=720"`
	Category        string  `json:"category" validate:"required,oneof=regular bridal"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// UpdateServiceRequest частичное обновление услуги
type UpdateServiceRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Price           *int64  `json:"price,omitempty" validate:"omitempty,gt=0"`
	DurationMinutes *int    `json:"durationMinutes,omitempty" validate:"omitempty,gt=0,max=720"`
	Category        *string `json:"category,omitempty" validate:"omitempty,oneof=regular bridal"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	IsActive        *bool   `json:"isActive,omitempty"`
}

// ToDomainPatch конвертирует запрос в domain.ServicePatch
func (r *UpdateServiceRequest) ToDomainPatch() domain.ServicePatch {
	patch := domain.ServicePatch{
		Name:            r.Name,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		Description:     r.Description,
		IsActive:        r.IsActive,
	}
	if r.Category != nil {
		category := domain.Category(*r.Category)
		patch.Category = &category
	}
	return patch
}

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID              string    `json:"id"`
	TenantID        string    `json:"tenantId"`
	Name            string    `json:"name"`
	Price           int64     `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
	Category        string    `json:"category"`
	Description     *string   `json:"description,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []*ServiceResponse `json:"services"`
	Total    int                `json:"total"`
}

// FromDomainService конвертирует domain.Service в ServiceResponse
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		TenantID:        s.TenantID,
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		Category:        string(s.Category),
		Description:     s.Description,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServices конвертирует список услуг
func FromDomainServices(services []*domain.Service) *ServiceListResponse {
	result := make([]*ServiceResponse, 0, len(services))
	for _, s := range services {
		result = append(result, FromDomainService(s))
	}
	return &ServiceListResponse{Services: result, Total: len(result)}
}
