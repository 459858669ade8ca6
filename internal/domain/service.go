package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Category категория услуги
type Category string

const (
	CategoryRegular Category = "regular"
	CategoryBridal  Category = "bridal"
)

// IsValidCategory проверяет категорию услуги
func IsValidCategory(c Category) bool {
	return c == CategoryRegular || c == CategoryBridal
}

// Service услуга из каталога тенанта
type Service struct {
	ID              string
	TenantID        string
	Name            string
	Price           int64 // в целых единицах валюты
	DurationMinutes int
	Category        Category
	Description     *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate проверяет бизнес-ограничения услуги
func (s *Service) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidService)
	}
	if s.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidService)
	}
	if s.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidService)
	}
	if !IsValidCategory(s.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidService, s.Category)
	}
	return nil
}

// ServicePatch частичное обновление услуги, nil поля не меняются
// ID и TenantID изменить нельзя
type ServicePatch struct {
	Name            *string
	Price           *int64
	DurationMinutes *int
	Category        *Category
	Description     *string
	IsActive        *bool
}

// Apply накладывает патч на копию услуги
func (p ServicePatch) Apply(s Service) Service {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.DurationMinutes != nil {
		s.DurationMinutes = *p.DurationMinutes
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.Description != nil {
		s.Description = p.Description
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
	return s
}

// ServiceFilter фильтр списка услуг
type ServiceFilter struct {
	IncludeInactive bool
	Category        *Category
}

// Matches проверяет, проходит ли услуга фильтр
func (f ServiceFilter) Matches(s *Service) bool {
	if !f.IncludeInactive && !s.IsActive {
		return false
	}
	if f.Category != nil && s.Category != *f.Category {
		return false
	}
	return true
}

// LessServices порядок каталога: категория, затем название
func LessServices(a, b *Service) bool {
	if a.Category != b.Category {
		return a.Category < b.Category
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}

// DefaultCatalog встроенный каталог для нового тенанта и для сброса
func DefaultCatalog() []Service {
	return []Service{
		{Name: "Haircut & Styling", Price: 499, DurationMinutes: 45, Category: CategoryRegular},
		{Name: "Hair Spa", Price: 899, DurationMinutes: 60, Category: CategoryRegular},
		{Name: "Facial", Price: 799, DurationMinutes: 60, Category: CategoryRegular},
		{Name: "Manicure", Price: 399, DurationMinutes: 30, Category: CategoryRegular},
		{Name: "Pedicure", Price: 599, DurationMinutes: 45, Category: CategoryRegular},
		{Name: "Threading", Price: 99, DurationMinutes: 15, Category: CategoryRegular},
		{Name: "Bridal Makeup", Price: 14999, DurationMinutes: 180, Category: CategoryBridal},
		{Name: "Pre-Bridal Package", Price: 7999, DurationMinutes: 240, Category: CategoryBridal},
		{Name: "Mehendi", Price: 2999, DurationMinutes: 120, Category: CategoryBridal},
	}
}

// DefaultCatalogFor встроенный каталог с новыми идентификаторами для тенанта
func DefaultCatalogFor(tenantID string) []*Service {
	defaults := DefaultCatalog()
	services := make([]*Service, 0, len(defaults))
	for i := range defaults {
		s := defaults[i]
		s.ID = uuid.NewString()
		s.TenantID = tenantID
		s.IsActive = true
		services = append(services, &s)
	}
	return services
}
