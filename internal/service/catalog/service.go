package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/kvstore"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonService/pkg/validation"
)

// Service сервис каталога услуг тенанта
type Service struct {
	catalogRepo CatalogRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// List публичный список услуг тенанта
// Неактивные услуги видны только операторам тенанта
func (s *Service) List(ctx context.Context, actor *domain.Actor, tenantID string, req *models.ListServicesRequest) (*models.ServiceListResponse, error) {
	s.logger.Info("List: tenant=%s, includeInactive=%t, category=%v", tenantID, req.IncludeInactive, req.Category)

	if req.IncludeInactive && (actor == nil || !actor.CanManage(tenantID)) {
		s.logger.Warn("List: inactive services requested without access to tenant=%s", tenantID)
		return nil, ErrAccessDenied
	}

	filter := domain.ServiceFilter{IncludeInactive: req.IncludeInactive}
	if req.Category != nil {
		category := domain.Category(*req.Category)
		if !domain.IsValidCategory(category) {
			s.logger.Warn("List: invalid category=%s", *req.Category)
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *req.Category)
		}
		filter.Category = &category
	}

	services, err := s.catalogRepo.List(ctx, tenantID, filter)
	if err != nil {
		s.logger.Error("List: repository error for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d services for tenant=%s", len(services), tenantID)
	return models.FromDomainServices(services), nil
}

// Get услуга по ID
func (s *Service) Get(ctx context.Context, tenantID, id string) (*models.ServiceResponse, error) {
	s.logger.Info("Get: tenant=%s, service=%s", tenantID, id)

	service, err := s.get(ctx, "Get", tenantID, id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainService(service), nil
}

// Add добавляет услугу с новым UUID
func (s *Service) Add(ctx context.Context, actor domain.Actor, tenantID string, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Add: user=%s adding service %q to tenant=%s", actor.UserID, req.Name, tenantID)

	if err := s.checkAccess("Add", actor, tenantID); err != nil {
		return nil, err
	}

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("Add: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	service := &domain.Service{
		ID:              uuid.NewString(),
		TenantID:        tenantID,
		Name:            strings.TrimSpace(req.Name),
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Category:        domain.Category(req.Category),
		Description:     req.Description,
		IsActive:        true,
	}
	if err := service.Validate(); err != nil {
		s.logger.Warn("Add: invalid service: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.catalogRepo.Create(ctx, service)
	if err != nil {
		s.logger.Error("Add: repository error for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Add - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Add: created service id=%s for tenant=%s", created.ID, tenantID)
	return models.FromDomainService(created), nil
}

// Update частично обновляет услугу; ID и тенант не меняются
func (s *Service) Update(ctx context.Context, actor domain.Actor, tenantID, id string, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: user=%s updating service=%s of tenant=%s", actor.UserID, id, tenantID)

	if err := s.checkAccess("Update", actor, tenantID); err != nil {
		return nil, err
	}

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	current, err := s.get(ctx, "Update", tenantID, id)
	if err != nil {
		return nil, err
	}

	updated := req.ToDomainPatch().Apply(*current)
	updated.Name = strings.TrimSpace(updated.Name)
	if err := updated.Validate(); err != nil {
		s.logger.Warn("Update: invalid service=%s: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.catalogRepo.Update(ctx, &updated)
	if err != nil {
		if isServiceNotFound(err) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: service=%s updated", id)
	return models.FromDomainService(saved), nil
}

// Delete мягкое удаление: услуга остается в хранилище, но скрыта из списка по умолчанию
func (s *Service) Delete(ctx context.Context, actor domain.Actor, tenantID, id string) error {
	return s.setActive(ctx, "Delete", actor, tenantID, id, false)
}

// Restore возвращает мягко удаленную услугу в каталог
// Услугу нельзя вернуть, если активная услуга с тем же названием уже есть (например, после сброса каталога)
func (s *Service) Restore(ctx context.Context, actor domain.Actor, tenantID, id string) error {
	if err := s.checkAccess("Restore", actor, tenantID); err != nil {
		return err
	}

	service, err := s.get(ctx, "Restore", tenantID, id)
	if err != nil {
		return err
	}

	if !service.IsActive {
		active, err := s.catalogRepo.List(ctx, tenantID, domain.ServiceFilter{})
		if err != nil {
			s.logger.Error("Restore: repository error for tenant=%s: %v", tenantID, err)
			return fmt.Errorf("%w: Restore - repository error: %v", ErrInternal, err)
		}
		for _, other := range active {
			if other.ID != service.ID && strings.EqualFold(other.Name, service.Name) {
				s.logger.Warn("Restore: service=%s name %q taken by service=%s", id, service.Name, other.ID)
				return fmt.Errorf("%w: %q", ErrNameTaken, service.Name)
			}
		}
	}

	return s.setActive(ctx, "Restore", actor, tenantID, id, true)
}

func (s *Service) setActive(ctx context.Context, method string, actor domain.Actor, tenantID, id string, active bool) error {
	s.logger.Info("%s: user=%s, tenant=%s, service=%s", method, actor.UserID, tenantID, id)

	if err := s.checkAccess(method, actor, tenantID); err != nil {
		return err
	}

	if err := s.catalogRepo.SetActive(ctx, tenantID, id, active); err != nil {
		if isServiceNotFound(err) {
			s.logger.Warn("%s: service=%s not found in tenant=%s", method, id, tenantID)
			return ErrServiceNotFound
		}
		s.logger.Error("%s: repository error for service=%s: %v", method, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}

	s.logger.Info("%s: service=%s isActive=%t", method, id, active)
	return nil
}

// ResetToDefaults заменяет каталог тенанта встроенным каталогом
// Старые услуги только деактивируются: снапшоты в записях ссылаются на них
func (s *Service) ResetToDefaults(ctx context.Context, actor domain.Actor, tenantID string) (*models.ServiceListResponse, error) {
	s.logger.Info("ResetToDefaults: user=%s, tenant=%s", actor.UserID, tenantID)

	if err := s.checkAccess("ResetToDefaults", actor, tenantID); err != nil {
		return nil, err
	}

	var services []*domain.Service
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.catalogRepo.ReplaceAll(txCtx, tenantID, domain.DefaultCatalogFor(tenantID)); err != nil {
			return err
		}

		var err error
		services, err = s.catalogRepo.List(txCtx, tenantID, domain.ServiceFilter{})
		return err
	})
	if err != nil {
		s.logger.Error("ResetToDefaults: failed for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: ResetToDefaults - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ResetToDefaults: tenant=%s now has %d services", tenantID, len(services))
	return models.FromDomainServices(services), nil
}

func (s *Service) get(ctx context.Context, method, tenantID, id string) (*domain.Service, error) {
	service, err := s.catalogRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if isServiceNotFound(err) {
			s.logger.Warn("%s: service=%s not found in tenant=%s", method, id, tenantID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("%s: repository error for service=%s: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return service, nil
}

func (s *Service) checkAccess(method string, actor domain.Actor, tenantID string) error {
	if !actor.CanManage(tenantID) {
		s.logger.Warn("%s: access denied for user=%s to tenant=%s", method, actor.UserID, tenantID)
		return ErrAccessDenied
	}
	return nil
}

func isServiceNotFound(err error) bool {
	return errors.Is(err, catalogRepo.ErrServiceNotFound) || errors.Is(err, kvstore.ErrServiceNotFound)
}
