package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SalonService/internal/service/settings/models"
	"github.com/m04kA/SMC-SalonService/pkg/validation"
)

// Service сервис настроек бизнеса
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get публичные настройки тенанта
// Оператор тенанта дополнительно видит вебхук уведомлений
func (s *Service) Get(ctx context.Context, actor *domain.Actor, tenantID string) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for tenant=%s", tenantID)

	settings, err := s.load(ctx, "Get", tenantID)
	if err != nil {
		return nil, err
	}

	includePrivate := actor != nil && actor.CanManage(tenantID)
	return models.FromDomainSettings(settings, includePrivate), nil
}

// Update обновляет настройки (owner/staff тенанта или superadmin)
func (s *Service) Update(ctx context.Context, actor domain.Actor, tenantID string, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: user=%s updating settings for tenant=%s", actor.UserID, tenantID)

	if !actor.CanManage(tenantID) {
		s.logger.Warn("Update: access denied for user=%s to tenant=%s", actor.UserID, tenantID)
		return nil, ErrAccessDenied
	}

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	current, err := s.load(ctx, "Update", tenantID)
	if err != nil {
		return nil, err
	}

	updated := req.Apply(*current)
	if err := updated.Validate(); err != nil {
		s.logger.Warn("Update: invalid settings for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.settingsRepo.Update(ctx, &updated)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return nil, ErrSettingsNotFound
		}
		s.logger.Error("Update: repository error for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: settings for tenant=%s updated", tenantID)
	return models.FromDomainSettings(saved, true), nil
}

func (s *Service) load(ctx context.Context, method, tenantID string) (*domain.BusinessSettings, error) {
	settings, err := s.settingsRepo.GetByTenantID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("%s: settings for tenant=%s not found", method, tenantID)
			return nil, ErrSettingsNotFound
		}
		s.logger.Error("%s: repository error for tenant=%s: %v", method, tenantID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return settings, nil
}
