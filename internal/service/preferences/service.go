package preferences

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/preferences/models"
)

// Service UI-настройки пользователя
type Service struct {
	store  PreferencesStore
	logger Logger
}

func NewService(store PreferencesStore, logger Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Get настройки текущего пользователя; по умолчанию светлая тема
func (s *Service) Get(ctx context.Context, actor domain.Actor) (*models.PreferencesResponse, error) {
	prefs, err := s.store.Get(ctx, actor.UserID)
	if err != nil {
		s.logger.Error("Get: failed to load preferences of user=%s: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: Get - store error: %v", ErrInternal, err)
	}
	return models.FromStored(prefs), nil
}

// Update меняет только переданные поля
func (s *Service) Update(ctx context.Context, actor domain.Actor, req *models.PreferencesRequest) (*models.PreferencesResponse, error) {
	s.logger.Info("Update: user=%s", actor.UserID)

	prefs, err := s.store.Get(ctx, actor.UserID)
	if err != nil {
		s.logger.Error("Update: failed to load preferences of user=%s: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: Update - store error: %v", ErrInternal, err)
	}

	if req.DarkMode != nil {
		prefs.DarkMode = *req.DarkMode
	}

	if err := s.store.Put(ctx, actor.UserID, prefs); err != nil {
		s.logger.Error("Update: failed to save preferences of user=%s: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: Update - store error: %v", ErrInternal, err)
	}

	return models.FromStored(prefs), nil
}
