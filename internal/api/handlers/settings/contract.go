package settings

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/settings/models"
)

type SettingsService interface {
	Get(ctx context.Context, actor *domain.Actor, tenantID string) (*models.SettingsResponse, error)
	Update(ctx context.Context, actor domain.Actor, tenantID string, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
