package settings

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек бизнеса
type SettingsRepository interface {
	GetByTenantID(ctx context.Context, tenantID string) (*domain.BusinessSettings, error)
	Update(ctx context.Context, s *domain.BusinessSettings) (*domain.BusinessSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
