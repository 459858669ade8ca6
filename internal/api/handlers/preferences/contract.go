package preferences

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/preferences/models"
)

type PreferencesService interface {
	Get(ctx context.Context, actor domain.Actor) (*models.PreferencesResponse, error)
	Update(ctx context.Context, actor domain.Actor, req *models.PreferencesRequest) (*models.PreferencesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
