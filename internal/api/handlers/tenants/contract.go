package tenants

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/tenants/models"
)

type TenantService interface {
	Register(ctx context.Context, actor domain.Actor, req *models.RegisterTenantRequest) (*models.TenantWithSettingsResponse, error)
	Session(ctx context.Context, actor *domain.Actor, slug string) (*models.SessionResponse, error)
	GetBySlug(ctx context.Context, slug string) (*models.TenantWithSettingsResponse, error)
	List(ctx context.Context, actor domain.Actor, includeInactive bool) ([]*models.TenantResponse, error)
	SetActive(ctx context.Context, actor domain.Actor, tenantID string, active bool) (*models.TenantResponse, error)
	AddStaff(ctx context.Context, actor domain.Actor, tenantID string, req *models.AddStaffRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
