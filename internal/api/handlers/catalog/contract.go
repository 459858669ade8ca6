package catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
)

type CatalogService interface {
	List(ctx context.Context, actor *domain.Actor, tenantID string, req *models.ListServicesRequest) (*models.ServiceListResponse, error)
	Get(ctx context.Context, tenantID, id string) (*models.ServiceResponse, error)
	Add(ctx context.Context, actor domain.Actor, tenantID string, req *models.CreateServiceRequest) (*models.ServiceResponse, error)
	Update(ctx context.Context, actor domain.Actor, tenantID, id string, req *models.UpdateServiceRequest) (*models.ServiceResponse, error)
	Delete(ctx context.Context, actor domain.Actor, tenantID, id string) error
	Restore(ctx context.Context, actor domain.Actor, tenantID, id string) error
	ResetToDefaults(ctx context.Context, actor domain.Actor, tenantID string) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
