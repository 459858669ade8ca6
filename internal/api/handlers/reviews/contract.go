package reviews

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/reviews/models"
)

type ReviewService interface {
	Create(ctx context.Context, actor domain.Actor, req *models.CreateReviewRequest) (*models.ReviewResponse, error)
	Update(ctx context.Context, actor domain.Actor, id string, req *models.UpdateReviewRequest) (*models.ReviewResponse, error)
	Approve(ctx context.Context, actor domain.Actor, id string, req *models.ApproveReviewRequest) (*models.ReviewResponse, error)
	ListApproved(ctx context.Context, tenantID string) (*models.ReviewListResponse, error)
	ListAll(ctx context.Context, actor domain.Actor, tenantID string) (*models.ReviewListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
