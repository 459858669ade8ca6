package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	reviewRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/review"
	"github.com/m04kA/SMC-SalonService/internal/service/reviews/models"
	"github.com/m04kA/SMC-SalonService/pkg/validation"
)

// Service сервис отзывов
type Service struct {
	reviewRepo      ReviewRepository
	appointmentRepo AppointmentReader
	logger          Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(reviewRepo ReviewRepository, appointmentRepo AppointmentReader, logger Logger) *Service {
	return &Service{
		reviewRepo:      reviewRepo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Create оставляет отзыв к собственной выполненной записи; один отзыв на запись
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	return s.create(ctx, "Create", actor, req, func(status domain.AppointmentStatus) error {
		if status != domain.StatusCompleted {
			return ErrAppointmentNotCompleted
		}
		return nil
	})
}

// CreateForBooking отзыв с последнего шага сценария записи
// Запись ещё не выполнена, поэтому принимается любая неотмененная; отзыв уходит на модерацию
func (s *Service) CreateForBooking(ctx context.Context, actor domain.Actor, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	return s.create(ctx, "CreateForBooking", actor, req, func(status domain.AppointmentStatus) error {
		if status == domain.StatusCancelled {
			return ErrAppointmentCancelled
		}
		return nil
	})
}

func (s *Service) create(
	ctx context.Context,
	method string,
	actor domain.Actor,
	req *models.CreateReviewRequest,
	checkStatus func(status domain.AppointmentStatus) error,
) (*models.ReviewResponse, error) {
	s.logger.Info("%s: user=%s reviewing appointment=%s", method, actor.UserID, req.AppointmentID)

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("%s: validation failed: %v", method, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := domain.ValidateRating(req.Rating); err != nil {
		s.logger.Warn("%s: %v", method, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment=%s not found", method, req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: failed to load appointment=%s: %v", method, req.AppointmentID, err)
		return nil, fmt.Errorf("%w: %s - get appointment: %v", ErrInternal, method, err)
	}

	if appointment.CustomerID != actor.UserID {
		s.logger.Warn("%s: user=%s is not the customer of appointment=%s", method, actor.UserID, appointment.ID)
		return nil, ErrAccessDenied
	}
	if err := checkStatus(appointment.Status); err != nil {
		s.logger.Warn("%s: appointment=%s has status=%s", method, appointment.ID, appointment.Status)
		return nil, err
	}

	created, err := s.reviewRepo.Create(ctx, &domain.Review{
		ID:            uuid.NewString(),
		TenantID:      appointment.TenantID,
		UserID:        actor.UserID,
		AppointmentID: appointment.ID,
		Rating:        req.Rating,
		Comment:       strings.TrimSpace(req.Comment),
	})
	if err != nil {
		if errors.Is(err, reviewRepo.ErrReviewExists) {
			s.logger.Warn("%s: review for appointment=%s already exists", method, appointment.ID)
			return nil, ErrReviewExists
		}
		s.logger.Error("%s: repository error: %v", method, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}

	s.logger.Info("%s: review id=%s created for tenant=%s", method, created.ID, created.TenantID)
	return models.FromDomainReview(created), nil
}

// Update изменение отзыва автором; отзыв снова уходит на модерацию
func (s *Service) Update(ctx context.Context, actor domain.Actor, id string, req *models.UpdateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Update: user=%s updating review=%s", actor.UserID, id)

	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	review, err := s.load(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	if review.UserID != actor.UserID {
		s.logger.Warn("Update: user=%s is not the author of review=%s", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	if req.Rating != nil {
		if err := domain.ValidateRating(*req.Rating); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = strings.TrimSpace(*req.Comment)
	}
	review.IsApproved = false

	return s.save(ctx, "Update", review)
}

// Approve модерация отзыва операторами тенанта
func (s *Service) Approve(ctx context.Context, actor domain.Actor, id string, req *models.ApproveReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Approve: user=%s, review=%s, approved=%t", actor.UserID, id, req.IsApproved)

	review, err := s.load(ctx, "Approve", id)
	if err != nil {
		return nil, err
	}

	if !actor.CanManage(review.TenantID) {
		s.logger.Warn("Approve: access denied for user=%s to tenant=%s", actor.UserID, review.TenantID)
		return nil, ErrAccessDenied
	}

	review.IsApproved = req.IsApproved
	return s.save(ctx, "Approve", review)
}

// ListApproved опубликованные отзывы тенанта
func (s *Service) ListApproved(ctx context.Context, tenantID string) (*models.ReviewListResponse, error) {
	s.logger.Info("ListApproved: tenant=%s", tenantID)
	return s.list(ctx, "ListApproved", domain.ReviewFilter{TenantID: tenantID, ApprovedOnly: true})
}

// ListAll все отзывы тенанта, включая неодобренные (только операторы)
func (s *Service) ListAll(ctx context.Context, actor domain.Actor, tenantID string) (*models.ReviewListResponse, error) {
	s.logger.Info("ListAll: user=%s, tenant=%s", actor.UserID, tenantID)

	if !actor.CanManage(tenantID) {
		s.logger.Warn("ListAll: access denied for user=%s to tenant=%s", actor.UserID, tenantID)
		return nil, ErrAccessDenied
	}

	return s.list(ctx, "ListAll", domain.ReviewFilter{TenantID: tenantID})
}

func (s *Service) list(ctx context.Context, method string, filter domain.ReviewFilter) (*models.ReviewListResponse, error) {
	reviews, err := s.reviewRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error for tenant=%s: %v", method, filter.TenantID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}

	s.logger.Info("%s: found %d reviews for tenant=%s", method, len(reviews), filter.TenantID)
	return models.FromDomainReviews(reviews), nil
}

func (s *Service) load(ctx context.Context, method, id string) (*domain.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			s.logger.Warn("%s: review=%s not found", method, id)
			return nil, ErrReviewNotFound
		}
		s.logger.Error("%s: repository error for review=%s: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return review, nil
}

func (s *Service) save(ctx context.Context, method string, review *domain.Review) (*models.ReviewResponse, error) {
	saved, err := s.reviewRepo.Update(ctx, review)
	if err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		s.logger.Error("%s: repository error for review=%s: %v", method, review.ID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}

	s.logger.Info("%s: review=%s saved, approved=%t", method, saved.ID, saved.IsApproved)
	return models.FromDomainReview(saved), nil
}
