package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// CreateReviewRequest отзыв к выполненной записи
type CreateReviewRequest struct {
	AppointmentID string `json:"appointmentId" validate:"required"`
	Rating        int    `json:"rating" validate:"required"`
	Comment       string `json:"comment" validate:"max=2000"`
}

// UpdateReviewRequest изменение отзыва автором
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

// ApproveReviewRequest модерация отзыва
type ApproveReviewRequest struct {
	IsApproved bool `json:"isApproved"`
}

// ReviewResponse отзыв
type ReviewResponse struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenantId"`
	UserID        string    `json:"userId"`
	AppointmentID string    `json:"appointmentId"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	IsApproved    bool      `json:"isApproved"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ReviewListResponse список отзывов со средней оценкой
type ReviewListResponse struct {
	Reviews       []*ReviewResponse `json:"reviews"`
	Total         int               `json:"total"`
	AverageRating float64           `json:"averageRating"`
}

// FromDomainReview конвертирует domain.Review в ReviewResponse
func FromDomainReview(r *domain.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:            r.ID,
		TenantID:      r.TenantID,
		UserID:        r.UserID,
		AppointmentID: r.AppointmentID,
		Rating:        r.Rating,
		Comment:       r.Comment,
		IsApproved:    r.IsApproved,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// FromDomainReviews конвертирует список отзывов
func FromDomainReviews(reviews []*domain.Review) *ReviewListResponse {
	result := make([]*ReviewResponse, 0, len(reviews))
	sum := 0
	for _, r := range reviews {
		result = append(result, FromDomainReview(r))
		sum += r.Rating
	}

	resp := &ReviewListResponse{Reviews: result, Total: len(result)}
	if len(result) > 0 {
		resp.AverageRating = float64(sum) / float64(len(result))
	}
	return resp
}
