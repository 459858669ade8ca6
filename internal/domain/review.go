package domain

import (
	"fmt"
	"time"
)

// Review отзыв клиента о выполненной записи
type Review struct {
	ID            string
	TenantID      string
	UserID        string
	AppointmentID string // одна запись - один отзыв
	Rating        int
	Comment       string
	IsApproved    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidateRating проверяет оценку
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidRating, rating, MinRating, MaxRating)
	}
	return nil
}

// ReviewFilter фильтр отзывов тенанта
type ReviewFilter struct {
	TenantID     string
	ApprovedOnly bool
}
