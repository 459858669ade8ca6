package reviews

import "errors"

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrAppointmentNotCompleted отзыв можно оставить только к выполненной записи
	ErrAppointmentNotCompleted = errors.New("appointment is not completed")
	// ErrAppointmentCancelled к отмененной записи отзыв не принимается
	ErrAppointmentCancelled = errors.New("appointment is cancelled")
	ErrReviewExists         = errors.New("review for this appointment already exists")
	ErrAccessDenied         = errors.New("access denied")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInternal             = errors.New("service: internal error")
)
