package appointments

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAccessDenied        = errors.New("access denied")
	// ErrInvalidTransition переход статуса не разрешен таблицей переходов
	ErrInvalidTransition = errors.New("status transition is not allowed")
	// ErrStatusConflict статус записи изменился параллельно
	ErrStatusConflict = errors.New("appointment status changed concurrently")
	// ErrPaymentNotAllowed оплата отмененной записи
	ErrPaymentNotAllowed = errors.New("payment cannot be recorded for a cancelled appointment")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInternal          = errors.New("service: internal error")
)
