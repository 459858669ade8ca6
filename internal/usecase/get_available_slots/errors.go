package get_available_slots

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант не найден или деактивирован
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrServiceNotFound возвращается, когда выбранная услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
