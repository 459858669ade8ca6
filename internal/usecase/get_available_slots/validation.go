package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID == "" {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата подходит для записи
func validateDate(date time.Time, now time.Time, settings *domain.BusinessSettings) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, date.Location())
	if !settings.IsWithinBookingWindow(date, today) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, settings.AdvanceBookingDays)
	}

	return nil
}
