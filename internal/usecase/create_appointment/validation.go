package create_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID == "" {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	if req.CustomerID == "" {
		return fmt.Errorf("%w: customerID is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service must be selected", ErrInvalidInput)
	}

	seen := make(map[string]bool, len(req.ServiceIDs))
	for _, id := range req.ServiceIDs {
		if id == "" {
			return fmt.Errorf("%w: empty service id", ErrInvalidInput)
		}
		if seen[id] {
			return fmt.Errorf("%w: service %s selected twice", ErrInvalidInput, id)
		}
		seen[id] = true
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	switch req.Location {
	case domain.LocationParlor:
	case domain.LocationHome:
		if req.Address == nil || strings.TrimSpace(*req.Address) == "" {
			return fmt.Errorf("%w: address is required for home service", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown location %q", ErrInvalidInput, req.Location)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата подходит для записи
func validateDate(date time.Time, now time.Time, settings *domain.BusinessSettings) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, date.Location())
	if !settings.IsWithinBookingWindow(dateOnly(date), today) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, settings.AdvanceBookingDays)
	}

	if !settings.IsWorkingDay(date) {
		return ErrBusinessClosed
	}

	return nil
}

// validateTime проверяет рабочие часы и, для сегодняшней даты, что время ещё не прошло
func validateTime(date time.Time, start types.TimeString, durationMinutes int, now time.Time, settings *domain.BusinessSettings) error {
	if !settings.FitsWorkingHours(start, durationMinutes) {
		return fmt.Errorf("%w: %s + %d min is outside %s-%s",
			ErrOutsideWorkingHours, start, durationMinutes, settings.OpenTime, settings.CloseTime)
	}

	if isSameDay(date, now) && start.IsBefore(types.NewTimeString(now)) {
		return ErrTooLateToBook
	}

	return nil
}

// selectServices снапшоты выбранных услуг в порядке выбора
func selectServices(ids []string, found []*domain.Service) ([]domain.ServiceSnapshot, error) {
	byID := make(map[string]*domain.Service, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	snapshots := make([]domain.ServiceSnapshot, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, id)
		}
		if !s.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrServiceInactive, s.Name)
		}
		snapshots = append(snapshots, domain.NewServiceSnapshot(s))
	}

	return snapshots, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, date.Location())
	return dateOnly(date).Before(nowOnly)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
