package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// generateTimeSlots генерирует начала слотов с шагом slotDuration от открытия
// Слот попадает в список, только если запись длительностью duration укладывается до закрытия
// Для сегодняшней даты прошедшие слоты отбрасываются
func generateTimeSlots(
	settings *domain.BusinessSettings,
	duration int,
	requestDate time.Time,
	now time.Time,
) ([]types.TimeString, error) {
	slots := make([]types.TimeString, 0)
	step := settings.SlotDurationMinutes
	if step <= 0 {
		step = domain.DefaultSlotDurationMinutes
	}

	today := isSameDay(requestDate, now)
	current := types.NewTimeString(now)

	for start := settings.OpenTime.Minutes(); start+duration <= settings.CloseTime.Minutes(); start += step {
		slot, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			return nil, err
		}
		if today && slot.IsBefore(current) {
			continue
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// calculateAvailableSpots вычисляет количество свободных мест для каждого слота
// Пересечение считается только при реальном наложении интервалов, граничащие записи не мешают
func calculateAvailableSpots(
	slots []types.TimeString,
	duration int,
	appointments []*domain.Appointment,
	maxConcurrentBookings int,
) []domain.AvailableSlot {
	result := make([]domain.AvailableSlot, len(slots))

	for i, slotStart := range slots {
		availableSpots := maxConcurrentBookings - domain.CountOverlapping(appointments, slotStart, duration)
		if availableSpots < 0 {
			availableSpots = 0
		}

		result[i] = domain.AvailableSlot{
			StartTime:       slotStart,
			DurationMinutes: duration,
			AvailableSpots:  availableSpots,
			TotalSpots:      maxConcurrentBookings,
		}
	}

	return result
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, date.Location())
	return dateOnly.Before(nowOnly)
}
