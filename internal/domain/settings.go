package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// BusinessSettings настройки бизнеса (одна запись на тенант)
type BusinessSettings struct {
	TenantID              string
	Phone                 *string
	Email                 *string
	Address               *string
	OpenTime              types.TimeString
	CloseTime             types.TimeString
	WorkingDays           []int // 0 = воскресенье ... 6 = суббота
	SlotDurationMinutes   int
	MaxConcurrentBookings int
	AdvanceBookingDays    int // 0 = без ограничения
	HomeServiceEnabled    bool
	HomeServiceCharge     int64
	Theme                 string
	Currency              string
	NotificationWebhook   *string
	UpdatedAt             time.Time
}

// DefaultSettings настройки, создаваемые при регистрации бизнеса
func DefaultSettings(tenantID string) *BusinessSettings {
	return &BusinessSettings{
		TenantID:              tenantID,
		OpenTime:              DefaultOpenTime,
		CloseTime:             DefaultCloseTime,
		WorkingDays:           []int{1, 2, 3, 4, 5, 6},
		SlotDurationMinutes:   DefaultSlotDurationMinutes,
		MaxConcurrentBookings: DefaultMaxConcurrentBookings,
		AdvanceBookingDays:    DefaultAdvanceBookingDays,
		Theme:                 DefaultTheme,
		Currency:              DefaultCurrency,
	}
}

// IsWorkingDay работает ли бизнес в этот день недели
func (s *BusinessSettings) IsWorkingDay(date time.Time) bool {
	weekday := int(date.Weekday())
	for _, d := range s.WorkingDays {
		if d == weekday {
			return true
		}
	}
	return false
}

// FitsWorkingHours укладывается ли интервал в часы работы
func (s *BusinessSettings) FitsWorkingHours(start types.TimeString, durationMinutes int) bool {
	startMin := start.Minutes()
	if startMin < 0 || startMin < s.OpenTime.Minutes() {
		return false
	}
	return startMin+durationMinutes <= s.CloseTime.Minutes()
}

// IsWithinBookingWindow проверяет ограничение на запись заранее
func (s *BusinessSettings) IsWithinBookingWindow(date, today time.Time) bool {
	if s.AdvanceBookingDays <= 0 {
		return true
	}
	maxDate := today.AddDate(0, 0, s.AdvanceBookingDays)
	return !date.After(maxDate)
}

// Validate проверяет настройки
func (s *BusinessSettings) Validate() error {
	if err := s.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: open time: %v", ErrInvalidSettings, err)
	}
	if err := s.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: close time: %v", ErrInvalidSettings, err)
	}
	if !s.OpenTime.IsBefore(s.CloseTime) {
		return fmt.Errorf("%w: open time must be before close time", ErrInvalidSettings)
	}
	if len(s.WorkingDays) == 0 {
		return fmt.Errorf("%w: at least one working day is required", ErrInvalidSettings)
	}
	seen := make(map[int]bool, len(s.WorkingDays))
	for _, d := range s.WorkingDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: working day %d out of range", ErrInvalidSettings, d)
		}
		if seen[d] {
			return fmt.Errorf("%w: duplicate working day %d", ErrInvalidSettings, d)
		}
		seen[d] = true
	}
	if s.SlotDurationMinutes < MinSlotDurationMinutes || s.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be in [%d, %d]",
			ErrInvalidSettings, MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}
	if s.MaxConcurrentBookings < MinConcurrentBookings || s.MaxConcurrentBookings > MaxConcurrentBookings {
		return fmt.Errorf("%w: max concurrent bookings must be in [%d, %d]",
			ErrInvalidSettings, MinConcurrentBookings, MaxConcurrentBookings)
	}
	if s.AdvanceBookingDays < 0 || s.AdvanceBookingDays > MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advance booking days must be in [0, %d]", ErrInvalidSettings, MaxAdvanceBookingDays)
	}
	if s.HomeServiceCharge < 0 {
		return fmt.Errorf("%w: home service charge cannot be negative", ErrInvalidSettings)
	}
	return nil
}
