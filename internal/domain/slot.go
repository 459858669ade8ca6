package domain

import "github.com/m04kA/SMC-SalonService/pkg/types"

// AvailableSlot слот расписания на дату
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	AvailableSpots  int // свободные места (мастера)
	TotalSpots      int
}

// IsFull на это время свободных мастеров нет
func (s *AvailableSlot) IsFull() bool {
	return s.AvailableSpots <= 0
}
