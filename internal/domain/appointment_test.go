package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotal(t *testing.T) {
	services := []ServiceSnapshot{
		{ServiceID: "a", Name: "Manicure", Price: 399, DurationMinutes: 30},
		{ServiceID: "b", Name: "Pedicure", Price: 599, DurationMinutes: 45},
	}

	tests := []struct {
		name       string
		location   Location
		wantTotal  int64
		wantCharge int64
	}{
		{name: "home adds surcharge", location: LocationHome, wantTotal: 1198, wantCharge: 200},
		{name: "parlor ignores surcharge", location: LocationParlor, wantTotal: 998, wantCharge: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, charge := ComputeTotal(services, tt.location, 200)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.wantCharge, charge)
		})
	}

	assert.Equal(t, 75, TotalDuration(services))
}

func TestAppointmentStatus_CanTransition(t *testing.T) {
	assert.True(t, StatusPending.CanTransition(StatusConfirmed))
	assert.True(t, StatusPending.CanTransition(StatusCancelled))
	assert.True(t, StatusConfirmed.CanTransition(StatusCompleted))

	assert.False(t, StatusPending.CanTransition(StatusCompleted))
	assert.False(t, StatusConfirmed.CanTransition(StatusCancelled))
	assert.False(t, StatusCancelled.CanTransition(StatusPending))

	for _, to := range []AppointmentStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled} {
		assert.False(t, StatusCompleted.CanTransition(to), "completed -> %s", to)
	}
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
}

func TestServiceSnapshots_ScanValue(t *testing.T) {
	in := ServiceSnapshots{{ServiceID: "x", Name: "Facial", Price: 799, DurationMinutes: 60, Category: CategoryRegular}}

	raw, err := in.Value()
	assert.NoError(t, err)

	var out ServiceSnapshots
	assert.NoError(t, out.Scan(raw))
	assert.Equal(t, in, out)

	assert.NoError(t, out.Scan(nil))
	assert.Empty(t, out)
}

func TestAppointment_Overlaps(t *testing.T) {
	a := &Appointment{StartTime: "10:00", DurationMinutes: 60}

	assert.True(t, a.Overlaps("10:30", 30))
	assert.True(t, a.Overlaps("09:30", 45))
	assert.False(t, a.Overlaps("11:00", 30))
	assert.False(t, a.Overlaps("09:00", 60))
}

func TestNewAppointmentStats(t *testing.T) {
	stats := NewAppointmentStats([]*Appointment{
		{Status: StatusCompleted, TotalPrice: 1000},
		{Status: StatusCompleted, TotalPrice: 500},
		{Status: StatusPending, TotalPrice: 300},
		{Status: StatusCancelled, TotalPrice: 900},
	})

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.ByStatus[StatusCompleted])
	assert.Equal(t, 0, stats.ByStatus[StatusConfirmed])
	assert.Equal(t, int64(1500), stats.Revenue)
	assert.Equal(t, int64(300), stats.PendingRevenue)
}

func TestCountOverlapping(t *testing.T) {
	appointments := []*Appointment{
		{StartTime: "10:00", DurationMinutes: 60, Status: StatusPending},
		{StartTime: "10:30", DurationMinutes: 30, Status: StatusConfirmed},
		{StartTime: "10:00", DurationMinutes: 60, Status: StatusCancelled},
		{StartTime: "11:00", DurationMinutes: 30, Status: StatusPending},
	}

	assert.Equal(t, 2, CountOverlapping(appointments, "10:30", 30))
	assert.Equal(t, 1, CountOverlapping(appointments, "10:00", 30))
	// граничащие записи не пересекаются
	assert.Equal(t, 1, CountOverlapping(appointments, "11:00", 30))
	assert.Equal(t, 0, CountOverlapping(appointments, "11:30", 30))
}
