package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings_Valid(t *testing.T) {
	s := DefaultSettings("t1")
	assert.NoError(t, s.Validate())
	assert.Equal(t, "INR", s.Currency)
}

func TestBusinessSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *BusinessSettings)
	}{
		{"close before open", func(s *BusinessSettings) { s.CloseTime = "09:00" }},
		{"bad time", func(s *BusinessSettings) { s.OpenTime = "25:00" }},
		{"no working days", func(s *BusinessSettings) { s.WorkingDays = nil }},
		{"day out of range", func(s *BusinessSettings) { s.WorkingDays = []int{7} }},
		{"duplicate day", func(s *BusinessSettings) { s.WorkingDays = []int{1, 1} }},
		{"zero capacity", func(s *BusinessSettings) { s.MaxConcurrentBookings = 0 }},
		{"negative charge", func(s *BusinessSettings) { s.HomeServiceCharge = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings("t1")
			tt.mutate(s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)
		})
	}
}

func TestBusinessSettings_Schedule(t *testing.T) {
	s := DefaultSettings("t1")

	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	monday := sunday.AddDate(0, 0, 1)
	assert.False(t, s.IsWorkingDay(sunday))
	assert.True(t, s.IsWorkingDay(monday))

	assert.True(t, s.FitsWorkingHours("10:00", 60))
	assert.True(t, s.FitsWorkingHours("19:00", 60))
	assert.False(t, s.FitsWorkingHours("19:30", 60))
	assert.False(t, s.FitsWorkingHours("09:30", 30))

	s.AdvanceBookingDays = 7
	assert.True(t, s.IsWithinBookingWindow(monday.AddDate(0, 0, 7), monday))
	assert.False(t, s.IsWithinBookingWindow(monday.AddDate(0, 0, 8), monday))
}

func TestValidateRating(t *testing.T) {
	assert.NoError(t, ValidateRating(1))
	assert.NoError(t, ValidateRating(5))
	assert.ErrorIs(t, ValidateRating(0), ErrInvalidRating)
	assert.ErrorIs(t, ValidateRating(6), ErrInvalidRating)
}

func TestUserIDFromEmail_StablePerEmail(t *testing.T) {
	assert.Equal(t, UserIDFromEmail("Priya@Example.com"), UserIDFromEmail(" priya@example.com"))
	assert.NotEqual(t, UserIDFromEmail("a@example.com"), UserIDFromEmail("b@example.com"))
}

func TestActor_CanManage(t *testing.T) {
	t1 := "t1"
	owner := Actor{UserID: "u1", Role: RoleOwner, TenantID: &t1}
	staff := Actor{UserID: "u2", Role: RoleStaff, TenantID: &t1}
	customer := Actor{UserID: "u3", Role: RoleCustomer, TenantID: &t1}
	admin := Actor{UserID: "u4", Role: RoleSuperadmin}

	assert.True(t, owner.CanManage("t1"))
	assert.True(t, staff.CanManage("t1"))
	assert.False(t, owner.CanManage("t2"))
	assert.False(t, customer.CanManage("t1"))
	assert.True(t, admin.CanManage("t2"))
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Glow & Go Salon":    "glow-go-salon",
		"  Priya's  Parlor ": "priya-s-parlor",
		"Studio_21":          "studio-21",
		"!!!":                DefaultSlug,
		"Салон Красоты":      DefaultSlug,
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}
