package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/settings"
	tenantRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

var (
	fixedNow = time.Date(2024, 5, 13, 9, 0, 0, 0, time.UTC) // понедельник
	tuesday  = time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeAppointments []*domain.Appointment

func (f fakeAppointments) ListActiveForDate(_ context.Context, tenantID string, date time.Time) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, a := range f {
		if a.TenantID == tenantID && a.Date.Equal(date) {
			result = append(result, a)
		}
	}
	return result, nil
}

type fakeTenants map[string]*domain.Tenant

func (f fakeTenants) GetByID(_ context.Context, id string) (*domain.Tenant, error) {
	t, ok := f[id]
	if !ok {
		return nil, tenantRepo.ErrTenantNotFound
	}
	return t, nil
}

type fakeSettings map[string]*domain.BusinessSettings

func (f fakeSettings) GetByTenantID(_ context.Context, tenantID string) (*domain.BusinessSettings, error) {
	s, ok := f[tenantID]
	if !ok {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return s, nil
}

type fakeCatalog []*domain.Service

func (f fakeCatalog) GetByIDs(_ context.Context, _ string, ids []string) ([]*domain.Service, error) {
	result := make([]*domain.Service, 0)
	for _, s := range f {
		for _, id := range ids {
			if s.ID == id {
				result = append(result, s)
			}
		}
	}
	return result, nil
}

func newUseCase(appointments fakeAppointments, settings *domain.BusinessSettings, now time.Time) *UseCase {
	catalog := fakeCatalog{
		{ID: "mani", TenantID: "t1", Name: "Manicure", DurationMinutes: 30, IsActive: true},
		{ID: "pedi", TenantID: "t1", Name: "Pedicure", DurationMinutes: 45, IsActive: true},
		{ID: "old", TenantID: "t1", Name: "Old", DurationMinutes: 30, IsActive: false},
	}
	uc := NewUseCase(appointments, fakeTenants{"t1": {ID: "t1", IsActive: true}},
		fakeSettings{"t1": settings}, catalog, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func shortDay() *domain.BusinessSettings {
	s := domain.DefaultSettings("t1")
	s.OpenTime = "10:00"
	s.CloseTime = "12:00"
	return s
}

func startTimes(slots []domain.AvailableSlot) []types.TimeString {
	result := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.StartTime)
	}
	return result
}

func TestExecute_GeneratesSlotsWithSpots(t *testing.T) {
	appointments := fakeAppointments{
		{TenantID: "t1", Date: tuesday, StartTime: "10:00", DurationMinutes: 45, Status: domain.StatusPending},
		{TenantID: "t1", Date: tuesday, StartTime: "10:30", DurationMinutes: 30, Status: domain.StatusConfirmed},
	}
	uc := newUseCase(appointments, shortDay(), fixedNow)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: "t1", Date: tuesday})
	require.NoError(t, err)

	assert.True(t, resp.IsOpen)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, []types.TimeString{"10:00", "10:30", "11:00", "11:30"}, startTimes(resp.Slots))

	spots := []int{1, 0, 2, 2}
	for i, slot := range resp.Slots {
		assert.Equal(t, spots[i], slot.AvailableSpots, "slot %s", slot.StartTime)
		assert.Equal(t, 2, slot.TotalSpots)
	}
	assert.True(t, resp.Slots[1].IsFull())
}

func TestExecute_DurationFromServices(t *testing.T) {
	uc := newUseCase(nil, shortDay(), fixedNow)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: "t1", Date: tuesday, ServiceIDs: []string{"mani", "pedi"}})
	require.NoError(t, err)

	// 75 минут: последний старт, укладывающийся до 12:00, - 10:30
	assert.Equal(t, 75, resp.DurationMinutes)
	assert.Equal(t, []types.TimeString{"10:00", "10:30"}, startTimes(resp.Slots))

	_, err = uc.Execute(context.Background(), &Request{TenantID: "t1", Date: tuesday, ServiceIDs: []string{"old"}})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_TodaySkipsPastSlots(t *testing.T) {
	uc := newUseCase(nil, shortDay(), time.Date(2024, 5, 14, 10, 40, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{TenantID: "t1", Date: tuesday})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"11:00", "11:30"}, startTimes(resp.Slots))
}

func TestExecute_ClosedDay(t *testing.T) {
	uc := newUseCase(nil, shortDay(), fixedNow)
	sunday := time.Date(2024, 5, 19, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: "t1", Date: sunday})
	require.NoError(t, err)
	assert.False(t, resp.IsOpen)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Errors(t *testing.T) {
	settings := shortDay()
	settings.AdvanceBookingDays = 3
	uc := newUseCase(nil, settings, fixedNow)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{TenantID: "t1"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{TenantID: "t1", Date: fixedNow.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.Execute(ctx, &Request{TenantID: "t1", Date: tuesday.AddDate(0, 0, 7)})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)

	_, err = uc.Execute(ctx, &Request{TenantID: "nope", Date: tuesday})
	assert.ErrorIs(t, err, ErrTenantNotFound)
}
