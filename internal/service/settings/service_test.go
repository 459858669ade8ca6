package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SalonService/internal/service/settings/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type fakeSettingsRepo struct {
	items map[string]domain.BusinessSettings
}

func (f *fakeSettingsRepo) GetByTenantID(_ context.Context, tenantID string) (*domain.BusinessSettings, error) {
	s, ok := f.items[tenantID]
	if !ok {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return &s, nil
}

func (f *fakeSettingsRepo) Update(_ context.Context, s *domain.BusinessSettings) (*domain.BusinessSettings, error) {
	if _, ok := f.items[s.TenantID]; !ok {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	f.items[s.TenantID] = *s
	return s, nil
}

func newTestService() (*Service, *fakeSettingsRepo) {
	defaults := domain.DefaultSettings("t1")
	defaults.NotificationWebhook = ptr.Ptr("https://hooks.example.com/salon")
	repo := &fakeSettingsRepo{items: map[string]domain.BusinessSettings{"t1": *defaults}}
	return NewService(repo, logger.NewNop()), repo
}

var owner = domain.Actor{UserID: "u1", Role: domain.RoleOwner, TenantID: ptr.Ptr("t1")}

func TestGet_PublicHidesWebhook(t *testing.T) {
	svc, _ := newTestService()

	public, err := svc.Get(context.Background(), nil, "t1")
	require.NoError(t, err)
	assert.Nil(t, public.NotificationWebhook)
	assert.Equal(t, "10:00", public.OpenTime)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, public.WorkingDays)

	private, err := svc.Get(context.Background(), &owner, "t1")
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.example.com/salon", ptr.Value(private.NotificationWebhook))
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Get(context.Background(), nil, "missing")
	assert.ErrorIs(t, err, ErrSettingsNotFound)
}

func TestUpdate(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Update(context.Background(), owner, "t1", &models.UpdateSettingsRequest{
		OpenTime:           ptr.Ptr("09:00"),
		HomeServiceEnabled: ptr.Ptr(true),
		HomeServiceCharge:  ptr.Ptr(int64(200)),
		Phone:              ptr.Ptr("+91 90000 00000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "09:00", resp.OpenTime)
	assert.True(t, resp.HomeServiceEnabled)
	assert.Equal(t, int64(200), repo.items["t1"].HomeServiceCharge)

	// пустая строка очищает контакт
	_, err = svc.Update(context.Background(), owner, "t1", &models.UpdateSettingsRequest{Phone: ptr.Ptr("")})
	require.NoError(t, err)
	assert.Nil(t, repo.items["t1"].Phone)
}

func TestUpdate_Rejects(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name  string
		actor domain.Actor
		req   models.UpdateSettingsRequest
		err   error
	}{
		{"customer", domain.Actor{UserID: "c1", Role: domain.RoleCustomer}, models.UpdateSettingsRequest{}, ErrAccessDenied},
		{"staff of other tenant", domain.Actor{UserID: "s1", Role: domain.RoleStaff, TenantID: ptr.Ptr("t2")}, models.UpdateSettingsRequest{}, ErrAccessDenied},
		{"close before open", owner, models.UpdateSettingsRequest{CloseTime: ptr.Ptr("09:00")}, ErrInvalidInput},
		{"negative charge", owner, models.UpdateSettingsRequest{HomeServiceCharge: ptr.Ptr(int64(-1))}, ErrInvalidInput},
		{"zero capacity", owner, models.UpdateSettingsRequest{MaxConcurrentBookings: ptr.Ptr(0)}, ErrInvalidInput},
		{"bad weekday", owner, models.UpdateSettingsRequest{WorkingDays: []int{1, 7}}, ErrInvalidInput},
		{"bad webhook", owner, models.UpdateSettingsRequest{NotificationWebhook: ptr.Ptr("not a url")}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), tt.actor, "t1", &tt.req)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestUpdate_SuperadminAllowed(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Update(context.Background(), domain.Actor{UserID: "a1", Role: domain.RoleSuperadmin}, "t1",
		&models.UpdateSettingsRequest{Theme: ptr.Ptr("lavender")})
	require.NoError(t, err)
	assert.Equal(t, "lavender", resp.Theme)
}
