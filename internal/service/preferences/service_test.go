package preferences

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/kvstore"
	"github.com/m04kA/SMC-SalonService/internal/service/preferences/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

func newTestService(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(kvstore.NewPreferencesStore(client), logger.NewNop()), mr
}

func TestPreferences(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	actor := domain.Actor{UserID: "u1", Role: domain.RoleCustomer}

	prefs, err := svc.Get(ctx, actor)
	require.NoError(t, err)
	assert.False(t, prefs.DarkMode)

	prefs, err = svc.Update(ctx, actor, &models.PreferencesRequest{DarkMode: ptr.Ptr(true)})
	require.NoError(t, err)
	assert.True(t, prefs.DarkMode)

	// пустой запрос ничего не меняет
	prefs, err = svc.Update(ctx, actor, &models.PreferencesRequest{})
	require.NoError(t, err)
	assert.True(t, prefs.DarkMode)

	other, err := svc.Get(ctx, domain.Actor{UserID: "u2"})
	require.NoError(t, err)
	assert.False(t, other.DarkMode)
}

func TestPreferences_StoreUnavailable(t *testing.T) {
	svc, mr := newTestService(t)
	mr.Close()

	_, err := svc.Get(context.Background(), domain.Actor{UserID: "u1"})
	assert.ErrorIs(t, err, ErrInternal)
}
