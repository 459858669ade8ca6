package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/kvstore"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type noTx struct{}

func (noTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var owner = domain.Actor{UserID: "owner-1", Role: domain.RoleOwner, TenantID: ptr.Ptr("t1")}

func newTestService(t *testing.T) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewService(kvstore.NewCatalogRepository(client), noTx{}, logger.NewNop())
}

func add(t *testing.T, svc *Service, name string, price int64, duration int, category string) *models.ServiceResponse {
	t.Helper()
	created, err := svc.Add(context.Background(), owner, "t1", &models.CreateServiceRequest{
		Name:            name,
		Price:           price,
		DurationMinutes: duration,
		Category:        category,
	})
	require.NoError(t, err)
	return created
}

func TestAdd_AssignsDistinctIDs(t *testing.T) {
	svc := newTestService(t)

	a := add(t, svc, "Haircut", 499, 45, "regular")
	b := add(t, svc, "Haircut", 499, 45, "regular")

	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, a.IsActive)

	list, err := svc.List(context.Background(), nil, "t1", &models.ListServicesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
}

func TestUpdate_KeepsIDAndTenant(t *testing.T) {
	svc := newTestService(t)
	created := add(t, svc, "Facial", 799, 60, "regular")

	updated, err := svc.Update(context.Background(), owner, "t1", created.ID, &models.UpdateServiceRequest{
		Price:    ptr.Ptr(int64(899)),
		Category: ptr.Ptr("bridal"),
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "t1", updated.TenantID)
	assert.Equal(t, "Facial", updated.Name)
	assert.Equal(t, int64(899), updated.Price)
	assert.Equal(t, "bridal", updated.Category)
}

func TestDelete_IsSoft(t *testing.T) {
	svc := newTestService(t)
	created := add(t, svc, "Cleanup", 500, 30, "regular")

	require.NoError(t, svc.Delete(context.Background(), owner, "t1", created.ID))

	active, err := svc.List(context.Background(), nil, "t1", &models.ListServicesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, active.Total)

	all, err := svc.List(context.Background(), &owner, "t1", &models.ListServicesRequest{IncludeInactive: true})
	require.NoError(t, err)
	require.Equal(t, 1, all.Total)
	assert.False(t, all.Services[0].IsActive)
	assert.Equal(t, int64(500), all.Services[0].Price)
	assert.Equal(t, 30, all.Services[0].DurationMinutes)

	require.NoError(t, svc.Restore(context.Background(), owner, "t1", created.ID))
	active, err = svc.List(context.Background(), nil, "t1", &models.ListServicesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, active.Total)
}

func TestList_SortedAndFiltered(t *testing.T) {
	svc := newTestService(t)
	add(t, svc, "Mehendi", 2999, 120, "bridal")
	add(t, svc, "Threading", 99, 15, "regular")
	add(t, svc, "Bridal Makeup", 14999, 180, "bridal")
	add(t, svc, "Manicure", 399, 30, "regular")

	list, err := svc.List(context.Background(), nil, "t1", &models.ListServicesRequest{})
	require.NoError(t, err)
	names := make([]string, 0, list.Total)
	for _, s := range list.Services {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Bridal Makeup", "Mehendi", "Manicure", "Threading"}, names)

	bridal, err := svc.List(context.Background(), nil, "t1", &models.ListServicesRequest{Category: ptr.Ptr("bridal")})
	require.NoError(t, err)
	assert.Equal(t, 2, bridal.Total)

	_, err = svc.List(context.Background(), nil, "t1", &models.ListServicesRequest{Category: ptr.Ptr("spa")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMutations_RequireOperator(t *testing.T) {
	svc := newTestService(t)
	created := add(t, svc, "Facial", 799, 60, "regular")
	customer := domain.Actor{UserID: "c1", Role: domain.RoleCustomer}
	foreignStaff := domain.Actor{UserID: "s2", Role: domain.RoleStaff, TenantID: ptr.Ptr("t2")}

	for _, actor := range []domain.Actor{customer, foreignStaff} {
		_, err := svc.Add(context.Background(), actor, "t1", &models.CreateServiceRequest{Name: "X", Price: 1, DurationMinutes: 1, Category: "regular"})
		assert.ErrorIs(t, err, ErrAccessDenied)
		_, err = svc.Update(context.Background(), actor, "t1", created.ID, &models.UpdateServiceRequest{})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.ErrorIs(t, svc.Delete(context.Background(), actor, "t1", created.ID), ErrAccessDenied)
		_, err = svc.ResetToDefaults(context.Background(), actor, "t1")
		assert.ErrorIs(t, err, ErrAccessDenied)
	}

	_, err := svc.List(context.Background(), &customer, "t1", &models.ListServicesRequest{IncludeInactive: true})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestValidation(t *testing.T) {
	svc := newTestService(t)
	created := add(t, svc, "Facial", 799, 60, "regular")

	tests := []struct {
		name string
		req  models.CreateServiceRequest
	}{
		{"zero price", models.CreateServiceRequest{Name: "A", Price: 0, DurationMinutes: 30, Category: "regular"}},
		{"zero duration", models.CreateServiceRequest{Name: "A", Price: 10, DurationMinutes: 0, Category: "regular"}},
		{"unknown category", models.CreateServiceRequest{Name: "A", Price: 10, DurationMinutes: 30, Category: "spa"}},
		{"blank name", models.CreateServiceRequest{Name: "  ", Price: 10, DurationMinutes: 30, Category: "regular"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(context.Background(), owner, "t1", &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := svc.Update(context.Background(), owner, "t1", created.ID, &models.UpdateServiceRequest{Price: ptr.Ptr(int64(-5))})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(context.Background(), owner, "t1", "missing", &models.UpdateServiceRequest{})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), owner, "t1", "missing"), ErrServiceNotFound)
}

func TestResetToDefaults(t *testing.T) {
	svc := newTestService(t)
	old := add(t, svc, "Custom Package", 1500, 90, "regular")

	reset, err := svc.ResetToDefaults(context.Background(), owner, "t1")
	require.NoError(t, err)
	assert.Equal(t, len(domain.DefaultCatalog()), reset.Total)
	for _, s := range reset.Services {
		assert.NotEqual(t, old.ID, s.ID)
		assert.True(t, s.IsActive)
	}

	kept, err := svc.Get(context.Background(), "t1", old.ID)
	require.NoError(t, err)
	assert.False(t, kept.IsActive)
}

func TestRestore_AfterResetRejectsDuplicateName(t *testing.T) {
	svc := newTestService(t)
	defaultName := domain.DefaultCatalog()[0].Name
	custom := add(t, svc, defaultName, 1200, 60, "regular")
	unique := add(t, svc, "Custom Package", 1500, 90, "regular")

	_, err := svc.ResetToDefaults(context.Background(), owner, "t1")
	require.NoError(t, err)

	err = svc.Restore(context.Background(), owner, "t1", custom.ID)
	assert.ErrorIs(t, err, ErrNameTaken)

	require.NoError(t, svc.Restore(context.Background(), owner, "t1", unique.ID))

	active, err := svc.List(context.Background(), nil, "t1", &models.ListServicesRequest{})
	require.NoError(t, err)
	assert.Equal(t, len(domain.DefaultCatalog())+1, active.Total)

	names := make(map[string]int)
	for _, s := range active.Services {
		names[strings.ToLower(s.Name)]++
	}
	assert.Equal(t, 1, names[strings.ToLower(defaultName)])
}
