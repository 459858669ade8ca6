package users

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/kvstore"
	"github.com/m04kA/SMC-SalonService/internal/service/users/models"
	"github.com/m04kA/SMC-SalonService/pkg/auth"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

var fixedNow = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, superadmins ...string) (*Service, *auth.TokenManager) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	tokens, err := auth.NewTokenManager("test-secret", "smc-salon", time.Hour)
	require.NoError(t, err)

	svc := NewService(kvstore.NewUserRepository(client), tokens, superadmins, logger.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc, tokens
}

func register(t *testing.T, svc *Service, email string) *models.AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "Priya",
		Email:    email,
		Password: "secret1",
	})
	require.NoError(t, err)
	return resp
}

func TestRegister_CustomerWithToken(t *testing.T) {
	svc, tokens := newTestService(t)

	resp := register(t, svc, "  Priya@Example.com ")

	assert.Equal(t, domain.UserIDFromEmail("priya@example.com"), resp.User.ID)
	assert.Equal(t, "priya@example.com", resp.User.Email)
	assert.Equal(t, string(domain.RoleCustomer), resp.User.Role)
	assert.Nil(t, resp.User.TenantID)

	claims, err := tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "customer", claims.Role)
}

func TestRegister_SuperadminFromConfig(t *testing.T) {
	svc, _ := newTestService(t, "Admin@Salon.local")

	resp := register(t, svc, "admin@salon.local")

	assert.Equal(t, string(domain.RoleSuperadmin), resp.User.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "priya@example.com")

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name: "Other", Email: "PRIYA@example.com", Password: "secret2",
	})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"bad email", models.RegisterRequest{Name: "A", Email: "nope", Password: "secret1"}},
		{"short password", models.RegisterRequest{Name: "A", Email: "a@b.co", Password: "12345"}},
		{"blank name", models.RegisterRequest{Name: "   ", Email: "a@b.co", Password: "secret1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "priya@example.com")

	later := fixedNow.Add(2 * time.Hour)
	svc.now = func() time.Time { return later }

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Email: "priya@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotNil(t, resp.User.LastLoginAt)
	assert.True(t, later.Equal(*resp.User.LastLoginAt))

	profile, err := svc.GetProfile(context.Background(), domain.Actor{UserID: resp.User.ID})
	require.NoError(t, err)
	require.NotNil(t, profile.LastLoginAt)
	assert.True(t, later.Equal(*profile.LastLoginAt))
}

func TestLogin_NormalizesEmail(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, " Priya@Example.com")

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Email: "  PRIYA@example.com  ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "priya@example.com", resp.User.Email)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "priya@example.com")

	_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "priya@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &models.LoginRequest{Email: "ghost@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService(t)
	resp := register(t, svc, "priya@example.com")
	actor := domain.Actor{UserID: resp.User.ID}

	updated, err := svc.UpdateProfile(context.Background(), actor, &models.UpdateProfileRequest{
		Name:  ptr.Ptr("Priya S"),
		Phone: ptr.Ptr("+91 98765 43210"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Priya S", updated.Name)
	assert.Equal(t, "+91 98765 43210", ptr.Value(updated.Phone))

	resolved, err := svc.ResolveActor(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Priya S", resolved.Name)
	assert.Equal(t, domain.RoleCustomer, resolved.Role)
}

func TestResolveActor_Unknown(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ResolveActor(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
