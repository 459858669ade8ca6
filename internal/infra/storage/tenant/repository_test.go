package tenant

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Create_SlugTaken(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO tenants`).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.Tenant{ID: "t1", Name: "Glow", Slug: "glow"})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestRepository_GetBySlug(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM tenants WHERE slug = \$1`).
		WithArgs("glow").
		WillReturnRows(sqlmock.NewRows(tenantColumns).
			AddRow("t1", "Glow Studio", "glow", "u1", true, "pro", "active", now, now))

	tenant, err := repo.GetBySlug(context.Background(), "glow")
	require.NoError(t, err)
	assert.Equal(t, "t1", tenant.ID)
	assert.Equal(t, domain.PlanPro, tenant.Plan)
	assert.Equal(t, domain.TenantSubscriptionActive, tenant.SubscriptionStatus)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT (.+) FROM tenants WHERE id = \$1`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestRepository_SlugExists(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT EXISTS \( SELECT 1 FROM tenants WHERE slug = \$1 \)`).
		WithArgs("glow").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.SlugExists(context.Background(), "glow")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRepository_UpdatePlan(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE tenants SET plan = \$1, subscription_status = \$2, updated_at = NOW\(\) WHERE id = \$3`).
		WithArgs(domain.PlanBasic, domain.TenantSubscriptionActive, "t1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePlan(context.Background(), "t1", domain.PlanBasic, domain.TenantSubscriptionActive)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetActive_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE tenants SET is_active = \$1`).
		WithArgs(false, "t1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetActive(context.Background(), "t1", false)
	assert.ErrorIs(t, err, ErrTenantNotFound)
}
