package settings

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO settings`).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	s, err := repo.Create(context.Background(), domain.DefaultSettings("t1"))
	require.NoError(t, err)
	assert.Equal(t, now, s.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByTenantID(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM settings WHERE tenant_id = \$1`).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{
			"tenant_id", "phone", "email", "address", "open_time", "close_time", "working_days",
			"slot_duration_minutes", "max_concurrent_bookings", "advance_booking_days",
			"home_service_enabled", "home_service_charge", "theme", "currency", "notification_webhook", "updated_at",
		}).AddRow("t1", nil, nil, nil, "09:00", "18:00", "{1,2,3}", 30, 3, 14, true, int64(200), "rose", "INR", nil, now))

	s, err := repo.GetByTenantID(context.Background(), "t1")
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("09:00"), s.OpenTime)
	assert.Equal(t, []int{1, 2, 3}, s.WorkingDays)
	assert.True(t, s.HomeServiceEnabled)
	assert.Equal(t, int64(200), s.HomeServiceCharge)
	assert.Nil(t, s.NotificationWebhook)
}

func TestRepository_GetByTenantID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT (.+) FROM settings`).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByTenantID(context.Background(), "t1")
	assert.ErrorIs(t, err, ErrSettingsNotFound)
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`UPDATE settings SET`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), domain.DefaultSettings("t1"))
	assert.ErrorIs(t, err, ErrSettingsNotFound)
}
