package user

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
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
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

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("u1", "Asha", "asha@example.com", nil, domain.RoleCustomer, nil, "hash").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	user, err := repo.Create(context.Background(), &domain.User{
		ID: "u1", Name: "Asha", Email: "asha@example.com", Role: domain.RoleCustomer, PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.Equal(t, now, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_Duplicate(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.User{ID: "u1", Email: "asha@example.com"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u1", "Asha", "asha@example.com", "+91999", "owner", "t1", "hash", now, now, now))

	user, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOwner, user.Role)
	assert.Equal(t, "t1", ptr.Value(user.TenantID))
	require.NotNil(t, user.LastLoginAt)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT (.+) FROM users`).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepository_UpdateLastLogin(t *testing.T) {
	repo, mock := newMock(t)
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE users SET last_login_at = \$1 WHERE id = \$2`).
		WithArgs(at, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateLastLogin(context.Background(), "u1", at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE users SET name = \$1`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.User{ID: "u1", Name: "A", Role: domain.RoleCustomer})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
