package user

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var userColumns = []string{
	"id",
	"name",
	"email",
	"phone",
	"role",
	"tenant_id",
	"password_hash",
	"last_login_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий пользователей в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет пользователя; повторный email возвращает ErrUserExists
func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns("id", "name", "email", "phone", "role", "tenant_id", "password_hash").
		Values(user.ID, user.Name, user.Email, user.Phone, user.Role, user.TenantID, user.PasswordHash).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&user.CreatedAt, &user.UpdatedAt)
	if psqlbuilder.IsUniqueViolation(err) {
		return nil, ErrUserExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return user, nil
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var user domain.User
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.Role,
		&user.TenantID,
		&user.PasswordHash,
		&user.LastLoginAt,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan user: %v", ErrScanRow, err)
	}

	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time

	return &user, nil
}

// Update сохраняет профиль, роль и привязку к тенанту
func (r *Repository) Update(ctx context.Context, user *domain.User) error {
	query, args, err := psqlbuilder.Update("users").
		Set("name", user.Name).
		Set("phone", user.Phone).
		Set("role", user.Role).
		Set("tenant_id", user.TenantID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.exec(ctx, "Update", query, args)
}

// UpdateLastLogin отмечает время входа
func (r *Repository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	query, args, err := psqlbuilder.Update("users").
		Set("last_login_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateLastLogin - build update query: %v", ErrBuildQuery, err)
	}

	return r.exec(ctx, "UpdateLastLogin", query, args)
}

func (r *Repository) exec(ctx context.Context, method, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
