package tenant

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var tenantColumns = []string{
	"id",
	"name",
	"slug",
	"owner_id",
	"is_active",
	"plan",
	"subscription_status",
	"created_at",
	"updated_at",
}

// Repository репозиторий тенантов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория тенантов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает тенанта; занятый slug возвращает ErrSlugTaken
func (r *Repository) Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("tenants").
		Columns("id", "name", "slug", "owner_id", "is_active", "plan", "subscription_status").
		Values(tenant.ID, tenant.Name, tenant.Slug, tenant.OwnerID, tenant.IsActive, tenant.Plan, tenant.SubscriptionStatus).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&tenant.CreatedAt, &tenant.UpdatedAt)
	if psqlbuilder.IsUniqueViolation(err) {
		return nil, ErrSlugTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return tenant, nil
}

// GetByID получает тенанта по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetBySlug получает тенанта по slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	return r.getOne(ctx, "GetBySlug", squirrel.Eq{"slug": slug})
}

func (r *Repository) getOne(ctx context.Context, method string, where squirrel.Eq) (*domain.Tenant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(tenantColumns...).
		From("tenants").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	tenant, err := scanTenant(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan tenant: %v", ErrScanRow, method, err)
	}

	return tenant, nil
}

// SlugExists проверяет, занят ли slug
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From("tenants").
		Where(squirrel.Eq{"slug": slug}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: SlugExists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: SlugExists - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// List список тенантов для суперадмина, новые сверху
func (r *Repository) List(ctx context.Context, filter domain.TenantFilter) ([]*domain.Tenant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(tenantColumns...).From("tenants")
	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tenants := make([]*domain.Tenant, 0)
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		tenants = append(tenants, tenant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return tenants, nil
}

// SetActive деактивация/реактивация тенанта
func (r *Repository) SetActive(ctx context.Context, id string, active bool) error {
	return r.update(ctx, "SetActive", id, map[string]interface{}{"is_active": active})
}

// UpdatePlan обновляет денормализованный тариф и статус подписки
func (r *Repository) UpdatePlan(ctx context.Context, id string, plan domain.PlanID, status domain.TenantSubscriptionStatus) error {
	return r.update(ctx, "UpdatePlan", id, map[string]interface{}{
		"plan":                plan,
		"subscription_status": status,
	})
}

func (r *Repository) update(ctx context.Context, method, id string, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("tenants").
		SetMap(values).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, method, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrTenantNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTenant(row rowScanner) (*domain.Tenant, error) {
	var tenant domain.Tenant
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Slug,
		&tenant.OwnerID,
		&tenant.IsActive,
		&tenant.Plan,
		&tenant.SubscriptionStatus,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	tenant.CreatedAt = createdAt.Time
	tenant.UpdatedAt = updatedAt.Time

	return &tenant, nil
}
