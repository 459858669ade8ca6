package subscription

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var subscriptionColumns = []string{
	"id",
	"tenant_id",
	"plan_id",
	"status",
	"start_date",
	"end_date",
	"payment_id",
	"amount_minor",
	"created_at",
	"updated_at",
}

// Repository подписки и журнал платежей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория подписок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет подписку
func (r *Repository) Create(ctx context.Context, s *domain.Subscription) (*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("subscriptions").
		Columns("id", "tenant_id", "plan_id", "status", "start_date", "end_date", "payment_id", "amount_minor").
		Values(s.ID, s.TenantID, s.PlanID, s.Status, s.StartDate, s.EndDate, s.PaymentID, s.AmountMinor).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// CancelActive отменяет активные подписки тенанта, возвращает число отменённых
func (r *Repository) CancelActive(ctx context.Context, tenantID string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("subscriptions").
		Set("status", domain.SubscriptionCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"status": domain.SubscriptionActive}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CancelActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelActive - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// GetActive текущая активная подписка тенанта
func (r *Repository) GetActive(ctx context.Context, tenantID string) (*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(subscriptionColumns...).
		From("subscriptions").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"status": domain.SubscriptionActive}).
		OrderBy("start_date DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSubscription(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - scan subscription: %v", ErrScanRow, err)
	}

	return s, nil
}

// ListByTenant история подписок, новые сверху
func (r *Repository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(subscriptionColumns...).
		From("subscriptions").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	subscriptions := make([]*domain.Subscription, 0)
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByTenant - scan row: %v", ErrScanRow, err)
		}
		subscriptions = append(subscriptions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - rows error: %v", ErrScanRow, err)
	}

	return subscriptions, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubscription(row rowScanner) (*domain.Subscription, error) {
	var s domain.Subscription
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.TenantID,
		&s.PlanID,
		&s.Status,
		&s.StartDate,
		&s.EndDate,
		&s.PaymentID,
		&s.AmountMinor,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
