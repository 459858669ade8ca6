package subscription

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// CreatePayment добавляет запись в журнал платежей
// Записи журнала не изменяются и не удаляются
func (r *Repository) CreatePayment(ctx context.Context, p *domain.PaymentRecord) (*domain.PaymentRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns("id", "tenant_id", "subscription_id", "amount_minor", "currency", "status", "gateway_payment_id", "gateway_order_id").
		Values(p.ID, p.TenantID, p.SubscriptionID, p.AmountMinor, p.Currency, p.Status, p.GatewayPaymentID, p.GatewayOrderID).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreatePayment - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreatePayment - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// ListPayments история платежей тенанта
func (r *Repository) ListPayments(ctx context.Context, tenantID string) ([]*domain.PaymentRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"subscription_id",
		"amount_minor",
		"currency",
		"status",
		"gateway_payment_id",
		"gateway_order_id",
		"created_at",
	).
		From("payments").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPayments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPayments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.PaymentRecord, 0)
	for rows.Next() {
		var p domain.PaymentRecord
		err := rows.Scan(
			&p.ID,
			&p.TenantID,
			&p.SubscriptionID,
			&p.AmountMinor,
			&p.Currency,
			&p.Status,
			&p.GatewayPaymentID,
			&p.GatewayOrderID,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListPayments - scan row: %v", ErrScanRow, err)
		}
		payments = append(payments, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPayments - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}
