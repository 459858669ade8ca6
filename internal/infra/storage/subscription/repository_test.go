package subscription

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
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

func TestRepository_CancelActive(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE subscriptions SET status = \$1, updated_at = NOW\(\) WHERE tenant_id = \$2 AND status = \$3`).
		WithArgs(domain.SubscriptionCancelled, "t1", domain.SubscriptionActive).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.CancelActive(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRepository_GetActive_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT (.+) FROM subscriptions WHERE tenant_id = \$1 AND status = \$2 ORDER BY start_date DESC LIMIT 1`).
		WithArgs("t1", domain.SubscriptionActive).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetActive(context.Background(), "t1")
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestRepository_CreateSubscriptionAndPayment(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO subscriptions`).
		WithArgs("s1", "t1", domain.PlanBasic, domain.SubscriptionActive, now, now.AddDate(0, 0, 30), "p1", int64(49900)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectQuery(`INSERT INTO payments`).
		WithArgs("p1", "t1", "s1", int64(49900), "INR", domain.PaymentRecordSuccess, "pay_1", "order_1").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	_, err := repo.Create(context.Background(), &domain.Subscription{
		ID: "s1", TenantID: "t1", PlanID: domain.PlanBasic, Status: domain.SubscriptionActive,
		StartDate: now, EndDate: now.AddDate(0, 0, 30), PaymentID: ptr.Ptr("p1"), AmountMinor: 49900,
	})
	require.NoError(t, err)

	payment, err := repo.CreatePayment(context.Background(), &domain.PaymentRecord{
		ID: "p1", TenantID: "t1", SubscriptionID: ptr.Ptr("s1"), AmountMinor: 49900, Currency: "INR",
		Status: domain.PaymentRecordSuccess, GatewayPaymentID: ptr.Ptr("pay_1"), GatewayOrderID: ptr.Ptr("order_1"),
	})
	require.NoError(t, err)
	assert.Equal(t, now, payment.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListPayments(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM payments WHERE tenant_id = \$1 ORDER BY created_at DESC`).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tenant_id", "subscription_id", "amount_minor", "currency", "status", "gateway_payment_id", "gateway_order_id", "created_at",
		}).AddRow("p1", "t1", "s1", int64(49900), "INR", "success", "pay_1", "order_1", now))

	payments, err := repo.ListPayments(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, domain.PaymentRecordSuccess, payments[0].Status)
	assert.Equal(t, int64(49900), payments[0].AmountMinor)
}
