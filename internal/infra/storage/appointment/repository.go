package appointment

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

var appointmentColumns = []string{
	"id",
	"tenant_id",
	"customer_id",
	"services",
	"appointment_date",
	"start_time",
	"duration_minutes",
	"total_price",
	"home_service_charge",
	"status",
	"location",
	"address",
	"phone",
	"notes",
	"payment_method",
	"payment_status",
	"transaction_id",
	"cancellation_reason",
	"created_at",
	"updated_at",
}

// Repository журнал записей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую запись
// При создании из usecase вызывается внутри транзакции вместе с проверкой слота
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"tenant_id",
			"customer_id",
			"services",
			"appointment_date",
			"start_time",
			"duration_minutes",
			"total_price",
			"home_service_charge",
			"status",
			"location",
			"address",
			"phone",
			"notes",
			"payment_method",
			"payment_status",
		).
		Values(
			a.ID,
			a.TenantID,
			a.CustomerID,
			a.Services,
			a.Date,
			a.StartTime,
			a.DurationMinutes,
			a.TotalPrice,
			a.HomeServiceCharge,
			a.Status,
			a.Location,
			a.Address,
			a.Phone,
			a.Notes,
			a.PaymentMethod,
			a.PaymentStatus,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return a, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return a, nil
}

// ListByCustomer записи клиента, новые сверху
func (r *Repository) ListByCustomer(ctx context.Context, customerID string, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("appointment_date DESC", "start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	return r.list(ctx, "ListByCustomer", selectBuilder)
}

// ListByTenant записи тенанта с фильтрацией для дашборда
//
// Для одной даты сортировка по времени начала, иначе новые сверху
func (r *Repository) ListByTenant(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *filter.EndDate})
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date DESC", "start_time DESC")
	}

	return r.list(ctx, "ListByTenant", selectBuilder)
}

// ListActiveForDate активные записи тенанта на дату
// Внутри транзакции строки блокируются (FOR UPDATE) для проверки вместимости слота
func (r *Repository) ListActiveForDate(ctx context.Context, tenantID string, date time.Time) ([]*domain.Appointment, error) {
	active := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		active[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"appointment_date": date}).
		Where(squirrel.Eq{"status": active}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.list(ctx, "ListActiveForDate", selectBuilder)
}

// UpdateStatus меняет статус, если текущий статус равен from
// Меняется только updated_at и, для отмены, причина
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to domain.AppointmentStatus, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("appointments").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()"))
	if reason != nil {
		updateBuilder = updateBuilder.Set("cancellation_reason", *reason)
	}

	query, args, err := updateBuilder.
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// UpdatePayment фиксирует способ и статус оплаты записи
func (r *Repository) UpdatePayment(ctx context.Context, id string, method domain.PaymentMethod, status domain.PaymentStatus, transactionID *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("payment_method", method).
		Set("payment_status", status).
		Set("transaction_id", transactionID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func (r *Repository) list(ctx context.Context, method string, selectBuilder squirrel.SelectBuilder) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, method, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	return appointments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.TenantID,
		&a.CustomerID,
		&a.Services,
		&a.Date,
		&a.StartTime,
		&a.DurationMinutes,
		&a.TotalPrice,
		&a.HomeServiceCharge,
		&a.Status,
		&a.Location,
		&a.Address,
		&a.Phone,
		&a.Notes,
		&a.PaymentMethod,
		&a.PaymentStatus,
		&a.TransactionID,
		&a.CancellationReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}
