package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// Repository репозиторий настроек бизнеса
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает настройки тенанта
// Вызывается при регистрации бизнеса внутри той же транзакции
func (r *Repository) Create(ctx context.Context, s *domain.BusinessSettings) (*domain.BusinessSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("settings").
		Columns(
			"tenant_id",
			"phone",
			"email",
			"address",
			"open_time",
			"close_time",
			"working_days",
			"slot_duration_minutes",
			"max_concurrent_bookings",
			"advance_booking_days",
			"home_service_enabled",
			"home_service_charge",
			"theme",
			"currency",
			"notification_webhook",
		).
		Values(
			s.TenantID,
			s.Phone,
			s.Email,
			s.Address,
			s.OpenTime,
			s.CloseTime,
			pq.Array(toInt64s(s.WorkingDays)),
			s.SlotDurationMinutes,
			s.MaxConcurrentBookings,
			s.AdvanceBookingDays,
			s.HomeServiceEnabled,
			s.HomeServiceCharge,
			s.Theme,
			s.Currency,
			s.NotificationWebhook,
		).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// GetByTenantID получает настройки тенанта
func (r *Repository) GetByTenantID(ctx context.Context, tenantID string) (*domain.BusinessSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"tenant_id",
		"phone",
		"email",
		"address",
		"open_time",
		"close_time",
		"working_days",
		"slot_duration_minutes",
		"max_concurrent_bookings",
		"advance_booking_days",
		"home_service_enabled",
		"home_service_charge",
		"theme",
		"currency",
		"notification_webhook",
		"updated_at",
	).
		From("settings").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.BusinessSettings
	var workingDays pq.Int64Array
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.TenantID,
		&s.Phone,
		&s.Email,
		&s.Address,
		&s.OpenTime,
		&s.CloseTime,
		&workingDays,
		&s.SlotDurationMinutes,
		&s.MaxConcurrentBookings,
		&s.AdvanceBookingDays,
		&s.HomeServiceEnabled,
		&s.HomeServiceCharge,
		&s.Theme,
		&s.Currency,
		&s.NotificationWebhook,
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantID - scan settings: %v", ErrScanRow, err)
	}

	s.WorkingDays = toInts(workingDays)

	return &s, nil
}

// Update перезаписывает настройки тенанта
func (r *Repository) Update(ctx context.Context, s *domain.BusinessSettings) (*domain.BusinessSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("settings").
		Set("phone", s.Phone).
		Set("email", s.Email).
		Set("address", s.Address).
		Set("open_time", s.OpenTime).
		Set("close_time", s.CloseTime).
		Set("working_days", pq.Array(toInt64s(s.WorkingDays))).
		Set("slot_duration_minutes", s.SlotDurationMinutes).
		Set("max_concurrent_bookings", s.MaxConcurrentBookings).
		Set("advance_booking_days", s.AdvanceBookingDays).
		Set("home_service_enabled", s.HomeServiceEnabled).
		Set("home_service_charge", s.HomeServiceCharge).
		Set("theme", s.Theme).
		Set("currency", s.Currency).
		Set("notification_webhook", s.NotificationWebhook).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": s.TenantID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return s, nil
}

func toInt64s(days []int) []int64 {
	out := make([]int64, len(days))
	for i, d := range days {
		out[i] = int64(d)
	}
	return out
}

func toInts(days []int64) []int {
	out := make([]int, len(days))
	for i, d := range days {
		out[i] = int(d)
	}
	return out
}
