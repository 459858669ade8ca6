package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"tenant_id",
	"name",
	"price",
	"duration_minutes",
	"category",
	"description",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository каталог услуг в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает услуги тенанта, отсортированные по категории и названию
func (r *Repository) List(ctx context.Context, tenantID string, filter domain.ServiceFilter) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"tenant_id": tenantID})

	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}
	if filter.Category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *filter.Category})
	}

	query, args, err := selectBuilder.OrderBy("category ASC", "name ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanServices(rows)
}

// GetByIDs возвращает услуги тенанта по списку идентификаторов (включая неактивные)
func (r *Repository) GetByIDs(ctx context.Context, tenantID string, ids []string) ([]*domain.Service, error) {
	if len(ids) == 0 {
		return []*domain.Service{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": ids}).
		OrderBy("category ASC", "name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanServices(rows)
}

// GetByID получает услугу тенанта по ID
func (r *Repository) GetByID(ctx context.Context, tenantID, id string) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	return service, nil
}

// Create сохраняет услугу; ID назначается сервисом
func (r *Repository) Create(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns(
			"id",
			"tenant_id",
			"name",
			"price",
			"duration_minutes",
			"category",
			"description",
			"is_active",
		).
		Values(
			service.ID,
			service.TenantID,
			service.Name,
			service.Price,
			service.DurationMinutes,
			service.Category,
			service.Description,
			service.IsActive,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&service.CreatedAt, &service.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return service, nil
}

// Update перезаписывает изменяемые поля услуги (last-write-wins)
func (r *Repository) Update(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("name", service.Name).
		Set("price", service.Price).
		Set("duration_minutes", service.DurationMinutes).
		Set("category", service.Category).
		Set("description", service.Description).
		Set("is_active", service.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": service.TenantID, "id": service.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&service.CreatedAt, &service.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return service, nil
}

// SetActive мягкое удаление (false) или восстановление (true)
func (r *Repository) SetActive(ctx context.Context, tenantID, id string, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// ReplaceAll заменяет каталог тенанта
// Старые услуги деактивируются, а не удаляются: на них ссылаются снапшоты записей
// Вызывать внутри транзакции
func (r *Repository) ReplaceAll(ctx context.Context, tenantID string, services []*domain.Service) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "is_active": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAll - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceAll - deactivate current: %v", ErrExecQuery, err)
	}

	for _, service := range services {
		if _, err := r.Create(ctx, service); err != nil {
			return err
		}
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var service domain.Service
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&service.ID,
		&service.TenantID,
		&service.Name,
		&service.Price,
		&service.DurationMinutes,
		&service.Category,
		&service.Description,
		&service.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}

func scanServices(rows *sql.Rows) ([]*domain.Service, error) {
	services := make([]*domain.Service, 0)

	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}
