package review

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var reviewColumns = []string{
	"id",
	"tenant_id",
	"user_id",
	"appointment_id",
	"rating",
	"comment",
	"is_approved",
	"created_at",
	"updated_at",
}

// Repository репозиторий отзывов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет отзыв; второй отзыв на запись возвращает ErrReviewExists
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns("id", "tenant_id", "user_id", "appointment_id", "rating", "comment", "is_approved").
		Values(review.ID, review.TenantID, review.UserID, review.AppointmentID, review.Rating, review.Comment, review.IsApproved).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&review.CreatedAt, &review.UpdatedAt)
	if psqlbuilder.IsUniqueViolation(err) {
		return nil, ErrReviewExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return review, nil
}

// GetByID получает отзыв по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	review, err := scanReview(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan review: %v", ErrScanRow, err)
	}

	return review, nil
}

// Update сохраняет оценку, комментарий и признак модерации
func (r *Repository) Update(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reviews").
		Set("rating", review.Rating).
		Set("comment", review.Comment).
		Set("is_approved", review.IsApproved).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": review.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&review.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return review, nil
}

// List отзывы тенанта, новые сверху
func (r *Repository) List(ctx context.Context, filter domain.ReviewFilter) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"tenant_id": filter.TenantID})
	if filter.ApprovedOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_approved": true})
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

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return reviews, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReview(row rowScanner) (*domain.Review, error) {
	var review domain.Review
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&review.ID,
		&review.TenantID,
		&review.UserID,
		&review.AppointmentID,
		&review.Rating,
		&review.Comment,
		&review.IsApproved,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	review.CreatedAt = createdAt.Time
	review.UpdatedAt = updatedAt.Time

	return &review, nil
}
