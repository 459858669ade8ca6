package review

import "errors"

var (
	// ErrReviewNotFound возвращается, когда отзыв не найден
	ErrReviewNotFound = errors.New("review.repository: review not found")

	// ErrReviewExists возвращается при повторном отзыве на ту же запись
	ErrReviewExists = errors.New("review.repository: review for appointment already exists")

	ErrBuildQuery = errors.New("review.repository: failed to build query")
	ErrExecQuery  = errors.New("review.repository: failed to execute query")
	ErrScanRow    = errors.New("review.repository: failed to scan row")
)
