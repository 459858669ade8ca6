package subscription

import "errors"

var (
	// ErrSubscriptionNotFound возвращается, когда активной подписки нет
	ErrSubscriptionNotFound = errors.New("subscription.repository: subscription not found")

	ErrBuildQuery = errors.New("subscription.repository: failed to build query")
	ErrExecQuery  = errors.New("subscription.repository: failed to execute query")
	ErrScanRow    = errors.New("subscription.repository: failed to scan row")
)
