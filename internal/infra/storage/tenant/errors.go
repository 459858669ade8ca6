package tenant

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант не найден
	ErrTenantNotFound = errors.New("tenant.repository: tenant not found")

	// ErrSlugTaken возвращается при нарушении уникальности slug
	ErrSlugTaken = errors.New("tenant.repository: slug already taken")

	ErrBuildQuery = errors.New("tenant.repository: failed to build query")
	ErrExecQuery  = errors.New("tenant.repository: failed to execute query")
	ErrScanRow    = errors.New("tenant.repository: failed to scan row")
)
