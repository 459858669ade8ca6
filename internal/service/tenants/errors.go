package tenants

import "errors"

var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrSlugTaken      = errors.New("tenant slug already taken")
	// ErrAlreadyAffiliated пользователь уже владелец или сотрудник другого бизнеса
	ErrAlreadyAffiliated = errors.New("user already belongs to a business")
	ErrAccessDenied      = errors.New("access denied")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInternal          = errors.New("service: internal error")
)
