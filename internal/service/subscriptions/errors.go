package subscriptions

import "errors"

var (
	ErrTenantNotFound       = errors.New("tenant not found")
	ErrSubscriptionNotFound = errors.New("active subscription not found")
	ErrUnknownPlan          = errors.New("unknown plan")
	ErrCheckoutNotRequired  = errors.New("free plan does not require checkout")
	ErrInvalidSignature     = errors.New("invalid payment signature")
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")
	ErrAccessDenied         = errors.New("access denied")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInternal             = errors.New("service: internal error")
)
