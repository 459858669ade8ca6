package preferences

import "errors"

var (
	ErrInternal = errors.New("service: internal error")
)
