package settings

import "errors"

var (
	ErrSettingsNotFound = errors.New("settings not found")
	ErrAccessDenied     = errors.New("access denied: only owner or staff can change settings")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInternal         = errors.New("service: internal error")
)
