package catalog

import "errors"

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrAccessDenied    = errors.New("access denied: only owner or staff can manage the catalog")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNameTaken       = errors.New("active service with the same name exists")
	ErrInternal        = errors.New("service: internal error")
)
