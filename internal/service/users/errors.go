package users

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user with this email already exists")
	// ErrInvalidCredentials неверный email или пароль, без уточнения что именно
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("service: internal error")
)
