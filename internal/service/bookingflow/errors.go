package bookingflow

import "errors"

var (
	// ErrFlowNotFound сессия не найдена, истекла или принадлежит другому клиенту
	ErrFlowNotFound = errors.New("booking flow not found")
	// ErrInvalidTransition событие недопустимо в текущем состоянии
	ErrInvalidTransition = errors.New("booking flow transition is not allowed")
	// ErrSelectionLocked услуги меняются только на шаге выбора
	ErrSelectionLocked = errors.New("services can only be changed while selecting services")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInternal        = errors.New("service: internal error")
)
