package domain

import "errors"

var (
	// ErrInvalidTransition возвращается при переходе, которого нет в таблице переходов
	ErrInvalidTransition = errors.New("domain: invalid state transition")

	// ErrInvalidService возвращается при некорректных полях услуги
	ErrInvalidService = errors.New("domain: invalid service")

	// ErrInvalidSettings возвращается при некорректных настройках бизнеса
	ErrInvalidSettings = errors.New("domain: invalid business settings")

	// ErrInvalidRating возвращается, если оценка вне диапазона 1..5
	ErrInvalidRating = errors.New("domain: rating out of range")

	// ErrUnknownPlan возвращается для неизвестного тарифа
	ErrUnknownPlan = errors.New("domain: unknown subscription plan")
)
