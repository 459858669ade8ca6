package kvstore

import "errors"

var (
	// ErrConnect ошибка подключения к Redis
	ErrConnect = errors.New("kvstore: failed to connect")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("kvstore: service not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("kvstore: user not found")

	// ErrUserExists возвращается при повторной регистрации email
	ErrUserExists = errors.New("kvstore: user already exists")

	// ErrFlowNotFound возвращается, когда сессия записи не найдена или истекла
	ErrFlowNotFound = errors.New("kvstore: booking flow not found")

	// ErrStorage ошибка выполнения команды Redis
	ErrStorage = errors.New("kvstore: storage error")

	// ErrDecode ошибка разбора сохранённого JSON
	ErrDecode = errors.New("kvstore: failed to decode record")
)
