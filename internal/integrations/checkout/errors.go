package checkout

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("checkout client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("checkout client: invalid response")

	// ErrUnauthorized возвращается, если шлюз отклонил ключи
	ErrUnauthorized = errors.New("checkout client: gateway rejected credentials")

	// ErrInvalidSignature возвращается, если подпись платежа не совпала
	ErrInvalidSignature = errors.New("checkout client: invalid payment signature")
)
