package notifier

import "errors"

var (
	// ErrDeliveryFailed возвращается, если вебхук недоступен или ответил ошибкой
	ErrDeliveryFailed = errors.New("notifier client: delivery failed")

	// ErrNoWebhook возвращается, если у тенанта нет вебхука и нет адреса по умолчанию
	ErrNoWebhook = errors.New("notifier client: no webhook configured")
)
