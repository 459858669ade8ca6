package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client отправляет уведомления владельцу бизнеса на вебхук
type Client struct {
	httpClient     *resty.Client
	defaultWebhook string
	log            Logger
}

// NewClient создает клиент уведомлений
// defaultWebhook используется, если у тенанта свой адрес не задан
func NewClient(defaultWebhook string, timeout time.Duration, log Logger) *Client {
	httpClient := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:     httpClient,
		defaultWebhook: defaultWebhook,
		log:            log,
	}
}

// NotifyAppointmentCreated отправляет уведомление о новой записи, без повторов
func (c *Client) NotifyAppointmentCreated(ctx context.Context, webhook *string, n AppointmentNotification) error {
	url := c.defaultWebhook
	if webhook != nil && *webhook != "" {
		url = *webhook
	}
	if url == "" {
		return ErrNoWebhook
	}

	n.Event = EventAppointmentCreated

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(n).
		Post(url)
	if err != nil {
		return fmt.Errorf("%w: appointment=%s: %v", ErrDeliveryFailed, n.AppointmentID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: appointment=%s: status %d", ErrDeliveryFailed, n.AppointmentID, resp.StatusCode())
	}

	c.log.Info("Owner notified about appointment=%s tenant=%s", n.AppointmentID, n.TenantID)
	return nil
}
