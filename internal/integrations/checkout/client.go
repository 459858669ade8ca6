package checkout

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client клиент платёжного шлюза
type Client struct {
	httpClient *resty.Client
	keySecret  string
	log        Logger
}

// NewClient создает клиент шлюза с basic auth по паре ключей
// Повторов нет: создание заказа не идемпотентно
func NewClient(baseURL, keyID, keySecret string, timeout time.Duration, log Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetBasicAuth(keyID, keySecret).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: httpClient,
		keySecret:  keySecret,
		log:        log,
	}
}

// CreateOrder создает заказ на сумму в минимальных единицах
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	c.log.Info("Creating checkout order receipt=%s amount=%d %s", req.Receipt, req.Amount, req.Currency)

	var order Order
	var gatewayErr ErrorResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&order).
		SetError(&gatewayErr).
		Post("/v1/orders")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK, http.StatusCreated:
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	default:
		return nil, fmt.Errorf("%w: unexpected status code %d: %s %s",
			ErrInvalidResponse, resp.StatusCode(), gatewayErr.Error.Code, gatewayErr.Error.Description)
	}

	if order.ID == "" {
		return nil, fmt.Errorf("%w: empty order id", ErrInvalidResponse)
	}

	c.log.Info("Checkout order created id=%s receipt=%s", order.ID, req.Receipt)
	return &order, nil
}

// SignatureEnabled настроен ли секрет для проверки подписи
func (c *Client) SignatureEnabled() bool {
	return c.keySecret != ""
}

// VerifySignature проверяет подпись виджета: HMAC-SHA256(orderID|paymentID) в hex
func (c *Client) VerifySignature(orderID, paymentID, signature string) error {
	if !c.SignatureEnabled() {
		return nil
	}

	expected := Sign(c.keySecret, orderID, paymentID)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}

	return nil
}

// Sign подпись, которую шлюз передаёт виджету после оплаты
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
