package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

func TestClient_CreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key_id", user)
		assert.Equal(t, "key_secret", pass)

		var req OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(49900), req.Amount)
		assert.Equal(t, "INR", req.Currency)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_1","amount":49900,"currency":"INR","status":"created"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key_id", "key_secret", time.Second, logger.NewNop())

	order, err := client.CreateOrder(context.Background(), OrderRequest{Amount: 49900, Currency: "INR", Receipt: "t1-basic"})
	require.NoError(t, err)
	assert.Equal(t, "order_1", order.ID)
	assert.Equal(t, "created", order.Status)
}

func TestClient_CreateOrder_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad", "bad", time.Second, logger.NewNop())

	_, err := client.CreateOrder(context.Background(), OrderRequest{Amount: 100, Currency: "INR"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_CreateOrder_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount too small"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", "s", time.Second, logger.NewNop())

	_, err := client.CreateOrder(context.Background(), OrderRequest{Amount: 1, Currency: "INR"})
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "amount too small")
}

func TestClient_VerifySignature(t *testing.T) {
	client := NewClient("http://unused", "k", "secret", time.Second, logger.NewNop())

	good := Sign("secret", "order_1", "pay_1")
	assert.NoError(t, client.VerifySignature("order_1", "pay_1", good))
	assert.ErrorIs(t, client.VerifySignature("order_1", "pay_2", good), ErrInvalidSignature)

	unsigned := NewClient("http://unused", "k", "", time.Second, logger.NewNop())
	assert.False(t, unsigned.SignatureEnabled())
	assert.NoError(t, unsigned.VerifySignature("order_1", "pay_1", "anything"))
}
