package kvstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonService/internal/config"
)

const keyNamespace = "salon"

const (
	servicePrefix    = "svc"
	userPrefix       = "user"
	preferencePrefix = "pref"
	flowPrefix       = "flow"
)

// NewClient создает клиент Redis и проверяет соединение
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping: %v", ErrConnect, err)
	}

	return client, nil
}

func buildKey(parts ...string) string {
	return keyNamespace + ":" + strings.Join(parts, ":")
}

// ServiceKey хэш каталога тенанта: id услуги -> JSON
func ServiceKey(tenantID string) string {
	return buildKey(servicePrefix, tenantID)
}

func UserKey(userID string) string {
	return buildKey(userPrefix, userID)
}

func PreferenceKey(userID string) string {
	return buildKey(preferencePrefix, userID)
}

func FlowKey(flowID string) string {
	return buildKey(flowPrefix, flowID)
}
