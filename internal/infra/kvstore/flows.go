package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// FlowStore сессии сценария записи с ограниченным сроком жизни
type FlowStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewFlowStore(client redis.UniversalClient, ttl time.Duration) *FlowStore {
	return &FlowStore{client: client, ttl: ttl}
}

// Save сохраняет сессию и продлевает TTL
func (s *FlowStore) Save(ctx context.Context, flow *domain.BookingFlow) error {
	raw, err := json.Marshal(flow)
	if err != nil {
		return fmt.Errorf("%w: flow encode: %v", ErrStorage, err)
	}

	if err := s.client.Set(ctx, FlowKey(flow.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: flow set: %v", ErrStorage, err)
	}

	return nil
}

// Get возвращает сессию или ErrFlowNotFound, если она истекла
func (s *FlowStore) Get(ctx context.Context, flowID string) (*domain.BookingFlow, error) {
	raw, err := s.client.Get(ctx, FlowKey(flowID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrFlowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: flow get: %v", ErrStorage, err)
	}

	var flow domain.BookingFlow
	if err := json.Unmarshal(raw, &flow); err != nil {
		return nil, fmt.Errorf("%w: flow: %v", ErrDecode, err)
	}

	return &flow, nil
}

// Delete удаляет сессию
func (s *FlowStore) Delete(ctx context.Context, flowID string) error {
	if err := s.client.Del(ctx, FlowKey(flowID)).Err(); err != nil {
		return fmt.Errorf("%w: flow del: %v", ErrStorage, err)
	}
	return nil
}
