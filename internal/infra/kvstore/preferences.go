package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Preferences UI-настройки пользователя
type Preferences struct {
	DarkMode bool `json:"darkMode"`
}

// PreferencesStore настройки пользователей в Redis
type PreferencesStore struct {
	client redis.UniversalClient
}

func NewPreferencesStore(client redis.UniversalClient) *PreferencesStore {
	return &PreferencesStore{client: client}
}

// Get возвращает настройки; отсутствие ключа означает значения по умолчанию
func (s *PreferencesStore) Get(ctx context.Context, userID string) (Preferences, error) {
	raw, err := s.client.Get(ctx, PreferenceKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Preferences{}, nil
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("%w: preferences get: %v", ErrStorage, err)
	}

	var prefs Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return Preferences{}, fmt.Errorf("%w: preferences: %v", ErrDecode, err)
	}

	return prefs, nil
}

// Put сохраняет настройки без срока жизни
func (s *PreferencesStore) Put(ctx context.Context, userID string, prefs Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("%w: preferences encode: %v", ErrStorage, err)
	}

	if err := s.client.Set(ctx, PreferenceKey(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("%w: preferences set: %v", ErrStorage, err)
	}

	return nil
}
