package preferences

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/infra/kvstore"
)

type PreferencesStore interface {
	Get(ctx context.Context, userID string) (kvstore.Preferences, error)
	Put(ctx context.Context, userID string, prefs kvstore.Preferences) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
