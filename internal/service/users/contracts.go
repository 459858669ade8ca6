package users

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// UserRepository хранилище пользователей (Postgres или Redis)
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

// TokenIssuer выпускает JWT для пользователя
type TokenIssuer interface {
	Mint(now time.Time, userID, role string, tenantID *string) (string, time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
