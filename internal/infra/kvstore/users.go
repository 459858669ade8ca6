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

type userRecord struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Phone        *string     `json:"phone,omitempty"`
	Role         domain.Role `json:"role"`
	TenantID     *string     `json:"tenantId,omitempty"`
	PasswordHash string      `json:"passwordHash"`
	LastLoginAt  *time.Time  `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// UserRepository пользователи в Redis, ключ выводится из email
type UserRepository struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewUserRepository создает репозиторий пользователей на Redis
func NewUserRepository(client redis.UniversalClient) *UserRepository {
	return &UserRepository{client: client, now: time.Now}
}

// Create сохраняет пользователя, если ключ ещё не занят
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := r.now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	raw, err := json.Marshal(toUserRecord(user))
	if err != nil {
		return nil, fmt.Errorf("%w: Create - encode: %v", ErrStorage, err)
	}

	ok, err := r.client.SetNX(ctx, UserKey(user.ID), raw, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - setnx: %v", ErrStorage, err)
	}
	if !ok {
		return nil, ErrUserExists
	}

	return user, nil
}

// GetByID получает пользователя
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	raw, err := r.client.Get(ctx, UserKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - get: %v", ErrStorage, err)
	}

	var rec userRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("%w: user: %v", ErrDecode, err)
	}

	return rec.toDomain(), nil
}

// Update сохраняет профиль, роль и привязку к тенанту
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	current, err := r.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}

	current.Name = user.Name
	current.Phone = user.Phone
	current.Role = user.Role
	current.TenantID = user.TenantID
	current.UpdatedAt = r.now().UTC()

	return r.put(ctx, current)
}

// UpdateLastLogin отмечает время входа
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	current.LastLoginAt = &at

	return r.put(ctx, current)
}

func (r *UserRepository) put(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(toUserRecord(user))
	if err != nil {
		return fmt.Errorf("%w: put - encode: %v", ErrStorage, err)
	}

	if err := r.client.Set(ctx, UserKey(user.ID), raw, 0).Err(); err != nil {
		return fmt.Errorf("%w: put - set: %v", ErrStorage, err)
	}

	return nil
}

func toUserRecord(u *domain.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         u.Role,
		TenantID:     u.TenantID,
		PasswordHash: u.PasswordHash,
		LastLoginAt:  u.LastLoginAt,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Role:         r.Role,
		TenantID:     r.TenantID,
		PasswordHash: r.PasswordHash,
		LastLoginAt:  r.LastLoginAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
