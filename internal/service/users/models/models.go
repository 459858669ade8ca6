package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// RegisterRequest запрос на регистрацию
type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6,max=72"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

// LoginRequest запрос на вход
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest частичное обновление профиля
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

// UserResponse профиль пользователя
type UserResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       *string    `json:"phone,omitempty"`
	Role        string     `json:"role"`
	TenantID    *string    `json:"tenantId,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// AuthResponse токен и профиль после регистрации или входа
type AuthResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	User      *UserResponse `json:"user"`
}

// FromDomainUser конвертирует domain.User в UserResponse
func FromDomainUser(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        string(u.Role),
		TenantID:    u.TenantID,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
