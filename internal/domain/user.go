package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role роль пользователя
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleOwner      Role = "owner"
	RoleStaff      Role = "staff"
	RoleCustomer   Role = "customer"
)

// userNamespace пространство имён для UUID пользователей, выводимых из email
var userNamespace = uuid.MustParse("8f7b5c1e-3d2a-4b6f-9e8d-1a2b3c4d5e6f")

// User пользователь платформы
type User struct {
	ID           string // выводится из email, см. UserIDFromEmail
	Name         string
	Email        string
	Phone        *string
	Role         Role
	TenantID     *string // обязателен для owner и staff
	PasswordHash string
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail приводит email к каноническому виду
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserIDFromEmail детерминированный идентификатор пользователя
func UserIDFromEmail(email string) string {
	return uuid.NewSHA1(userNamespace, []byte(NormalizeEmail(email))).String()
}

// IsValidRole проверяет роль
func IsValidRole(r Role) bool {
	switch r {
	case RoleSuperadmin, RoleOwner, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

// Actor пользователь, выполняющий запрос
type Actor struct {
	UserID   string
	Name     string
	Email    string
	Phone    *string
	Role     Role
	TenantID *string
}

// ActorFromUser собирает Actor из записи пользователя
func ActorFromUser(u *User) Actor {
	return Actor{
		UserID:   u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		Role:     u.Role,
		TenantID: u.TenantID,
	}
}

// IsSuperadmin администратор платформы
func (a Actor) IsSuperadmin() bool {
	return a.Role == RoleSuperadmin
}

// CanManage может ли пользователь управлять тенантом (owner/staff тенанта или superadmin)
func (a Actor) CanManage(tenantID string) bool {
	if a.IsSuperadmin() {
		return true
	}
	if a.Role != RoleOwner && a.Role != RoleStaff {
		return false
	}
	return a.TenantID != nil && *a.TenantID == tenantID
}
