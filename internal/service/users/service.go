package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/kvstore"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonService/internal/service/users/models"
	"github.com/m04kA/SMC-SalonService/pkg/validation"
)

// Service сервис пользователей и аутентификации
type Service struct {
	userRepo    UserRepository
	tokens      TokenIssuer
	superadmins map[string]struct{}
	now         func() time.Time
	logger      Logger
}

// NewService создает новый экземпляр сервиса пользователей
// superadminEmails получают роль superadmin при регистрации
func NewService(userRepo UserRepository, tokens TokenIssuer, superadminEmails []string, logger Logger) *Service {
	superadmins := make(map[string]struct{}, len(superadminEmails))
	for _, email := range superadminEmails {
		superadmins[domain.NormalizeEmail(email)] = struct{}{}
	}

	return &Service{
		userRepo:    userRepo,
		tokens:      tokens,
		superadmins: superadmins,
		now:         time.Now,
		logger:      logger,
	}
}

// Register создает пользователя с ролью customer (или superadmin из конфигурации) и выдает токен
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	email := domain.NormalizeEmail(req.Email)
	req.Email = email
	s.logger.Info("Register: email=%s", email)

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		s.logger.Warn("Register: empty name for email=%s", email)
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}

	role := domain.RoleCustomer
	if _, ok := s.superadmins[email]; ok {
		role = domain.RoleSuperadmin
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:           domain.UserIDFromEmail(email),
		Name:         name,
		Email:        email,
		Phone:        req.Phone,
		Role:         role,
		PasswordHash: string(hash),
		LastLoginAt:  &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if isUserExists(err) {
			s.logger.Warn("Register: email=%s already registered", email)
			return nil, ErrUserExists
		}
		s.logger.Error("Register: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: created user id=%s role=%s", created.ID, created.Role)
	return s.issue(created, now)
}

// Login проверяет пароль, обновляет время входа и выдает токен
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := domain.NormalizeEmail(req.Email)
	req.Email = email
	s.logger.Info("Login: email=%s", email)

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("Login: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	user, err := s.userRepo.GetByID(ctx, domain.UserIDFromEmail(email))
	if err != nil {
		if isUserNotFound(err) {
			s.logger.Warn("Login: unknown email=%s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for user id=%s", user.ID)
		return nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Error("Login: failed to stamp last login for user id=%s: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Login - update last login: %v", ErrInternal, err)
	}
	user.LastLoginAt = &now

	s.logger.Info("Login: user id=%s logged in", user.ID)
	return s.issue(user, now)
}

// GetProfile возвращает профиль текущего пользователя
func (s *Service) GetProfile(ctx context.Context, actor domain.Actor) (*models.UserResponse, error) {
	s.logger.Info("GetProfile: user id=%s", actor.UserID)

	user, err := s.get(ctx, "GetProfile", actor.UserID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainUser(user), nil
}

// UpdateProfile обновляет имя и телефон текущего пользователя
func (s *Service) UpdateProfile(ctx context.Context, actor domain.Actor, req *models.UpdateProfileRequest) (*models.UserResponse, error) {
	s.logger.Info("UpdateProfile: user id=%s", actor.UserID)

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("UpdateProfile: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	user, err := s.get(ctx, "UpdateProfile", actor.UserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		user.Name = name
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone == "" {
			user.Phone = nil
		} else {
			user.Phone = &phone
		}
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		if isUserNotFound(err) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("UpdateProfile: repository error for user id=%s: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: UpdateProfile - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateProfile: user id=%s updated", actor.UserID)
	return models.FromDomainUser(user), nil
}

// ResolveActor загружает актуальную роль и тенант пользователя по id из токена
func (s *Service) ResolveActor(ctx context.Context, userID string) (domain.Actor, error) {
	user, err := s.get(ctx, "ResolveActor", userID)
	if err != nil {
		return domain.Actor{}, err
	}
	return domain.ActorFromUser(user), nil
}

func (s *Service) get(ctx context.Context, method, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if isUserNotFound(err) {
			s.logger.Warn("%s: user id=%s not found", method, userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("%s: repository error for user id=%s: %v", method, userID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return user, nil
}

func (s *Service) issue(user *domain.User, now time.Time) (*models.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Mint(now, user.ID, string(user.Role), user.TenantID)
	if err != nil {
		s.logger.Error("issue: failed to mint token for user id=%s: %v", user.ID, err)
		return nil, fmt.Errorf("%w: mint token: %v", ErrInternal, err)
	}

	return &models.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      models.FromDomainUser(user),
	}, nil
}

func isUserNotFound(err error) bool {
	return errors.Is(err, userRepo.ErrUserNotFound) || errors.Is(err, kvstore.ErrUserNotFound)
}

func isUserExists(err error) bool {
	return errors.Is(err, userRepo.ErrUserExists) || errors.Is(err, kvstore.ErrUserExists)
}
