package tenants

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/kvstore"
	settingsRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/settings"
	tenantRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/tenant"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	settingsModels "github.com/m04kA/SMC-SalonService/internal/service/settings/models"
	"github.com/m04kA/SMC-SalonService/internal/service/tenants/models"
	"github.com/m04kA/SMC-SalonService/pkg/validation"
)

// slugSuffixLength длина случайного суффикса при коллизии slug
const slugSuffixLength = 8

// Service сервис тенантов: регистрация бизнеса, контекст сессии, администрирование
type Service struct {
	tenantRepo   TenantRepository
	settingsRepo SettingsRepository
	catalog      CatalogSeeder
	userRepo     UserRepository
	txManager    TransactionManager
	now          func() time.Time
	logger       Logger
}

// NewService создает новый экземпляр сервиса тенантов
func NewService(
	tenantRepo TenantRepository,
	settingsRepo SettingsRepository,
	catalog CatalogSeeder,
	userRepo UserRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		tenantRepo:   tenantRepo,
		settingsRepo: settingsRepo,
		catalog:      catalog,
		userRepo:     userRepo,
		txManager:    txManager,
		now:          time.Now,
		logger:       logger,
	}
}

// Register регистрирует бизнес: тенант, настройки и каталог по умолчанию, повышение пользователя до owner
// Все записи создаются в одной транзакции; обновление пользователя идет последним
func (s *Service) Register(ctx context.Context, actor domain.Actor, req *models.RegisterTenantRequest) (*models.TenantWithSettingsResponse, error) {
	s.logger.Info("Register: user=%s registering business name=%q", actor.UserID, req.Name)

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if actor.IsSuperadmin() {
		s.logger.Warn("Register: superadmin user=%s cannot own a business", actor.UserID)
		return nil, ErrAccessDenied
	}
	if actor.TenantID != nil {
		s.logger.Warn("Register: user=%s already belongs to tenant=%s", actor.UserID, *actor.TenantID)
		return nil, ErrAlreadyAffiliated
	}

	var (
		tenant   *domain.Tenant
		settings *domain.BusinessSettings
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		slug, err := s.uniqueSlug(txCtx, name)
		if err != nil {
			return err
		}

		tenant, err = s.tenantRepo.Create(txCtx, &domain.Tenant{
			ID:                 uuid.NewString(),
			Name:               name,
			Slug:               slug,
			OwnerID:            actor.UserID,
			IsActive:           true,
			Plan:               domain.PlanFree,
			SubscriptionStatus: domain.TenantSubscriptionActive,
		})
		if err != nil {
			if errors.Is(err, tenantRepo.ErrSlugTaken) {
				s.logger.Warn("Register: slug=%s taken concurrently", slug)
				return ErrSlugTaken
			}
			s.logger.Error("Register: failed to create tenant: %v", err)
			return fmt.Errorf("%w: Register - create tenant: %v", ErrInternal, err)
		}

		defaults := domain.DefaultSettings(tenant.ID)
		defaults.Phone = req.Phone
		defaults.Email = req.Email
		defaults.Address = req.Address
		settings, err = s.settingsRepo.Create(txCtx, defaults)
		if err != nil {
			s.logger.Error("Register: failed to create settings for tenant=%s: %v", tenant.ID, err)
			return fmt.Errorf("%w: Register - create settings: %v", ErrInternal, err)
		}

		if err := s.catalog.ReplaceAll(txCtx, tenant.ID, domain.DefaultCatalogFor(tenant.ID)); err != nil {
			s.logger.Error("Register: failed to seed catalog for tenant=%s: %v", tenant.ID, err)
			return fmt.Errorf("%w: Register - seed catalog: %v", ErrInternal, err)
		}

		user, err := s.userRepo.GetByID(txCtx, actor.UserID)
		if err != nil {
			if isUserNotFound(err) {
				s.logger.Warn("Register: user=%s not found", actor.UserID)
				return ErrUserNotFound
			}
			s.logger.Error("Register: failed to load user=%s: %v", actor.UserID, err)
			return fmt.Errorf("%w: Register - get user: %v", ErrInternal, err)
		}

		user.Role = domain.RoleOwner
		user.TenantID = &tenant.ID
		user.UpdatedAt = s.now().UTC()
		if err := s.userRepo.Update(txCtx, user); err != nil {
			s.logger.Error("Register: failed to promote user=%s: %v", actor.UserID, err)
			return fmt.Errorf("%w: Register - promote user: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Register: tenant id=%s slug=%s created for owner=%s", tenant.ID, tenant.Slug, actor.UserID)
	return &models.TenantWithSettingsResponse{
		Tenant:   models.FromDomainTenant(tenant),
		Settings: settingsModels.FromDomainSettings(settings, true),
	}, nil
}

// uniqueSlug slug из названия; при коллизии добавляется случайный суффикс
func (s *Service) uniqueSlug(ctx context.Context, name string) (string, error) {
	slug := domain.Slugify(name)

	exists, err := s.tenantRepo.SlugExists(ctx, slug)
	if err != nil {
		s.logger.Error("uniqueSlug: failed to check slug=%s: %v", slug, err)
		return "", fmt.Errorf("%w: check slug: %v", ErrInternal, err)
	}
	if !exists {
		return slug, nil
	}

	return slug + "-" + uuid.NewString()[:slugSuffixLength], nil
}

// ResolveTenant определяет тенант запроса
// Явный slug важнее привязки пользователя: сотрудник на чужой витрине видит чужой салон
// Без slug пользователь с привязкой к бизнесу получает свой тенант
// Неизвестный или неактивный тенант дает пустой контекст без ошибки
func (s *Service) ResolveTenant(ctx context.Context, actor *domain.Actor, slug string) (*domain.Tenant, *domain.BusinessSettings, error) {
	if slug == "" {
		if actor != nil && actor.TenantID != nil {
			return s.loadAffiliated(ctx, *actor.TenantID)
		}
		return nil, nil, nil
	}

	tenant, err := s.tenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			s.logger.Info("ResolveTenant: slug=%s not found, anonymous tenant context", slug)
			return nil, nil, nil
		}
		s.logger.Error("ResolveTenant: failed to get tenant by slug=%s: %v", slug, err)
		return nil, nil, fmt.Errorf("%w: ResolveTenant - get tenant: %v", ErrInternal, err)
	}
	if !tenant.IsActive {
		s.logger.Info("ResolveTenant: tenant=%s is inactive", tenant.ID)
		return nil, nil, nil
	}

	settings, err := s.loadSettings(ctx, tenant.ID)
	if err != nil {
		return nil, nil, err
	}

	return tenant, settings, nil
}

// loadAffiliated параллельно загружает тенант и его настройки
func (s *Service) loadAffiliated(ctx context.Context, tenantID string) (*domain.Tenant, *domain.BusinessSettings, error) {
	var (
		tenant   *domain.Tenant
		settings *domain.BusinessSettings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.tenantRepo.GetByID(gctx, tenantID)
		if err != nil {
			if errors.Is(err, tenantRepo.ErrTenantNotFound) {
				return nil
			}
			return fmt.Errorf("%w: ResolveTenant - get tenant: %v", ErrInternal, err)
		}
		tenant = t
		return nil
	})
	g.Go(func() error {
		st, err := s.loadSettings(gctx, tenantID)
		if err != nil {
			return err
		}
		settings = st
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("ResolveTenant: failed to load tenant=%s: %v", tenantID, err)
		return nil, nil, err
	}

	if tenant == nil || !tenant.IsActive {
		s.logger.Info("ResolveTenant: affiliated tenant=%s missing or inactive", tenantID)
		return nil, nil, nil
	}

	return tenant, settings, nil
}

// loadSettings настройки тенанта; отсутствующие настройки заменяются значениями по умолчанию
func (s *Service) loadSettings(ctx context.Context, tenantID string) (*domain.BusinessSettings, error) {
	settings, err := s.settingsRepo.GetByTenantID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("loadSettings: settings for tenant=%s not found, using defaults", tenantID)
			return domain.DefaultSettings(tenantID), nil
		}
		return nil, fmt.Errorf("%w: get settings: %v", ErrInternal, err)
	}
	return settings, nil
}

// Session контекст сессии для клиента: пользователь, тенант и настройки
func (s *Service) Session(ctx context.Context, actor *domain.Actor, slug string) (*models.SessionResponse, error) {
	s.logger.Info("Session: resolving session, slug=%q", slug)

	tenant, settings, err := s.ResolveTenant(ctx, actor, slug)
	if err != nil {
		return nil, err
	}

	resp := &models.SessionResponse{User: models.FromActor(actor)}
	if tenant != nil {
		resp.Tenant = models.FromDomainTenant(tenant)
		resp.Settings = settingsModels.FromDomainSettings(settings, actor != nil && actor.CanManage(tenant.ID))
	}

	return resp, nil
}

// GetBySlug публичная страница бизнеса; неактивный тенант не виден
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.TenantWithSettingsResponse, error) {
	s.logger.Info("GetBySlug: slug=%s", slug)

	tenant, settings, err := s.ResolveTenant(ctx, nil, slug)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		s.logger.Warn("GetBySlug: slug=%s not found or inactive", slug)
		return nil, ErrTenantNotFound
	}

	return &models.TenantWithSettingsResponse{
		Tenant:   models.FromDomainTenant(tenant),
		Settings: settingsModels.FromDomainSettings(settings, false),
	}, nil
}

// List список тенантов (только superadmin)
func (s *Service) List(ctx context.Context, actor domain.Actor, includeInactive bool) ([]*models.TenantResponse, error) {
	s.logger.Info("List: user=%s, includeInactive=%t", actor.UserID, includeInactive)

	if !actor.IsSuperadmin() {
		s.logger.Warn("List: access denied for user=%s", actor.UserID)
		return nil, ErrAccessDenied
	}

	tenants, err := s.tenantRepo.List(ctx, domain.TenantFilter{IncludeInactive: includeInactive})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d tenants", len(tenants))
	return models.FromDomainTenants(tenants), nil
}

// SetActive деактивирует или реактивирует тенант (только superadmin)
func (s *Service) SetActive(ctx context.Context, actor domain.Actor, tenantID string, active bool) (*models.TenantResponse, error) {
	s.logger.Info("SetActive: user=%s, tenant=%s, active=%t", actor.UserID, tenantID, active)

	if !actor.IsSuperadmin() {
		s.logger.Warn("SetActive: access denied for user=%s", actor.UserID)
		return nil, ErrAccessDenied
	}

	if err := s.tenantRepo.SetActive(ctx, tenantID, active); err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			s.logger.Warn("SetActive: tenant=%s not found", tenantID)
			return nil, ErrTenantNotFound
		}
		s.logger.Error("SetActive: repository error for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: SetActive - repository error: %v", ErrInternal, err)
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		s.logger.Error("SetActive: failed to reload tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: SetActive - reload tenant: %v", ErrInternal, err)
	}

	return models.FromDomainTenant(tenant), nil
}

// AddStaff привязывает зарегистрированного клиента к бизнесу как сотрудника
// Доступно владельцу тенанта и superadmin
func (s *Service) AddStaff(ctx context.Context, actor domain.Actor, tenantID string, req *models.AddStaffRequest) error {
	s.logger.Info("AddStaff: user=%s adding staff to tenant=%s", actor.UserID, tenantID)

	isOwner := actor.Role == domain.RoleOwner && actor.CanManage(tenantID)
	if !isOwner && !actor.IsSuperadmin() {
		s.logger.Warn("AddStaff: access denied for user=%s", actor.UserID)
		return ErrAccessDenied
	}

	if err := validation.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	user, err := s.userRepo.GetByID(ctx, domain.UserIDFromEmail(req.Email))
	if err != nil {
		if isUserNotFound(err) {
			s.logger.Warn("AddStaff: user with email=%s not found", req.Email)
			return ErrUserNotFound
		}
		s.logger.Error("AddStaff: repository error: %v", err)
		return fmt.Errorf("%w: AddStaff - get user: %v", ErrInternal, err)
	}

	if user.TenantID != nil || user.Role != domain.RoleCustomer {
		s.logger.Warn("AddStaff: user=%s has role=%s and cannot become staff", user.ID, user.Role)
		return ErrAlreadyAffiliated
	}

	user.Role = domain.RoleStaff
	user.TenantID = &tenantID
	user.UpdatedAt = s.now().UTC()
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("AddStaff: failed to update user=%s: %v", user.ID, err)
		return fmt.Errorf("%w: AddStaff - update user: %v", ErrInternal, err)
	}

	s.logger.Info("AddStaff: user=%s is now staff of tenant=%s", user.ID, tenantID)
	return nil
}

func isUserNotFound(err error) bool {
	return errors.Is(err, userRepo.ErrUserNotFound) || errors.Is(err, kvstore.ErrUserNotFound)
}
