package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/settings"
	tenantRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/tenant"
)

// UseCase use case для получения доступных слотов записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	tenantRepo      TenantRepository
	settingsRepo    SettingsRepository
	catalogRepo     CatalogRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	tenantRepo TenantRepository,
	settingsRepo SettingsRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		tenantRepo:      tenantRepo,
		settingsRepo:    settingsRepo,
		catalogRepo:     catalogRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: tenant=%s, date=%s, services=%v",
		req.TenantID, req.Date.Format(domain.DateFormat), req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Тенант
	tenant, err := uc.tenantRepo.GetByID(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			uc.logger.Warn("GetAvailableSlots: tenant=%s not found", req.TenantID)
			return nil, ErrTenantNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}
	if !tenant.IsActive {
		return nil, ErrTenantNotFound
	}

	// 4. Настройки бизнеса
	settings, err := uc.settingsRepo.GetByTenantID(ctx, req.TenantID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultSettings(req.TenantID)
		uc.logger.Info("GetAvailableSlots: using default settings for tenant=%s", req.TenantID)
	}

	// 5. Валидация даты
	if err := validateDate(req.Date, now, settings); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 6. Длительность: выбранные услуги или один слот
	duration, err := uc.duration(ctx, req, settings)
	if err != nil {
		return nil, err
	}

	response := &Response{
		Date:            req.Date,
		TenantID:        req.TenantID,
		DurationMinutes: duration,
		Slots:           []domain.AvailableSlot{},
	}

	// 7. Нерабочий день
	if !settings.IsWorkingDay(req.Date) {
		uc.logger.Info("GetAvailableSlots: tenant=%s is closed on %s", req.TenantID, req.Date.Format(domain.DateFormat))
		return response, nil
	}
	response.IsOpen = true

	// 8. Генерируем временные слоты
	timeSlots, err := generateTimeSlots(settings, duration, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 9. Активные записи на дату
	appointments, err := uc.appointmentRepo.ListActiveForDate(ctx, req.TenantID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 10. Свободные места в каждом слоте
	response.Slots = calculateAvailableSpots(timeSlots, duration, appointments, settings.MaxConcurrentBookings)

	uc.logger.Info("GetAvailableSlots: generated %d slots for tenant=%s, date=%s",
		len(response.Slots), req.TenantID, req.Date.Format(domain.DateFormat))

	return response, nil
}

func (uc *UseCase) duration(ctx context.Context, req *Request, settings *domain.BusinessSettings) (int, error) {
	if len(req.ServiceIDs) == 0 {
		return settings.SlotDurationMinutes, nil
	}

	services, err := uc.catalogRepo.GetByIDs(ctx, req.TenantID, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get services: %v", err)
		return 0, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	active := make(map[string]*domain.Service, len(services))
	for _, s := range services {
		if s.IsActive {
			active[s.ID] = s
		}
	}

	total := 0
	for _, id := range req.ServiceIDs {
		s, ok := active[id]
		if !ok {
			uc.logger.Warn("GetAvailableSlots: service=%s not available for tenant=%s", id, req.TenantID)
			return 0, fmt.Errorf("%w: %s", ErrServiceNotFound, id)
		}
		total += s.DurationMinutes
	}

	return total, nil
}
