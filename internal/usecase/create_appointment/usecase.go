package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/settings"
	tenantRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

// NotificationChannel метка метрики недоставленных уведомлений
const NotificationChannel = "webhook"

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	tenantRepo      TenantRepository
	settingsRepo    SettingsRepository
	catalogRepo     CatalogRepository
	notifier        OwnerNotifier
	metrics         Metrics
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	tenantRepo TenantRepository,
	settingsRepo SettingsRepository,
	catalogRepo CatalogRepository,
	notifier OwnerNotifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		tenantRepo:      tenantRepo,
		settingsRepo:    settingsRepo,
		catalogRepo:     catalogRepo,
		notifier:        notifier,
		metrics:         metrics,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Проверка вместимости и вставка идут в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: customer=%s, tenant=%s, services=%v, date=%s, time=%s, location=%s",
		req.CustomerID, req.TenantID, req.ServiceIDs, req.Date.Format(domain.DateFormat), req.StartTime, req.Location)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Тенант должен существовать и быть активным
	tenant, err := uc.tenantRepo.GetByID(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			uc.logger.Warn("CreateAppointment: tenant=%s not found", req.TenantID)
			return nil, ErrTenantNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}
	if !tenant.IsActive {
		uc.logger.Warn("CreateAppointment: tenant=%s is deactivated", req.TenantID)
		return nil, ErrTenantNotFound
	}

	// 4. Настройки бизнеса; при отсутствии используем значения по умолчанию
	settings, err := uc.settingsRepo.GetByTenantID(ctx, req.TenantID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("CreateAppointment: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultSettings(req.TenantID)
		uc.logger.Info("CreateAppointment: using default settings for tenant=%s", req.TenantID)
	}

	// 5. Выезд на дом
	if req.Location == domain.LocationHome && !settings.HomeServiceEnabled {
		uc.logger.Warn("CreateAppointment: home service disabled for tenant=%s", req.TenantID)
		return nil, ErrHomeServiceUnavailable
	}

	// 6. Дата: не в прошлом, в окне записи, рабочий день
	if err := validateDate(req.Date, now, settings); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 7. Снапшоты выбранных активных услуг
	found, err := uc.catalogRepo.GetByIDs(ctx, req.TenantID, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	snapshots, err := selectServices(req.ServiceIDs, found)
	if err != nil {
		uc.logger.Warn("CreateAppointment: service selection rejected: %v", err)
		return nil, err
	}

	duration := domain.TotalDuration(snapshots)

	// 8. Время: в часах работы и не в прошлом
	if err := validateTime(req.Date, req.StartTime, duration, now, settings); err != nil {
		uc.logger.Warn("CreateAppointment: time validation failed: %v", err)
		return nil, err
	}

	// 9. Итоговая сумма
	total, charge := domain.ComputeTotal(snapshots, req.Location, settings.HomeServiceCharge)

	var result *domain.Appointment

	// 10. Проверка вместимости и сохранение в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 10.1. Активные записи на дату (FOR UPDATE)
		appointments, err := uc.appointmentRepo.ListActiveForDate(txCtx, req.TenantID, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 10.2. Если MaxConcurrentBookings = 2, допустимо 0 или 1 пересечение
		overlapping := domain.CountOverlapping(appointments, req.StartTime, duration)
		if overlapping >= settings.MaxConcurrentBookings {
			uc.logger.Warn("CreateAppointment: slot not available, %d/%d spots taken",
				overlapping, settings.MaxConcurrentBookings)
			return ErrSlotNotAvailable
		}

		uc.logger.Info("CreateAppointment: slot available, %d/%d spots taken",
			overlapping, settings.MaxConcurrentBookings)

		// 10.3. Сохраняем запись со снапшотами услуг
		appointment := &domain.Appointment{
			ID:                uuid.NewString(),
			TenantID:          req.TenantID,
			CustomerID:        req.CustomerID,
			Services:          snapshots,
			Date:              dateOnly(req.Date),
			StartTime:         req.StartTime,
			DurationMinutes:   duration,
			TotalPrice:        total,
			HomeServiceCharge: charge,
			Status:            domain.StatusPending,
			Location:          req.Location,
			Address:           trimmed(req.Address),
			Phone:             trimmed(req.Phone),
			Notes:             trimmed(req.Notes),
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.AppointmentCreated(string(result.Location))
	uc.logger.Info("CreateAppointment: created appointment id=%s, total=%d", result.ID, result.TotalPrice)

	// 11. Уведомление владельца; ошибка доставки не отменяет запись
	response := &Response{Appointment: result}
	if err := uc.notifyOwner(ctx, req, settings, result); err != nil {
		response.Warning = "the salon could not be notified about this appointment, please contact them directly"
	}

	return response, nil
}

func (uc *UseCase) notifyOwner(ctx context.Context, req *Request, settings *domain.BusinessSettings, a *domain.Appointment) error {
	names := make([]string, 0, len(a.Services))
	for _, s := range a.Services {
		names = append(names, s.Name)
	}

	err := uc.notifier.NotifyAppointmentCreated(ctx, settings.NotificationWebhook, notifier.AppointmentNotification{
		Event:         notifier.EventAppointmentCreated,
		TenantID:      a.TenantID,
		AppointmentID: a.ID,
		CustomerName:  req.CustomerName,
		CustomerPhone: ptr.Value(a.Phone),
		Services:      names,
		Date:          a.Date.Format(domain.DateFormat),
		Time:          a.StartTime.String(),
		Location:      string(a.Location),
		Address:       ptr.Value(a.Address),
		TotalPrice:    a.TotalPrice,
	})
	if err == nil {
		return nil
	}

	if errors.Is(err, notifier.ErrNoWebhook) {
		uc.logger.Info("CreateAppointment: no notification webhook for tenant=%s", a.TenantID)
		return nil
	}

	uc.metrics.NotificationFailed(NotificationChannel)
	uc.logger.Warn("CreateAppointment: owner notification failed for appointment=%s: %v", a.ID, err)
	return err
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
