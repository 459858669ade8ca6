package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonService/pkg/validation"
)

// Service сервис записей: просмотр, смена статусов, оплата, статистика
type Service struct {
	appointmentRepo AppointmentRepository
	metrics         Metrics
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, metrics Metrics, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

// Get запись по ID
// Доступна клиенту-владельцу записи и операторам тенанта
func (s *Service) Get(ctx context.Context, actor domain.Actor, id string) (*models.AppointmentResponse, error) {
	s.logger.Info("Get: fetching appointment id=%s for user=%s", id, actor.UserID)

	appointment, err := s.load(ctx, "Get", id)
	if err != nil {
		return nil, err
	}

	if appointment.CustomerID != actor.UserID && !actor.CanManage(appointment.TenantID) {
		s.logger.Warn("Get: access denied for user=%s to appointment id=%s", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment), nil
}

// ListMine записи текущего клиента, опционально по статусу
func (s *Service) ListMine(ctx context.Context, actor domain.Actor, status *string) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListMine: fetching appointments for user=%s, status=%v", actor.UserID, status)

	var domainStatus *domain.AppointmentStatus
	if status != nil {
		st, err := models.ToDomainStatus(*status)
		if err != nil {
			s.logger.Warn("ListMine: invalid status=%s", *status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &st
	}

	appointments, err := s.appointmentRepo.ListByCustomer(ctx, actor.UserID, domainStatus)
	if err != nil {
		s.logger.Error("ListMine: repository error for user=%s: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: ListMine - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListMine: found %d appointments for user=%s", len(appointments), actor.UserID)
	return models.FromDomainAppointments(appointments), nil
}

// ListForTenant записи тенанта с фильтрацией (только операторы)
func (s *Service) ListForTenant(ctx context.Context, actor domain.Actor, tenantID string, req *models.ListTenantAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListForTenant: user=%s, tenant=%s", actor.UserID, tenantID)

	appointments, err := s.listForTenant(ctx, "ListForTenant", actor, tenantID, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ListForTenant: found %d appointments for tenant=%s", len(appointments), tenantID)
	return models.FromDomainAppointments(appointments), nil
}

// Stats сводка по статусам и выручке для дашборда
func (s *Service) Stats(ctx context.Context, actor domain.Actor, tenantID string, req *models.ListTenantAppointmentsRequest) (*models.StatsResponse, error) {
	s.logger.Info("Stats: user=%s, tenant=%s", actor.UserID, tenantID)

	appointments, err := s.listForTenant(ctx, "Stats", actor, tenantID, req)
	if err != nil {
		return nil, err
	}

	return models.FromDomainStats(domain.NewAppointmentStats(appointments)), nil
}

// Export выгрузка записей тенанта в XLSX
func (s *Service) Export(ctx context.Context, actor domain.Actor, tenantID string, req *models.ListTenantAppointmentsRequest) ([]byte, error) {
	s.logger.Info("Export: user=%s, tenant=%s", actor.UserID, tenantID)

	appointments, err := s.listForTenant(ctx, "Export", actor, tenantID, req)
	if err != nil {
		return nil, err
	}

	data, err := buildWorkbook(appointments)
	if err != nil {
		s.logger.Error("Export: failed to build workbook for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Export - build workbook: %v", ErrInternal, err)
	}

	s.logger.Info("Export: exported %d appointments for tenant=%s", len(appointments), tenantID)
	return data, nil
}

func (s *Service) listForTenant(ctx context.Context, method string, actor domain.Actor, tenantID string, req *models.ListTenantAppointmentsRequest) ([]*domain.Appointment, error) {
	if !actor.CanManage(tenantID) {
		s.logger.Warn("%s: access denied for user=%s to tenant=%s", method, actor.UserID, tenantID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter(tenantID)
	if err != nil {
		s.logger.Warn("%s: invalid filter for tenant=%s: %v", method, tenantID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.ListByTenant(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error for tenant=%s: %v", method, tenantID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}

	return appointments, nil
}

// ChangeStatus переводит запись в новый статус по таблице переходов
// Операторы тенанта выполняют любой разрешенный переход, клиент может только отменить свою запись в статусе pending
func (s *Service) ChangeStatus(ctx context.Context, actor domain.Actor, id string, req *models.ChangeStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("ChangeStatus: user=%s, appointment=%s, to=%s", actor.UserID, id, req.Status)

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("ChangeStatus: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	to := domain.AppointmentStatus(req.Status)

	appointment, err := s.load(ctx, "ChangeStatus", id)
	if err != nil {
		return nil, err
	}
	from := appointment.Status

	if !actor.CanManage(appointment.TenantID) {
		isOwnCancel := appointment.CustomerID == actor.UserID &&
			from == domain.StatusPending && to == domain.StatusCancelled
		if !isOwnCancel {
			s.logger.Warn("ChangeStatus: access denied for user=%s to appointment=%s", actor.UserID, id)
			return nil, ErrAccessDenied
		}
	}

	if !from.CanTransition(to) {
		s.logger.Warn("ChangeStatus: transition %s -> %s not allowed for appointment=%s", from, to, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	var reason *string
	if to == domain.StatusCancelled {
		reason = req.Reason
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, from, to, reason); err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusConflict) {
			s.logger.Warn("ChangeStatus: appointment=%s changed concurrently", id)
			return nil, ErrStatusConflict
		}
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("ChangeStatus: repository error for appointment=%s: %v", id, err)
		return nil, fmt.Errorf("%w: ChangeStatus - repository error: %v", ErrInternal, err)
	}
	s.metrics.StatusChanged(string(from), string(to))

	updated, err := s.load(ctx, "ChangeStatus", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ChangeStatus: appointment=%s moved %s -> %s", id, from, to)
	return models.FromDomainAppointment(updated), nil
}

// RecordPayment сохраняет способ и статус оплаты записи
// Доступно клиенту-владельцу и операторам тенанта
func (s *Service) RecordPayment(ctx context.Context, actor domain.Actor, id string, req *models.RecordPaymentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("RecordPayment: user=%s, appointment=%s, method=%s, status=%s", actor.UserID, id, req.Method, req.Status)

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("RecordPayment: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	method := domain.PaymentMethod(req.Method)
	status := domain.PaymentStatus(req.Status)
	if method == domain.PaymentMethodOnline && status == domain.PaymentStatusPaid && (req.TransactionID == nil || *req.TransactionID == "") {
		return nil, fmt.Errorf("%w: transaction id is required for a paid online payment", ErrInvalidInput)
	}

	appointment, err := s.load(ctx, "RecordPayment", id)
	if err != nil {
		return nil, err
	}

	if appointment.CustomerID != actor.UserID && !actor.CanManage(appointment.TenantID) {
		s.logger.Warn("RecordPayment: access denied for user=%s to appointment=%s", actor.UserID, id)
		return nil, ErrAccessDenied
	}
	if appointment.Status == domain.StatusCancelled {
		s.logger.Warn("RecordPayment: appointment=%s is cancelled", id)
		return nil, ErrPaymentNotAllowed
	}

	if err := s.appointmentRepo.UpdatePayment(ctx, id, method, status, req.TransactionID); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("RecordPayment: repository error for appointment=%s: %v", id, err)
		return nil, fmt.Errorf("%w: RecordPayment - repository error: %v", ErrInternal, err)
	}

	appointment.PaymentMethod = &method
	appointment.PaymentStatus = &status
	appointment.TransactionID = req.TransactionID

	s.logger.Info("RecordPayment: appointment=%s payment recorded", id)
	return models.FromDomainAppointment(appointment), nil
}

func (s *Service) load(ctx context.Context, method, id string) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", method, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return appointment, nil
}
