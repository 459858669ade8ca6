package bookingflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/kvstore"
	appointmentService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	appointmentModels "github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonService/internal/service/bookingflow/models"
	reviewModels "github.com/m04kA/SMC-SalonService/internal/service/reviews/models"
	"github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
	"github.com/m04kA/SMC-SalonService/pkg/types"
	"github.com/m04kA/SMC-SalonService/pkg/validation"
)

const cancelReasonRebooked = "changed in booking flow"

// Service клиентский сценарий записи:
// selecting_services -> datetime_chosen -> submitted -> payment -> review -> thank_you
type Service struct {
	flows        FlowStore
	creator      AppointmentCreator
	appointments AppointmentUpdater
	reviews      ReviewCreator
	logger       Logger
	now          func() time.Time
}

// NewService создает новый экземпляр сервиса сценария записи
func NewService(flows FlowStore, creator AppointmentCreator, appointments AppointmentUpdater, reviews ReviewCreator, logger Logger) *Service {
	return &Service{
		flows:        flows,
		creator:      creator,
		appointments: appointments,
		reviews:      reviews,
		logger:       logger,
		now:          time.Now,
	}
}

// Start открывает новую сессию записи к тенанту
func (s *Service) Start(ctx context.Context, actor domain.Actor, tenantID string) (*models.FlowResponse, error) {
	flow := domain.NewBookingFlow(uuid.NewString(), tenantID, actor.UserID, s.now())
	if actor.Phone != nil {
		flow.Phone = *actor.Phone
	}

	if err := s.save(ctx, "Start", flow); err != nil {
		return nil, err
	}

	s.logger.Info("Start: flow=%s opened by user=%s for tenant=%s", flow.ID, actor.UserID, tenantID)
	return models.FromDomainFlow(flow), nil
}

// Get текущее состояние сессии
func (s *Service) Get(ctx context.Context, actor domain.Actor, flowID string) (*models.FlowResponse, error) {
	flow, err := s.load(ctx, "Get", actor, flowID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainFlow(flow), nil
}

// SelectServices заменяет выбор услуг; доступно только на шаге выбора
func (s *Service) SelectServices(ctx context.Context, actor domain.Actor, flowID string, req *models.SelectServicesRequest) (*models.FlowResponse, error) {
	s.logger.Info("SelectServices: flow=%s, services=%v", flowID, req.ServiceIDs)

	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	flow, err := s.load(ctx, "SelectServices", actor, flowID)
	if err != nil {
		return nil, err
	}
	if flow.State != domain.FlowSelectingServices {
		s.logger.Warn("SelectServices: flow=%s is in state=%s", flowID, flow.State)
		return nil, ErrSelectionLocked
	}

	flow.ServiceIDs = uniqueIDs(req.ServiceIDs)
	flow.UpdatedAt = s.now()

	if err := s.save(ctx, "SelectServices", flow); err != nil {
		return nil, err
	}
	return models.FromDomainFlow(flow), nil
}

// Dispatch применяет событие к сессии
// Побочные эффекты события выполняются до перехода; при ошибке состояние не меняется
func (s *Service) Dispatch(ctx context.Context, actor domain.Actor, flowID string, req *models.EventRequest) (*models.FlowResponse, error) {
	s.logger.Info("Dispatch: flow=%s, event=%s, user=%s", flowID, req.Event, actor.UserID)

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("Dispatch: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	flow, err := s.load(ctx, "Dispatch", actor, flowID)
	if err != nil {
		return nil, err
	}

	event := domain.FlowEvent(req.Event)
	if _, err := domain.NextFlowState(flow.State, event); err != nil {
		s.logger.Warn("Dispatch: %v", err)
		return nil, fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, event, flow.State)
	}

	switch event {
	case domain.EventChooseDatetime:
		err = s.chooseDatetime(flow, req)
	case domain.EventSubmit:
		err = s.submit(ctx, actor, flow)
	case domain.EventStartPayment:
		err = s.startPayment(ctx, actor, flow, req)
	case domain.EventPaymentDone:
		err = s.completePayment(ctx, actor, flow, req)
	case domain.EventReviewDone:
		err = s.finishReview(ctx, actor, flow, req)
	case domain.EventGoBack:
		err = s.releaseUnpaid(ctx, actor, flow)
	}
	if err != nil {
		return nil, err
	}

	if err := flow.Apply(event, s.now()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	if err := s.save(ctx, "Dispatch", flow); err != nil {
		return nil, err
	}

	s.logger.Info("Dispatch: flow=%s moved to state=%s", flow.ID, flow.State)
	return models.FromDomainFlow(flow), nil
}

// Abandon удаляет сессию; созданная запись остаётся
func (s *Service) Abandon(ctx context.Context, actor domain.Actor, flowID string) error {
	if _, err := s.load(ctx, "Abandon", actor, flowID); err != nil {
		return err
	}

	if err := s.flows.Delete(ctx, flowID); err != nil {
		s.logger.Error("Abandon: failed to delete flow=%s: %v", flowID, err)
		return fmt.Errorf("%w: Abandon - store error: %v", ErrInternal, err)
	}
	return nil
}

// chooseDatetime проверки перед переходом к подтверждению
func (s *Service) chooseDatetime(flow *domain.BookingFlow, req *models.EventRequest) error {
	if len(req.ServiceIDs) > 0 {
		flow.ServiceIDs = uniqueIDs(req.ServiceIDs)
	}
	if len(flow.ServiceIDs) == 0 {
		return fmt.Errorf("%w: select at least one service", ErrInvalidInput)
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if req.Date < s.now().Format(domain.DateFormat) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidInput, req.Date)
	}

	startTime, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		return fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
	}

	location := domain.LocationParlor
	if req.Location != "" {
		location = domain.Location(req.Location)
	}
	address := strings.TrimSpace(req.Address)
	if location == domain.LocationHome && address == "" {
		return fmt.Errorf("%w: address is required for home service", ErrInvalidInput)
	}

	flow.Date = date.Format(domain.DateFormat)
	flow.Time = startTime
	flow.Location = location
	flow.Address = address
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		flow.Phone = phone
	}
	flow.Notes = strings.TrimSpace(req.Notes)
	return nil
}

// submit создаёт запись со статусом pending
func (s *Service) submit(ctx context.Context, actor domain.Actor, flow *domain.BookingFlow) error {
	date, err := time.Parse(domain.DateFormat, flow.Date)
	if err != nil {
		return fmt.Errorf("%w: date is not chosen", ErrInvalidInput)
	}

	req := &create_appointment.Request{
		TenantID:     flow.TenantID,
		CustomerID:   actor.UserID,
		CustomerName: actor.Name,
		ServiceIDs:   flow.ServiceIDs,
		Date:         date,
		StartTime:    flow.Time,
		Location:     flow.Location,
		Phone:        optional(flow.Phone),
		Notes:        optional(flow.Notes),
	}
	if flow.Location == domain.LocationHome {
		req.Address = optional(flow.Address)
	}

	resp, err := s.creator.Execute(ctx, req)
	if err != nil {
		s.logger.Warn("Dispatch: submit of flow=%s rejected: %v", flow.ID, err)
		return err
	}

	flow.AppointmentID = resp.Appointment.ID
	flow.Warning = resp.Warning
	return nil
}

// startPayment фиксирует выбранный способ оплаты
func (s *Service) startPayment(ctx context.Context, actor domain.Actor, flow *domain.BookingFlow, req *models.EventRequest) error {
	if req.PaymentMethod == "" {
		return fmt.Errorf("%w: paymentMethod is required", ErrInvalidInput)
	}

	_, err := s.appointments.RecordPayment(ctx, actor, flow.AppointmentID, &appointmentModels.RecordPaymentRequest{
		Method: req.PaymentMethod,
		Status: string(domain.PaymentStatusPending),
	})
	if err != nil {
		s.logger.Warn("Dispatch: start payment of flow=%s failed: %v", flow.ID, err)
		return err
	}

	flow.PaymentMethod = domain.PaymentMethod(req.PaymentMethod)
	return nil
}

// completePayment фиксирует результат оплаты
func (s *Service) completePayment(ctx context.Context, actor domain.Actor, flow *domain.BookingFlow, req *models.EventRequest) error {
	if req.PaymentStatus == "" {
		return fmt.Errorf("%w: paymentStatus is required", ErrInvalidInput)
	}

	_, err := s.appointments.RecordPayment(ctx, actor, flow.AppointmentID, &appointmentModels.RecordPaymentRequest{
		Method:        string(flow.PaymentMethod),
		Status:        req.PaymentStatus,
		TransactionID: optional(req.TransactionID),
	})
	if err != nil {
		s.logger.Warn("Dispatch: payment result of flow=%s rejected: %v", flow.ID, err)
		return err
	}

	flow.TransactionID = req.TransactionID
	return nil
}

// finishReview отзыв необязателен; без него сценарий просто завершается
func (s *Service) finishReview(ctx context.Context, actor domain.Actor, flow *domain.BookingFlow, req *models.EventRequest) error {
	if req.Review == nil {
		return nil
	}

	review, err := s.reviews.CreateForBooking(ctx, actor, &reviewModels.CreateReviewRequest{
		AppointmentID: flow.AppointmentID,
		Rating:        req.Review.Rating,
		Comment:       req.Review.Comment,
	})
	if err != nil {
		s.logger.Warn("Dispatch: review for flow=%s rejected: %v", flow.ID, err)
		return err
	}

	flow.ReviewID = review.ID
	return nil
}

// releaseUnpaid отменяет неоплаченную запись при возврате с шага оплаты
// Запись, которую оператор уже подтвердил, остаётся
func (s *Service) releaseUnpaid(ctx context.Context, actor domain.Actor, flow *domain.BookingFlow) error {
	if flow.State != domain.FlowPayment || flow.AppointmentID == "" {
		return nil
	}

	_, err := s.appointments.ChangeStatus(ctx, actor, flow.AppointmentID, &appointmentModels.ChangeStatusRequest{
		Status: string(domain.StatusCancelled),
		Reason: ptr.Ptr(cancelReasonRebooked),
	})
	if err != nil {
		if errors.Is(err, appointmentService.ErrInvalidTransition) {
			s.logger.Info("Dispatch: appointment=%s of flow=%s is no longer pending, kept", flow.AppointmentID, flow.ID)
			return nil
		}
		s.logger.Warn("Dispatch: failed to release appointment=%s of flow=%s: %v", flow.AppointmentID, flow.ID, err)
		return err
	}

	s.logger.Info("Dispatch: appointment=%s of flow=%s cancelled on go_back", flow.AppointmentID, flow.ID)
	return nil
}

func (s *Service) load(ctx context.Context, method string, actor domain.Actor, flowID string) (*domain.BookingFlow, error) {
	flow, err := s.flows.Get(ctx, flowID)
	if err != nil {
		if errors.Is(err, kvstore.ErrFlowNotFound) {
			s.logger.Warn("%s: flow=%s not found or expired", method, flowID)
			return nil, ErrFlowNotFound
		}
		s.logger.Error("%s: failed to load flow=%s: %v", method, flowID, err)
		return nil, fmt.Errorf("%w: %s - store error: %v", ErrInternal, method, err)
	}

	// чужая сессия неотличима от несуществующей
	if flow.CustomerID != actor.UserID {
		s.logger.Warn("%s: flow=%s does not belong to user=%s", method, flowID, actor.UserID)
		return nil, ErrFlowNotFound
	}

	return flow, nil
}

func (s *Service) save(ctx context.Context, method string, flow *domain.BookingFlow) error {
	if err := s.flows.Save(ctx, flow); err != nil {
		s.logger.Error("%s: failed to save flow=%s: %v", method, flow.ID, err)
		return fmt.Errorf("%w: %s - store error: %v", ErrInternal, method, err)
	}
	return nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return ptr.Ptr(s)
}
