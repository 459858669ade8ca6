package bookingflow

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/kvstore"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	reviewRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/review"
	appointmentService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	appointmentModels "github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonService/internal/service/bookingflow/models"
	reviewService "github.com/m04kA/SMC-SalonService/internal/service/reviews"
	reviewModels "github.com/m04kA/SMC-SalonService/internal/service/reviews/models"
	"github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeCreator struct {
	requests []*create_appointment.Request
	warning  string
	err      error
}

func (f *fakeCreator) Execute(_ context.Context, req *create_appointment.Request) (*create_appointment.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.requests = append(f.requests, req)
	return &create_appointment.Response{
		Appointment: &domain.Appointment{ID: "appt-1", TenantID: req.TenantID, Status: domain.StatusPending},
		Warning:     f.warning,
	}, nil
}

type fakeAppointments struct {
	calls     []*appointmentModels.RecordPaymentRequest
	cancelled []string
	err       error
	statusErr error
}

func (f *fakeAppointments) RecordPayment(_ context.Context, _ domain.Actor, id string, req *appointmentModels.RecordPaymentRequest) (*appointmentModels.AppointmentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls = append(f.calls, req)
	return &appointmentModels.AppointmentResponse{ID: id}, nil
}

func (f *fakeAppointments) ChangeStatus(_ context.Context, _ domain.Actor, id string, req *appointmentModels.ChangeStatusRequest) (*appointmentModels.AppointmentResponse, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	f.cancelled = append(f.cancelled, id)
	return &appointmentModels.AppointmentResponse{ID: id, Status: req.Status}, nil
}

type fakeReviews struct {
	requests []*reviewModels.CreateReviewRequest
	err      error
}

func (f *fakeReviews) CreateForBooking(_ context.Context, _ domain.Actor, req *reviewModels.CreateReviewRequest) (*reviewModels.ReviewResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.requests = append(f.requests, req)
	return &reviewModels.ReviewResponse{ID: "review-1", AppointmentID: req.AppointmentID, Rating: req.Rating}, nil
}

type testEnv struct {
	svc          *Service
	creator      *fakeCreator
	appointments *fakeAppointments
	reviews      *fakeReviews
	mr           *miniredis.Miniredis
}

var (
	fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	customer = domain.Actor{UserID: "cust-1", Name: "Asha", Role: domain.RoleCustomer}
)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	env := &testEnv{
		creator:      &fakeCreator{},
		appointments: &fakeAppointments{},
		reviews:      &fakeReviews{},
		mr:           mr,
	}
	env.svc = NewService(kvstore.NewFlowStore(client, time.Hour), env.creator, env.appointments, env.reviews, logger.NewNop())
	env.svc.now = func() time.Time { return fixedNow }
	return env
}

func (e *testEnv) startWithServices(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	flow, err := e.svc.Start(ctx, customer, "glow")
	require.NoError(t, err)
	_, err = e.svc.SelectServices(ctx, customer, flow.ID, &models.SelectServicesRequest{ServiceIDs: []string{"s1", "s2", "s1"}})
	require.NoError(t, err)
	return flow.ID
}

func chooseParlor() *models.EventRequest {
	return &models.EventRequest{Event: "choose_datetime", Date: "2025-03-11", Time: "10:30"}
}

func TestFlow_HappyPath(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	flow, err := env.svc.Start(ctx, customer, "glow")
	require.NoError(t, err)
	assert.Equal(t, "selecting_services", flow.State)
	assert.Equal(t, []string{"choose_datetime"}, flow.AllowedEvents)

	flow, err = env.svc.SelectServices(ctx, customer, flow.ID, &models.SelectServicesRequest{ServiceIDs: []string{"s1", "s2", "s1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, flow.ServiceIDs)

	flow, err = env.svc.Dispatch(ctx, customer, flow.ID, &models.EventRequest{
		Event:    "choose_datetime",
		Date:     "2025-03-11",
		Time:     "10:30",
		Location: "home",
		Address:  " 12 MG Road ",
		Phone:    "+91 90000 00000",
	})
	require.NoError(t, err)
	assert.Equal(t, "datetime_chosen", flow.State)
	assert.Equal(t, "12 MG Road", flow.Address)
	assert.ElementsMatch(t, []string{"submit", "go_back"}, flow.AllowedEvents)

	flow, err = env.svc.Dispatch(ctx, customer, flow.ID, &models.EventRequest{Event: "submit"})
	require.NoError(t, err)
	assert.Equal(t, "submitted", flow.State)
	assert.Equal(t, "appt-1", flow.AppointmentID)

	require.Len(t, env.creator.requests, 1)
	created := env.creator.requests[0]
	assert.Equal(t, "glow", created.TenantID)
	assert.Equal(t, "cust-1", created.CustomerID)
	assert.Equal(t, "Asha", created.CustomerName)
	assert.Equal(t, []string{"s1", "s2"}, created.ServiceIDs)
	assert.Equal(t, "2025-03-11", created.Date.Format(domain.DateFormat))
	assert.Equal(t, "10:30", created.StartTime.String())
	assert.Equal(t, domain.LocationHome, created.Location)
	require.NotNil(t, created.Address)
	assert.Equal(t, "12 MG Road", *created.Address)
	require.NotNil(t, created.Phone)
	assert.Nil(t, created.Notes)

	flow, err = env.svc.Dispatch(ctx, customer, flow.ID, &models.EventRequest{Event: "start_payment", PaymentMethod: "online"})
	require.NoError(t, err)
	assert.Equal(t, "payment", flow.State)
	assert.Equal(t, "online", flow.PaymentMethod)

	flow, err = env.svc.Dispatch(ctx, customer, flow.ID, &models.EventRequest{Event: "payment_done", PaymentStatus: "paid", TransactionID: "pay_123"})
	require.NoError(t, err)
	assert.Equal(t, "review", flow.State)

	require.Len(t, env.appointments.calls, 2)
	assert.Equal(t, "pending", env.appointments.calls[0].Status)
	assert.Equal(t, "online", env.appointments.calls[1].Method)
	assert.Equal(t, "paid", env.appointments.calls[1].Status)
	require.NotNil(t, env.appointments.calls[1].TransactionID)
	assert.Equal(t, "pay_123", *env.appointments.calls[1].TransactionID)

	flow, err = env.svc.Dispatch(ctx, customer, flow.ID, &models.EventRequest{
		Event:  "review_done",
		Review: &models.ReviewInput{Rating: 5, Comment: "lovely"},
	})
	require.NoError(t, err)
	assert.Equal(t, "thank_you", flow.State)
	assert.Equal(t, "review-1", flow.ReviewID)
	require.Len(t, env.reviews.requests, 1)
	assert.Equal(t, "appt-1", env.reviews.requests[0].AppointmentID)

	flow, err = env.svc.Dispatch(ctx, customer, flow.ID, &models.EventRequest{Event: "restart"})
	require.NoError(t, err)
	assert.Equal(t, "selecting_services", flow.State)
	assert.Empty(t, flow.ServiceIDs)
	assert.Empty(t, flow.AppointmentID)
	assert.Empty(t, flow.Date)
}

func TestFlow_ReviewIsOptional(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.startWithServices(t)

	for _, req := range []*models.EventRequest{
		chooseParlor(),
		{Event: "submit"},
		{Event: "start_payment", PaymentMethod: "cash"},
		{Event: "payment_done", PaymentStatus: "pending"},
		{Event: "review_done"},
	} {
		_, err := env.svc.Dispatch(ctx, customer, id, req)
		require.NoError(t, err, req.Event)
	}

	flow, err := env.svc.Get(ctx, customer, id)
	require.NoError(t, err)
	assert.Equal(t, "thank_you", flow.State)
	assert.Empty(t, flow.ReviewID)
	assert.Empty(t, env.reviews.requests)
}

func TestFlow_InvalidTransition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.startWithServices(t)

	for _, event := range []string{"submit", "start_payment", "payment_done", "review_done", "go_back", "restart"} {
		_, err := env.svc.Dispatch(ctx, customer, id, &models.EventRequest{Event: event})
		assert.ErrorIs(t, err, ErrInvalidTransition, event)
	}

	_, err := env.svc.Dispatch(ctx, customer, id, &models.EventRequest{Event: "teleport"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, env.creator.requests)
}

func TestFlow_ChooseDatetimeGuards(t *testing.T) {
	tests := []struct {
		name string
		req  *models.EventRequest
	}{
		{"bad date", &models.EventRequest{Event: "choose_datetime", Date: "11/03/2025", Time: "10:30"}},
		{"past date", &models.EventRequest{Event: "choose_datetime", Date: "2025-03-09", Time: "10:30"}},
		{"bad time", &models.EventRequest{Event: "choose_datetime", Date: "2025-03-11", Time: "25:00"}},
		{"home without address", &models.EventRequest{Event: "choose_datetime", Date: "2025-03-11", Time: "10:30", Location: "home", Address: "  "}},
		{"unknown location", &models.EventRequest{Event: "choose_datetime", Date: "2025-03-11", Time: "10:30", Location: "moon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			id := env.startWithServices(t)

			_, err := env.svc.Dispatch(context.Background(), customer, id, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)

			flow, err := env.svc.Get(context.Background(), customer, id)
			require.NoError(t, err)
			assert.Equal(t, "selecting_services", flow.State)
		})
	}
}

func TestFlow_ChooseDatetimeRequiresServices(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	flow, err := env.svc.Start(ctx, customer, "glow")
	require.NoError(t, err)

	_, err = env.svc.Dispatch(ctx, customer, flow.ID, chooseParlor())
	assert.ErrorIs(t, err, ErrInvalidInput)

	// услуги можно передать вместе с событием
	req := chooseParlor()
	req.ServiceIDs = []string{"s3"}
	resp, err := env.svc.Dispatch(ctx, customer, flow.ID, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"s3"}, resp.ServiceIDs)

	// сегодняшняя дата допустима
	_, err = env.svc.Dispatch(ctx, customer, flow.ID, &models.EventRequest{Event: "go_back"})
	require.NoError(t, err)
	_, err = env.svc.Dispatch(ctx, customer, flow.ID, &models.EventRequest{Event: "choose_datetime", Date: "2025-03-10", Time: "17:00"})
	require.NoError(t, err)
}

func TestFlow_SelectionLockedAfterDatetime(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.startWithServices(t)

	_, err := env.svc.Dispatch(ctx, customer, id, chooseParlor())
	require.NoError(t, err)

	_, err = env.svc.SelectServices(ctx, customer, id, &models.SelectServicesRequest{ServiceIDs: []string{"s9"}})
	assert.ErrorIs(t, err, ErrSelectionLocked)
}

func TestFlow_SubmitFailureKeepsState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.startWithServices(t)

	_, err := env.svc.Dispatch(ctx, customer, id, chooseParlor())
	require.NoError(t, err)

	env.creator.err = create_appointment.ErrSlotNotAvailable
	_, err = env.svc.Dispatch(ctx, customer, id, &models.EventRequest{Event: "submit"})
	assert.ErrorIs(t, err, create_appointment.ErrSlotNotAvailable)

	flow, err := env.svc.Get(ctx, customer, id)
	require.NoError(t, err)
	assert.Equal(t, "datetime_chosen", flow.State)
	assert.Empty(t, flow.AppointmentID)
}

func TestFlow_SubmitKeepsWarning(t *testing.T) {
	env := newTestEnv(t)
	env.creator.warning = "owner was not notified"
	ctx := context.Background()
	id := env.startWithServices(t)

	_, err := env.svc.Dispatch(ctx, customer, id, chooseParlor())
	require.NoError(t, err)
	flow, err := env.svc.Dispatch(ctx, customer, id, &models.EventRequest{Event: "submit"})
	require.NoError(t, err)
	assert.Equal(t, "owner was not notified", flow.Warning)
}

func TestFlow_GoBackDiscardsPaymentContext(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.startWithServices(t)

	for _, req := range []*models.EventRequest{
		chooseParlor(),
		{Event: "submit"},
		{Event: "start_payment", PaymentMethod: "cash"},
	} {
		_, err := env.svc.Dispatch(ctx, customer, id, req)
		require.NoError(t, err)
	}

	flow, err := env.svc.Dispatch(ctx, customer, id, &models.EventRequest{Event: "go_back"})
	require.NoError(t, err)
	assert.Equal(t, "selecting_services", flow.State)
	assert.Empty(t, flow.AppointmentID)
	assert.Empty(t, flow.PaymentMethod)
	assert.Equal(t, []string{"s1", "s2"}, flow.ServiceIDs)
	assert.Equal(t, "2025-03-11", flow.Date)
	assert.Equal(t, []string{"appt-1"}, env.appointments.cancelled)
}

func TestFlow_GoBackFromReviewKeepsPaidAppointment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.startWithServices(t)

	for _, req := range []*models.EventRequest{
		chooseParlor(),
		{Event: "submit"},
		{Event: "start_payment", PaymentMethod: "online"},
		{Event: "payment_done", PaymentStatus: "paid", TransactionID: "pay_1"},
		{Event: "go_back"},
	} {
		_, err := env.svc.Dispatch(ctx, customer, id, req)
		require.NoError(t, err, req.Event)
	}

	assert.Empty(t, env.appointments.cancelled)
}

func TestFlow_GoBackWhenAppointmentNotPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.startWithServices(t)

	for _, req := range []*models.EventRequest{
		chooseParlor(),
		{Event: "submit"},
		{Event: "start_payment", PaymentMethod: "cash"},
	} {
		_, err := env.svc.Dispatch(ctx, customer, id, req)
		require.NoError(t, err)
	}

	// ошибка отмены оставляет сессию на шаге оплаты
	env.appointments.statusErr = errors.New("db down")
	_, err := env.svc.Dispatch(ctx, customer, id, &models.EventRequest{Event: "go_back"})
	require.Error(t, err)
	flow, err := env.svc.Get(ctx, customer, id)
	require.NoError(t, err)
	assert.Equal(t, "payment", flow.State)

	// запись уже подтверждена оператором
	env.appointments.statusErr = fmt.Errorf("%w: confirmed -> cancelled", appointmentService.ErrInvalidTransition)
	flow, err = env.svc.Dispatch(ctx, customer, id, &models.EventRequest{Event: "go_back"})
	require.NoError(t, err)
	assert.Equal(t, "selecting_services", flow.State)
	assert.Empty(t, flow.AppointmentID)
}

func TestFlow_PaymentGuards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.startWithServices(t)

	for _, req := range []*models.EventRequest{chooseParlor(), {Event: "submit"}} {
		_, err := env.svc.Dispatch(ctx, customer, id, req)
		require.NoError(t, err)
	}

	_, err := env.svc.Dispatch(ctx, customer, id, &models.EventRequest{Event: "start_payment"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	paymentErr := errors.New("payment not allowed")
	env.appointments.err = paymentErr
	_, err = env.svc.Dispatch(ctx, customer, id, &models.EventRequest{Event: "start_payment", PaymentMethod: "cash"})
	assert.ErrorIs(t, err, paymentErr)

	env.appointments.err = nil
	_, err = env.svc.Dispatch(ctx, customer, id, &models.EventRequest{Event: "start_payment", PaymentMethod: "cash"})
	require.NoError(t, err)

	_, err = env.svc.Dispatch(ctx, customer, id, &models.EventRequest{Event: "payment_done"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFlow_ReviewFailureKeepsState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.startWithServices(t)

	for _, req := range []*models.EventRequest{
		chooseParlor(),
		{Event: "submit"},
		{Event: "start_payment", PaymentMethod: "cash"},
		{Event: "payment_done", PaymentStatus: "paid"},
	} {
		_, err := env.svc.Dispatch(ctx, customer, id, req)
		require.NoError(t, err)
	}

	reviewErr := errors.New("appointment is not completed")
	env.reviews.err = reviewErr
	_, err := env.svc.Dispatch(ctx, customer, id, &models.EventRequest{Event: "review_done", Review: &models.ReviewInput{Rating: 4}})
	assert.ErrorIs(t, err, reviewErr)

	flow, err := env.svc.Get(ctx, customer, id)
	require.NoError(t, err)
	assert.Equal(t, "review", flow.State)
}

func TestFlow_Ownership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.startWithServices(t)

	stranger := domain.Actor{UserID: "cust-2", Role: domain.RoleCustomer}
	_, err := env.svc.Get(ctx, stranger, id)
	assert.ErrorIs(t, err, ErrFlowNotFound)
	_, err = env.svc.Dispatch(ctx, stranger, id, chooseParlor())
	assert.ErrorIs(t, err, ErrFlowNotFound)
	assert.ErrorIs(t, env.svc.Abandon(ctx, stranger, id), ErrFlowNotFound)

	_, err = env.svc.Get(ctx, customer, "missing")
	assert.ErrorIs(t, err, ErrFlowNotFound)
}

func TestFlow_AbandonAndExpiry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.startWithServices(t)
	require.NoError(t, env.svc.Abandon(ctx, customer, id))
	_, err := env.svc.Get(ctx, customer, id)
	assert.ErrorIs(t, err, ErrFlowNotFound)

	id = env.startWithServices(t)
	env.mr.FastForward(2 * time.Hour)
	_, err = env.svc.Get(ctx, customer, id)
	assert.ErrorIs(t, err, ErrFlowNotFound)
}

func TestFlow_StoreUnavailable(t *testing.T) {
	env := newTestEnv(t)
	env.mr.Close()

	_, err := env.svc.Start(context.Background(), customer, "glow")
	assert.ErrorIs(t, err, ErrInternal)
}

type memoryReviews struct {
	items []*domain.Review
}

func (m *memoryReviews) Create(_ context.Context, r *domain.Review) (*domain.Review, error) {
	for _, existing := range m.items {
		if existing.AppointmentID == r.AppointmentID {
			return nil, reviewRepo.ErrReviewExists
		}
	}
	m.items = append(m.items, r)
	return r, nil
}

func (m *memoryReviews) GetByID(_ context.Context, id string) (*domain.Review, error) {
	for _, r := range m.items {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, reviewRepo.ErrReviewNotFound
}

func (m *memoryReviews) Update(_ context.Context, r *domain.Review) (*domain.Review, error) {
	return r, nil
}

func (m *memoryReviews) List(_ context.Context, filter domain.ReviewFilter) ([]*domain.Review, error) {
	result := make([]*domain.Review, 0, len(m.items))
	for _, r := range m.items {
		if r.TenantID == filter.TenantID && (!filter.ApprovedOnly || r.IsApproved) {
			result = append(result, r)
		}
	}
	return result, nil
}

type storedAppointments map[string]*domain.Appointment

func (s storedAppointments) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	a, ok := s[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return a, nil
}

func TestFlow_ReviewWithReviewsService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	stored := &memoryReviews{}
	appointments := storedAppointments{
		"appt-1": {ID: "appt-1", TenantID: "glow", CustomerID: customer.UserID, Status: domain.StatusPending},
	}
	reviews := reviewService.NewService(stored, appointments, logger.NewNop())
	env.svc.reviews = reviews

	id := env.startWithServices(t)
	for _, req := range []*models.EventRequest{
		chooseParlor(),
		{Event: "submit"},
		{Event: "start_payment", PaymentMethod: "online"},
		{Event: "payment_done", PaymentStatus: "paid", TransactionID: "pay_9"},
	} {
		_, err := env.svc.Dispatch(ctx, customer, id, req)
		require.NoError(t, err, req.Event)
	}

	flow, err := env.svc.Dispatch(ctx, customer, id, &models.EventRequest{
		Event:  "review_done",
		Review: &models.ReviewInput{Rating: 5, Comment: "great"},
	})
	require.NoError(t, err)
	assert.Equal(t, "thank_you", flow.State)
	assert.NotEmpty(t, flow.ReviewID)

	require.Len(t, stored.items, 1)
	assert.Equal(t, "appt-1", stored.items[0].AppointmentID)
	assert.Equal(t, "glow", stored.items[0].TenantID)
	assert.False(t, stored.items[0].IsApproved)

	// публичный список показывает только одобренные отзывы
	approved, err := reviews.ListApproved(ctx, "glow")
	require.NoError(t, err)
	assert.Empty(t, approved.Reviews)
}
