package bookingflow

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	flowService "github.com/m04kA/SMC-SalonService/internal/service/bookingflow"
	"github.com/m04kA/SMC-SalonService/internal/service/bookingflow/models"
	reviewService "github.com/m04kA/SMC-SalonService/internal/service/reviews"
	createAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeFlows struct {
	event    string
	tenantID string
	err      error
}

func (f *fakeFlows) Start(_ context.Context, _ domain.Actor, tenantID string) (*models.FlowResponse, error) {
	f.tenantID = tenantID
	return &models.FlowResponse{ID: "f1", TenantID: tenantID, State: "selecting_services"}, f.err
}

func (f *fakeFlows) Get(context.Context, domain.Actor, string) (*models.FlowResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.FlowResponse{ID: "f1"}, nil
}

func (f *fakeFlows) SelectServices(context.Context, domain.Actor, string, *models.SelectServicesRequest) (*models.FlowResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.FlowResponse{ID: "f1"}, nil
}

func (f *fakeFlows) Dispatch(_ context.Context, _ domain.Actor, _ string, req *models.EventRequest) (*models.FlowResponse, error) {
	f.event = req.Event
	if f.err != nil {
		return nil, f.err
	}
	return &models.FlowResponse{ID: "f1", State: "submitted"}, nil
}

func (f *fakeFlows) Abandon(context.Context, domain.Actor, string) error { return f.err }

func newRouter(svc FlowService) *mux.Router {
	h := NewHandler(svc, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/tenants/{tenantId}/flows", h.Start).Methods(http.MethodPost)
	r.HandleFunc("/flows/{flowId}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/flows/{flowId}/events", h.Dispatch).Methods(http.MethodPost)
	r.HandleFunc("/flows/{flowId}", h.Abandon).Methods(http.MethodDelete)
	return r
}

func asCustomer(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: "c1", Role: domain.RoleCustomer}))
}

func TestStartAndDispatch(t *testing.T) {
	svc := &fakeFlows{}
	r := newRouter(svc)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, asCustomer(httptest.NewRequest(http.MethodPost, "/tenants/t1/flows", nil)))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "t1", svc.tenantID)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, asCustomer(httptest.NewRequest(http.MethodPost, "/flows/f1/events", strings.NewReader(`{"event":"submit"}`))))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "submit", svc.event)
	assert.Contains(t, rec.Body.String(), `"state":"submitted"`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, asCustomer(httptest.NewRequest(http.MethodDelete, "/flows/f1", nil)))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDispatch_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"flow missing", flowService.ErrFlowNotFound, http.StatusNotFound},
		{"bad transition", flowService.ErrInvalidTransition, http.StatusConflict},
		{"guard", flowService.ErrInvalidInput, http.StatusBadRequest},
		{"slot taken", createAppointment.ErrSlotNotAvailable, http.StatusConflict},
		{"closed", createAppointment.ErrBusinessClosed, http.StatusBadRequest},
		{"payment", appointmentService.ErrPaymentNotAllowed, http.StatusBadRequest},
		{"review twice", reviewService.ErrReviewExists, http.StatusConflict},
		{"review early", reviewService.ErrAppointmentNotCompleted, http.StatusBadRequest},
		{"review cancelled", reviewService.ErrAppointmentCancelled, http.StatusBadRequest},
		{"internal", flowService.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := asCustomer(httptest.NewRequest(http.MethodPost, "/flows/f1/events", strings.NewReader(`{"event":"submit"}`)))
			newRouter(&fakeFlows{err: tt.err}).ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestGet_Unauthenticated(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&fakeFlows{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/flows/f1", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
