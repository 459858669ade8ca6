package appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeAppointments struct {
	listReq *models.ListTenantAppointmentsRequest
	status  *models.ChangeStatusRequest
	err     error
}

func (f *fakeAppointments) Get(context.Context, domain.Actor, string) (*models.AppointmentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: "a1"}, nil
}

func (f *fakeAppointments) ListMine(context.Context, domain.Actor, *string) (*models.AppointmentListResponse, error) {
	return &models.AppointmentListResponse{}, f.err
}

func (f *fakeAppointments) ListForTenant(_ context.Context, _ domain.Actor, _ string, req *models.ListTenantAppointmentsRequest) (*models.AppointmentListResponse, error) {
	f.listReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentListResponse{Appointments: []*models.AppointmentResponse{}, Total: 0}, nil
}

func (f *fakeAppointments) Stats(context.Context, domain.Actor, string, *models.ListTenantAppointmentsRequest) (*models.StatsResponse, error) {
	return &models.StatsResponse{}, f.err
}

func (f *fakeAppointments) Export(context.Context, domain.Actor, string, *models.ListTenantAppointmentsRequest) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("PK"), nil
}

func (f *fakeAppointments) ChangeStatus(_ context.Context, _ domain.Actor, id string, req *models.ChangeStatusRequest) (*models.AppointmentResponse, error) {
	f.status = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, Status: req.Status}, nil
}

func (f *fakeAppointments) RecordPayment(context.Context, domain.Actor, string, *models.RecordPaymentRequest) (*models.AppointmentResponse, error) {
	return &models.AppointmentResponse{}, f.err
}

func newRouter(svc AppointmentService) *mux.Router {
	h := NewHandler(svc, logger.NewNop())
	h.now = func() time.Time { return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC) }

	r := mux.NewRouter()
	r.HandleFunc("/tenants/{tenantId}/appointments", h.ListForTenant).Methods(http.MethodGet)
	r.HandleFunc("/tenants/{tenantId}/appointments/export", h.Export).Methods(http.MethodGet)
	r.HandleFunc("/appointments/{appointmentId}/status", h.ChangeStatus).Methods(http.MethodPatch)
	return r
}

func asOwner(req *http.Request) *http.Request {
	tenantID := "t1"
	actor := domain.Actor{UserID: "o1", Role: domain.RoleOwner, TenantID: &tenantID}
	return req.WithContext(middleware.WithActor(req.Context(), actor))
}

func TestListForTenant_Filters(t *testing.T) {
	svc := &fakeAppointments{}
	rec := httptest.NewRecorder()
	req := asOwner(httptest.NewRequest(http.MethodGet, "/tenants/t1/appointments?status=pending&from=2025-03-01&to=2025-03-31", nil))
	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.listReq.Status)
	assert.Equal(t, "pending", *svc.listReq.Status)
	require.NotNil(t, svc.listReq.StartDate)
	assert.Equal(t, "2025-03-01", svc.listReq.StartDate.Format(domain.DateFormat))
	assert.Nil(t, svc.listReq.CustomerID)

	rec = httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, asOwner(httptest.NewRequest(http.MethodGet, "/tenants/t1/appointments?from=yesterday", nil)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&fakeAppointments{}).ServeHTTP(rec, asOwner(httptest.NewRequest(http.MethodGet, "/tenants/t1/appointments/export", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "appointments-t1-2025-03-10.xlsx")
	assert.Equal(t, "PK", rec.Body.String())
}

func TestChangeStatus(t *testing.T) {
	svc := &fakeAppointments{}
	rec := httptest.NewRecorder()
	req := asOwner(httptest.NewRequest(http.MethodPatch, "/appointments/a1/status", strings.NewReader(`{"status":"confirmed"}`)))
	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "confirmed", svc.status.Status)
}

func TestChangeStatus_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{appointmentService.ErrInvalidTransition, http.StatusConflict},
		{appointmentService.ErrStatusConflict, http.StatusConflict},
		{appointmentService.ErrAppointmentNotFound, http.StatusNotFound},
		{appointmentService.ErrAccessDenied, http.StatusForbidden},
		{appointmentService.ErrInvalidInput, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := asOwner(httptest.NewRequest(http.MethodPatch, "/appointments/a1/status", strings.NewReader(`{"status":"completed"}`)))
			newRouter(&fakeAppointments{err: tt.err}).ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
