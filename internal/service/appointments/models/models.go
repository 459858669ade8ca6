package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ErrInvalidStatus возвращается при некорректном статусе
var ErrInvalidStatus = errors.New("invalid appointment status")

// ListTenantAppointmentsRequest фильтр записей тенанта
type ListTenantAppointmentsRequest struct {
	Status     *string
	CustomerID *string
	StartDate  *time.Time
	EndDate    *time.Time
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *ListTenantAppointmentsRequest) ToDomainFilter(tenantID string) (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		TenantID:   tenantID,
		CustomerID: r.CustomerID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
	}
	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	return filter, nil
}

// ChangeStatusRequest смена статуса записи
type ChangeStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=confirmed completed cancelled"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// RecordPaymentRequest результат шага оплаты
type RecordPaymentRequest struct {
	Method        string  `json:"method" validate:"required,oneof=cash online"`
	Status        string  `json:"status" validate:"required,oneof=pending paid failed refunded"`
	TransactionID *string `json:"transactionId,omitempty" validate:"omitempty,max=128"`
}

// ServiceSnapshotResponse услуга на момент записи
type ServiceSnapshotResponse struct {
	ServiceID       string `json:"serviceId"`
	Name            string `json:"name"`
	Price           int64  `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
	Category        string `json:"category"`
}

// AppointmentResponse запись
type AppointmentResponse struct {
	ID                 string                     `json:"id"`
	TenantID           string                     `json:"tenantId"`
	CustomerID         string                     `json:"customerId"`
	Services           []*ServiceSnapshotResponse `json:"services"`
	Date               string                     `json:"date"`
	StartTime          string                     `json:"startTime"`
	DurationMinutes    int                        `json:"durationMinutes"`
	TotalPrice         int64                      `json:"totalPrice"`
	HomeServiceCharge  int64                      `json:"homeServiceCharge"`
	Status             string                     `json:"status"`
	Location           string                     `json:"location"`
	Address            *string                    `json:"address,omitempty"`
	Phone              *string                    `json:"phone,omitempty"`
	Notes              *string                    `json:"notes,omitempty"`
	PaymentMethod      *string                    `json:"paymentMethod,omitempty"`
	PaymentStatus      *string                    `json:"paymentStatus,omitempty"`
	TransactionID      *string                    `json:"transactionId,omitempty"`
	CancellationReason *string                    `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time                  `json:"createdAt"`
	UpdatedAt          time.Time                  `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// StatsResponse сводка для дашборда
type StatsResponse struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"byStatus"`
	Revenue        int64          `json:"revenue"`
	PendingRevenue int64          `json:"pendingRevenue"`
}

// FromDomainAppointment конвертирует domain.Appointment в AppointmentResponse
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	services := make([]*ServiceSnapshotResponse, 0, len(a.Services))
	for _, s := range a.Services {
		services = append(services, &ServiceSnapshotResponse{
			ServiceID:       s.ServiceID,
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
			Category:        string(s.Category),
		})
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		TenantID:           a.TenantID,
		CustomerID:         a.CustomerID,
		Services:           services,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		DurationMinutes:    a.DurationMinutes,
		TotalPrice:         a.TotalPrice,
		HomeServiceCharge:  a.HomeServiceCharge,
		Status:             string(a.Status),
		Location:           string(a.Location),
		Address:            a.Address,
		Phone:              a.Phone,
		Notes:              a.Notes,
		TransactionID:      a.TransactionID,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
	if a.PaymentMethod != nil {
		method := string(*a.PaymentMethod)
		resp.PaymentMethod = &method
	}
	if a.PaymentStatus != nil {
		status := string(*a.PaymentStatus)
		resp.PaymentStatus = &status
	}
	return resp
}

// FromDomainAppointments конвертирует список записей
func FromDomainAppointments(appointments []*domain.Appointment) *AppointmentListResponse {
	result := make([]*AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		result = append(result, FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: result, Total: len(result)}
}

// FromDomainStats конвертирует сводку
func FromDomainStats(stats domain.AppointmentStats) *StatsResponse {
	byStatus := make(map[string]int, len(stats.ByStatus))
	for status, count := range stats.ByStatus {
		byStatus[string(status)] = count
	}
	return &StatsResponse{
		Total:          stats.Total,
		ByStatus:       byStatus,
		Revenue:        stats.Revenue,
		PendingRevenue: stats.PendingRevenue,
	}
}

// ToDomainStatus проверяет и конвертирует статус
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !domain.IsValidAppointmentStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
