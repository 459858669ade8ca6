package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentModels "github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceIDs []string `json:"serviceIds"`
	Date       string   `json:"date"`      // "2025-10-15"
	StartTime  string   `json:"startTime"` // "10:00"
	Location   string   `json:"location"`  // parlor | home, по умолчанию parlor
	Address    *string  `json:"address,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

// CreateAppointmentResponse созданная запись и предупреждение о недоставленном уведомлении
type CreateAppointmentResponse struct {
	Appointment *appointmentModels.AppointmentResponse `json:"appointment"`
	Warning     string                                 `json:"warning,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(tenantID string, actor domain.Actor) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	location := domain.LocationParlor
	if r.Location != "" {
		location = domain.Location(r.Location)
	}

	phone := r.Phone
	if phone == nil {
		phone = actor.Phone
	}

	return &createAppointment.Request{
		TenantID:     tenantID,
		CustomerID:   actor.UserID,
		CustomerName: actor.Name,
		ServiceIDs:   r.ServiceIDs,
		Date:         date,
		StartTime:    startTime,
		Location:     location,
		Address:      r.Address,
		Phone:        phone,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		Appointment: appointmentModels.FromDomainAppointment(resp.Appointment),
		Warning:     resp.Warning,
	}
}
