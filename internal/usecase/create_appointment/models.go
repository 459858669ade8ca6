package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	TenantID     string
	CustomerID   string
	CustomerName string
	ServiceIDs   []string         // минимум одна услуга
	Date         time.Time        // дата записи (без времени)
	StartTime    types.TimeString // время начала, "HH:MM"
	Location     domain.Location
	Address      *string // обязателен для home
	Phone        *string
	Notes        *string
}

// Response созданная запись и предупреждение, если владелец не получил уведомление
type Response struct {
	Appointment *domain.Appointment
	Warning     string
}
