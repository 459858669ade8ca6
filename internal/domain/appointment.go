package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// AppointmentStatus статус записи
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ActiveStatuses статусы, занимающие слот в расписании
var ActiveStatuses = []AppointmentStatus{StatusPending, StatusConfirmed}

// appointmentTransitions допустимые переходы статусов
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted},
}

// CanTransition проверяет переход статуса записи по таблице
func (s AppointmentStatus) CanTransition(to AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal completed и cancelled переходов не имеют
func (s AppointmentStatus) IsTerminal() bool {
	return len(appointmentTransitions[s]) == 0
}

// IsValidAppointmentStatus проверяет статус
func IsValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Location место оказания услуги
type Location string

const (
	LocationParlor Location = "parlor"
	LocationHome   Location = "home"
)

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodOnline PaymentMethod = "online"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// ServiceSnapshot копия услуги на момент записи
// Последующие изменения каталога на запись не влияют
type ServiceSnapshot struct {
	ServiceID       string   `json:"serviceId"`
	Name            string   `json:"name"`
	Price           int64    `json:"price"`
	DurationMinutes int      `json:"durationMinutes"`
	Category        Category `json:"category"`
}

// NewServiceSnapshot снимает копию услуги
func NewServiceSnapshot(s *Service) ServiceSnapshot {
	return ServiceSnapshot{
		ServiceID:       s.ID,
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		Category:        s.Category,
	}
}

// ServiceSnapshots хранится в JSONB колонке
type ServiceSnapshots []ServiceSnapshot

func (s ServiceSnapshots) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

func (s *ServiceSnapshots) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		*s = ServiceSnapshots{}
		return nil
	default:
		return errors.New("domain: unsupported type for service snapshots")
	}
	return json.Unmarshal(data, s)
}

// Appointment запись клиента к тенанту
type Appointment struct {
	ID                 string
	TenantID           string
	CustomerID         string
	Services           ServiceSnapshots
	Date               time.Time
	StartTime          types.TimeString
	DurationMinutes    int
	TotalPrice         int64
	HomeServiceCharge  int64
	Status             AppointmentStatus
	Location           Location
	Address            *string
	Phone              *string
	Notes              *string
	PaymentMethod      *PaymentMethod
	PaymentStatus      *PaymentStatus
	TransactionID      *string
	CancellationReason *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// EndTime время окончания записи
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// Overlaps пересекается ли запись с интервалом [start, start+duration)
func (a *Appointment) Overlaps(start types.TimeString, durationMinutes int) bool {
	aStart := a.StartTime.Minutes()
	aEnd := aStart + a.DurationMinutes
	bStart := start.Minutes()
	bEnd := bStart + durationMinutes
	return aStart < bEnd && bStart < aEnd
}

// ComputeTotal сумма цен снапшотов плюс надбавка за выезд (только для home)
func ComputeTotal(services []ServiceSnapshot, location Location, homeCharge int64) (total int64, charge int64) {
	for _, s := range services {
		total += s.Price
	}
	if location == LocationHome {
		charge = homeCharge
		total += charge
	}
	return total, charge
}

// TotalDuration суммарная длительность услуг
func TotalDuration(services []ServiceSnapshot) int {
	total := 0
	for _, s := range services {
		total += s.DurationMinutes
	}
	return total
}

// AppointmentFilter фильтр записей тенанта
type AppointmentFilter struct {
	TenantID   string
	Status     *AppointmentStatus
	CustomerID *string
	StartDate  *time.Time
	EndDate    *time.Time
}

// AppointmentStats сводка для дашборда
type AppointmentStats struct {
	Total          int
	ByStatus       map[AppointmentStatus]int
	Revenue        int64 // сумма completed
	PendingRevenue int64 // сумма pending + confirmed
}

// NewAppointmentStats считает сводку по списку записей
func NewAppointmentStats(appointments []*Appointment) AppointmentStats {
	stats := AppointmentStats{ByStatus: map[AppointmentStatus]int{
		StatusPending:   0,
		StatusConfirmed: 0,
		StatusCompleted: 0,
		StatusCancelled: 0,
	}}
	for _, a := range appointments {
		stats.Total++
		stats.ByStatus[a.Status]++
		switch a.Status {
		case StatusCompleted:
			stats.Revenue += a.TotalPrice
		case StatusPending, StatusConfirmed:
			stats.PendingRevenue += a.TotalPrice
		}
	}
	return stats
}

// CountOverlapping число активных записей, пересекающих интервал [start, start+duration)
// Записи, граничащие с интервалом, не считаются
func CountOverlapping(appointments []*Appointment, start types.TimeString, durationMinutes int) int {
	count := 0
	for _, a := range appointments {
		if a.Status != StatusPending && a.Status != StatusConfirmed {
			continue
		}
		if a.Overlaps(start, durationMinutes) {
			count++
		}
	}
	return count
}
