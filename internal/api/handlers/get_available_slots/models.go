package get_available_slots

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	TenantID        string          `json:"tenantId"`
	IsOpen          bool            `json:"isOpen"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	AvailableSpots  int    `json:"availableSpots"`
	TotalSpots      int    `json:"totalSpots"`
	IsFull          bool   `json:"isFull"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			AvailableSpots:  slot.AvailableSpots,
			TotalSpots:      slot.TotalSpots,
			IsFull:          slot.IsFull(),
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		TenantID:        resp.TenantID,
		IsOpen:          resp.IsOpen,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
// serviceIds передаются через запятую
func ToUseCaseRequest(tenantID, dateStr, serviceIDs string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, id := range strings.Split(serviceIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	return &getAvailableSlots.Request{
		TenantID:   tenantID,
		Date:       date,
		ServiceIDs: ids,
	}, nil
}
