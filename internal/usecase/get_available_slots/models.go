package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	TenantID   string
	Date       time.Time // дата без времени
	ServiceIDs []string  // если указаны, длительность слота = сумма длительностей услуг
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time
	TenantID        string
	IsOpen          bool // false для нерабочего дня
	DurationMinutes int
	Slots           []domain.AvailableSlot
}
