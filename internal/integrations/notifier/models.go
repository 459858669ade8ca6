package notifier

// AppointmentNotification тело уведомления владельцу о новой записи
type AppointmentNotification struct {
	Event         string   `json:"event"`
	TenantID      string   `json:"tenantId"`
	AppointmentID string   `json:"appointmentId"`
	CustomerName  string   `json:"customerName"`
	CustomerPhone string   `json:"customerPhone,omitempty"`
	Services      []string `json:"services"`
	Date          string   `json:"date"`
	Time          string   `json:"time"`
	Location      string   `json:"location"`
	Address       string   `json:"address,omitempty"`
	TotalPrice    int64    `json:"totalPrice"`
}

const EventAppointmentCreated = "appointment.created"
