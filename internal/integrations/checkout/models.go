package checkout

// OrderRequest тело запроса на создание заказа в шлюзе
type OrderRequest struct {
	Amount   int64             `json:"amount"` // минимальные единицы валюты
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// Order заказ шлюза
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// ErrorResponse модель ошибки шлюза
type ErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}
