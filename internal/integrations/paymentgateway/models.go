package paymentgateway

// Статусы платежа у провайдера
const (
	StatusRequiresConfirmation = "requires_confirmation"
	StatusProcessing           = "processing"
	StatusSucceeded            = "succeeded"
	StatusFailed               = "failed"
	StatusRefunded             = "refunded"
)

// ChargeRequest запрос на создание платежа. Сумма в минимальных единицах валюты.
type ChargeRequest struct {
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	Reference string            `json:"reference"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Charge платеж у провайдера
type Charge struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Reference string `json:"reference"`
	Created   int64  `json:"created"` // unix seconds
}

// Succeeded сообщает, что деньги списаны
func (c *Charge) Succeeded() bool {
	return c.Status == StatusSucceeded
}

type refundRequest struct {
	Amount *int64 `json:"amount,omitempty"`
}

// Refund возврат по платежу
type Refund struct {
	ID       string `json:"id"`
	ChargeID string `json:"charge"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
}

// ErrorResponse модель ошибки провайдера
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
