package models

import (
	"time"
)

// Request модели

// RefundRequest сумма возврата; без суммы возвращается весь платеж
type RefundRequest struct {
	Amount *float64 `json:"amount,omitempty"`
}

// Response модели

// ChargeResponse результат создания платежа
type ChargeResponse struct {
	BookingID        int64   `json:"bookingId"`
	PaymentReference string  `json:"paymentReference"`
	Status           string  `json:"status"`
	PaymentStatus    string  `json:"paymentStatus"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
}

// ConfirmResponse результат подтверждения платежа
type ConfirmResponse struct {
	Success       bool     `json:"success"`
	BookingID     int64    `json:"bookingId"`
	Status        string   `json:"status"`
	PaymentStatus string   `json:"paymentStatus"`
	ActualPrice   *float64 `json:"actualPrice,omitempty"`
}

// RefundResponse результат возврата
type RefundResponse struct {
	BookingID     int64   `json:"bookingId"`
	RefundID      string  `json:"refundId"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	Amount        float64 `json:"amount"`
}

// StatusResponse состояние оплаты бронирования
type StatusResponse struct {
	BookingID        int64      `json:"bookingId"`
	Status           string     `json:"status"`
	PaymentReference *string    `json:"paymentReference,omitempty"`
	Amount           *float64   `json:"amount,omitempty"`
	Currency         string     `json:"currency,omitempty"`
	Created          *time.Time `json:"created,omitempty"`
	Message          string     `json:"message,omitempty"`
}
