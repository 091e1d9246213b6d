package paymentgateway

import "errors"

var (
	// ErrChargeNotFound провайдер не знает платеж с таким идентификатором
	ErrChargeNotFound = errors.New("payment gateway: charge not found")

	// ErrPaymentDeclined провайдер отклонил списание или возврат
	ErrPaymentDeclined = errors.New("payment gateway: payment declined")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payment gateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("payment gateway client: invalid response")
)
