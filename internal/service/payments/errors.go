package payments

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrPaymentNotFound возвращается, когда у бронирования нет платежа или провайдер его не знает
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrAlreadyPaid возвращается при повторной оплате оплаченного бронирования
	ErrAlreadyPaid = errors.New("booking already paid")

	// ErrPaymentDeclined возвращается, когда провайдер отклонил операцию
	ErrPaymentDeclined = errors.New("payment declined")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
