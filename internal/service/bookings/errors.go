package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrDriverRequired возвращается, когда статус требует назначенного водителя
	ErrDriverRequired = errors.New("status requires an assigned driver")

	// ErrInvalidAssignment возвращается, когда назначаемый пользователь не найден или не водитель
	ErrInvalidAssignment = errors.New("invalid driver assignment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
