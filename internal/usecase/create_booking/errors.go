package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDriver возвращается, когда при импорте указан не водитель
	ErrInvalidDriver = errors.New("create_booking: driver not found or user is not a driver")

	// ErrBookingCodeExhausted возвращается, когда все попытки сгенерировать уникальный код заняты
	ErrBookingCodeExhausted = errors.New("create_booking: could not allocate unique booking id")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
