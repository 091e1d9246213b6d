package create_driver

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_driver: invalid input data")

	// ErrDuplicateIdentity возвращается, когда пользователь с таким email уже существует
	ErrDuplicateIdentity = errors.New("create_driver: user with this email already exists")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_driver: internal error")
)
