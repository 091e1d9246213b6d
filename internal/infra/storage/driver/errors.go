package driver

import "errors"

var (
	// ErrDriverNotFound возвращается, когда профиль водителя не найден
	ErrDriverNotFound = errors.New("driver.repository: driver not found")

	// ErrDriverExists возвращается при повторном создании профиля (driver_code или user_id заняты)
	ErrDriverExists = errors.New("driver.repository: driver already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("driver.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("driver.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("driver.repository: failed to scan row")
)
