package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PickupService/internal/domain"
)

// PathInt64 читает положительный числовой параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	value, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return value, nil
}

// QueryString возвращает параметр запроса или nil, если он пустой
func QueryString(r *http.Request, name string) *string {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil
	}
	return &value
}

// QueryInt64 читает необязательный числовой параметр запроса
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := QueryString(r, name)
	if raw == nil {
		return nil, nil
	}
	value, err := strconv.ParseInt(*raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &value, nil
}

// QueryDate читает необязательную дату YYYY-MM-DD в локальной зоне сервера
func QueryDate(r *http.Request, name string) (*time.Time, error) {
	raw := QueryString(r, name)
	if raw == nil {
		return nil, nil
	}
	return ParseDate(*raw)
}

// ParseDate разбирает дату YYYY-MM-DD в локальной зоне сервера
func ParseDate(value string) (*time.Time, error) {
	date, err := time.ParseInLocation(domain.DateFormat, value, time.Local)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
