package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Status string `json:"status"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":"scheduled"}`))
	require.NoError(t, DecodeJSON(req, &v))
	assert.Equal(t, "scheduled", v.Status)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":"x","extra":1}`))
	assert.Error(t, DecodeJSON(req, &v))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.Error(t, DecodeJSON(req, &v))
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondNotFound(rec, "бронирование не найдено")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Code: 404, Message: "бронирование не найдено"}, body)
}

func TestPathInt64(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "42"})
	id, err := PathInt64(req, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"abc", "0", "-3", ""} {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": raw})
		_, err := PathInt64(req, "id")
		assert.Error(t, err, raw)
	}
}

func TestQueryParams(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?date=2025-04-18&driverId=7&status=", nil)

	date, err := QueryDate(req, "date")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 18, 0, 0, 0, 0, time.Local), *date)

	driverID, err := QueryInt64(req, "driverId")
	require.NoError(t, err)
	assert.Equal(t, int64(7), *driverID)

	assert.Nil(t, QueryString(req, "status"))

	_, err = QueryDate(httptest.NewRequest(http.MethodGet, "/?date=18.04.2025", nil), "date")
	assert.Error(t, err)
}
