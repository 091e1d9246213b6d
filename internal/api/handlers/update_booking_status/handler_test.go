package update_booking_status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PickupService/internal/api/handlers"
	"github.com/m04kA/SMC-PickupService/internal/service/bookings"
	"github.com/m04kA/SMC-PickupService/internal/service/bookings/models"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

type MockLogger struct{}

func (m *MockLogger) Info(format string, v ...interface{})  {}
func (m *MockLogger) Warn(format string, v ...interface{})  {}
func (m *MockLogger) Error(format string, v ...interface{}) {}

func serve(h *Handler, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+id+"/status", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": id})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &MockBookingService{}
	h := NewHandler(svc, &MockLogger{})

	svc.On("UpdateStatus", mock.Anything, int64(5), &models.UpdateStatusRequest{Status: "scheduled"}).
		Return(&models.BookingResponse{ID: 5, BookingID: "REG-ABC123", Status: "scheduled"}, nil)

	rec := serve(h, "5", `{"status":"scheduled"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "scheduled", body.Status)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fmt.Errorf("%w: id=5", bookings.ErrBookingNotFound), http.StatusNotFound},
		{"invalid transition", fmt.Errorf("%w: booking REG-ABC123 from pending to in-progress", bookings.ErrInvalidTransition), http.StatusBadRequest},
		{"driver required", bookings.ErrDriverRequired, http.StatusBadRequest},
		{"invalid input", bookings.ErrInvalidInput, http.StatusBadRequest},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockBookingService{}
			h := NewHandler(svc, &MockLogger{})
			svc.On("UpdateStatus", mock.Anything, int64(5), mock.Anything).Return(nil, tt.err)

			rec := serve(h, "5", `{"status":"in-progress"}`)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_TransitionMessageNamesBothStatuses(t *testing.T) {
	svc := &MockBookingService{}
	h := NewHandler(svc, &MockLogger{})
	svc.On("UpdateStatus", mock.Anything, int64(5), mock.Anything).
		Return(nil, fmt.Errorf("%w: booking REG-ABC123 from pending to in-progress", bookings.ErrInvalidTransition))

	rec := serve(h, "5", `{"status":"in-progress"}`)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Message, "pending")
	assert.Contains(t, body.Message, "in-progress")
}

func TestHandle_BadRequests(t *testing.T) {
	svc := &MockBookingService{}
	h := NewHandler(svc, &MockLogger{})

	assert.Equal(t, http.StatusBadRequest, serve(h, "abc", `{"status":"scheduled"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "5", `{"status":`).Code)
	svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
