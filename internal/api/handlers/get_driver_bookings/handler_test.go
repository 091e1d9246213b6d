package get_driver_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-PickupService/internal/service/drivers"
	bookingModels "github.com/m04kA/SMC-PickupService/internal/service/bookings/models"
	"github.com/m04kA/SMC-PickupService/internal/service/drivers/models"
)

type MockDriverService struct {
	mock.Mock
}

func (m *MockDriverService) GetDriverBookings(ctx context.Context, req *models.DriverBookingsRequest) (*bookingModels.BookingListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingModels.BookingListResponse), args.Error(1)
}

type MockLogger struct{}

func (m *MockLogger) Info(format string, v ...interface{})  {}
func (m *MockLogger) Warn(format string, v ...interface{})  {}
func (m *MockLogger) Error(format string, v ...interface{}) {}

func get(h *Handler, driverID, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/drivers/"+driverID+"/bookings"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"driverId": driverID})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_PassesFilters(t *testing.T) {
	svc := &MockDriverService{}
	h := NewHandler(svc, &MockLogger{})

	svc.On("GetDriverBookings", mock.Anything, mock.MatchedBy(func(req *models.DriverBookingsRequest) bool {
		return req.DriverID == "D0001" &&
			req.Status != nil && *req.Status == "all" &&
			req.Date != nil && req.Date.Equal(time.Date(2025, 4, 18, 0, 0, 0, 0, time.Local))
	})).Return(&bookingModels.BookingListResponse{Bookings: []bookingModels.BookingResponse{}}, nil)

	rec := get(h, "D0001", "?status=all&date=2025-04-18")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"bookings":[]}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	svc := &MockDriverService{}
	h := NewHandler(svc, &MockLogger{})

	assert.Equal(t, http.StatusBadRequest, get(h, "42", "").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "D0001", "?date=yesterday").Code)

	svc.On("GetDriverBookings", mock.Anything, mock.MatchedBy(func(req *models.DriverBookingsRequest) bool {
		return req.DriverID == "D0404"
	})).Return(nil, drivers.ErrDriverNotFound)
	assert.Equal(t, http.StatusNotFound, get(h, "D0404", "").Code)

	svc.On("GetDriverBookings", mock.Anything, mock.MatchedBy(func(req *models.DriverBookingsRequest) bool {
		return req.DriverID == "D0001"
	})).Return(nil, drivers.ErrInvalidInput)
	assert.Equal(t, http.StatusBadRequest, get(h, "D0001", "?status=finished").Code)
}
