package refund_payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-PickupService/internal/service/payments"
	"github.com/m04kA/SMC-PickupService/internal/service/payments/models"
)

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) RefundPayment(ctx context.Context, bookingID int64, req *models.RefundRequest) (*models.RefundResponse, error) {
	args := m.Called(ctx, bookingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefundResponse), args.Error(1)
}

type MockLogger struct{}

func (m *MockLogger) Info(format string, v ...interface{})  {}
func (m *MockLogger) Warn(format string, v ...interface{})  {}
func (m *MockLogger) Error(format string, v ...interface{}) {}

func post(h *Handler, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/"+id+"/refund", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": id})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_FullRefundWithoutBody(t *testing.T) {
	svc := &MockPaymentService{}
	h := NewHandler(svc, &MockLogger{})
	svc.On("RefundPayment", mock.Anything, int64(7), &models.RefundRequest{}).
		Return(&models.RefundResponse{BookingID: 7, RefundID: "re_1", PaymentStatus: "refunded"}, nil)

	rec := post(h, "7", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"refundId":"re_1"`)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{payments.ErrBookingNotFound, http.StatusNotFound},
		{payments.ErrPaymentNotFound, http.StatusNotFound},
		{payments.ErrInvalidInput, http.StatusBadRequest},
		{payments.ErrPaymentDeclined, http.StatusPaymentRequired},
		{payments.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		svc := &MockPaymentService{}
		h := NewHandler(svc, &MockLogger{})
		svc.On("RefundPayment", mock.Anything, int64(7), mock.Anything).Return(nil, tt.err)

		assert.Equal(t, tt.status, post(h, "7", `{"amount":10}`).Code, tt.err.Error())
	}
}
