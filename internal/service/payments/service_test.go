package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PickupService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PickupService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-PickupService/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-PickupService/internal/service/payments/models"
	"github.com/m04kA/SMC-PickupService/pkg/ptr"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByPaymentReference(ctx context.Context, reference string) (*domain.Booking, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, id int64, patch domain.BookingPatch) error {
	return m.Called(ctx, id, patch).Error(0)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateCharge(ctx context.Context, req paymentgateway.ChargeRequest, key uuid.UUID) (*paymentgateway.Charge, error) {
	args := m.Called(ctx, req, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentgateway.Charge), args.Error(1)
}

func (m *MockGateway) GetCharge(ctx context.Context, chargeID string) (*paymentgateway.Charge, error) {
	args := m.Called(ctx, chargeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentgateway.Charge), args.Error(1)
}

func (m *MockGateway) Refund(ctx context.Context, chargeID string, amount *int64) (*paymentgateway.Refund, error) {
	args := m.Called(ctx, chargeID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentgateway.Refund), args.Error(1)
}

type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordPayment(operation, result string) {
	m.Called(operation, result)
}

type MockLogger struct{}

func (m *MockLogger) Info(format string, v ...interface{})  {}
func (m *MockLogger) Warn(format string, v ...interface{})  {}
func (m *MockLogger) Error(format string, v ...interface{}) {}

var idempotencyKey = uuid.MustParse("5f0c8a3e-2b1d-4c7a-9e4f-1a2b3c4d5e6f")

type fixture struct {
	bookings *MockBookingRepository
	gateway  *MockGateway
	cache    *MockStatsCache
	metrics  *MockMetrics
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &MockBookingRepository{},
		gateway:  &MockGateway{},
		cache:    &MockStatsCache{},
		metrics:  &MockMetrics{},
	}
	f.svc = NewService(f.bookings, f.gateway, f.cache, f.metrics, "usd", &MockLogger{})
	f.svc.newKey = func() uuid.UUID { return idempotencyKey }
	return f
}

func unpaidBooking() *domain.Booking {
	return &domain.Booking{
		ID:             7,
		BookingCode:    "EMG-7K2P9Q",
		ServiceType:    domain.ServiceEmergency,
		EstimatedPrice: 64.99,
		Status:         domain.StatusScheduled,
		PaymentStatus:  domain.PaymentPending,
	}
}

func TestCreatePayment_ImmediateSuccess(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.bookings.On("GetByID", ctx, int64(7)).Return(unpaidBooking(), nil)
	f.gateway.On("CreateCharge", ctx, mock.MatchedBy(func(req paymentgateway.ChargeRequest) bool {
		return req.Amount == 6499 && req.Currency == "usd" && req.Reference == "EMG-7K2P9Q"
	}), idempotencyKey).Return(&paymentgateway.Charge{
		ID: "ch_1", Status: paymentgateway.StatusSucceeded, Amount: 6499, Currency: "usd",
	}, nil)
	f.bookings.On("Update", ctx, int64(7), domain.BookingPatch{
		PaymentReference: ptr.Ptr("ch_1"),
		PaymentMethod:    ptr.Ptr("card"),
		PaymentStatus:    ptr.Ptr(domain.PaymentPaid),
	}).Return(nil).Once()
	f.metrics.On("RecordPayment", "charge", "succeeded").Once()

	resp, err := f.svc.CreatePayment(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "ch_1", resp.PaymentReference)
	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.Equal(t, 64.99, resp.Amount)
	f.bookings.AssertExpectations(t)
	f.metrics.AssertExpectations(t)
}

func TestCreatePayment_PendingKeepsReferenceOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.bookings.On("GetByID", ctx, int64(7)).Return(unpaidBooking(), nil)
	f.gateway.On("CreateCharge", ctx, mock.Anything, idempotencyKey).Return(&paymentgateway.Charge{
		ID: "ch_2", Status: paymentgateway.StatusRequiresConfirmation, Amount: 6499, Currency: "usd",
	}, nil)
	f.bookings.On("Update", ctx, int64(7), domain.BookingPatch{
		PaymentReference: ptr.Ptr("ch_2"),
		PaymentMethod:    ptr.Ptr("card"),
	}).Return(nil).Once()
	f.metrics.On("RecordPayment", "charge", "pending").Once()

	resp, err := f.svc.CreatePayment(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.PaymentStatus)
	assert.Equal(t, paymentgateway.StatusRequiresConfirmation, resp.Status)
	f.bookings.AssertExpectations(t)
}

func TestCreatePayment_Declined(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.bookings.On("GetByID", ctx, int64(7)).Return(unpaidBooking(), nil)
	f.gateway.On("CreateCharge", ctx, mock.Anything, idempotencyKey).
		Return(nil, paymentgateway.ErrPaymentDeclined)
	f.bookings.On("Update", ctx, int64(7), domain.BookingPatch{
		PaymentStatus: ptr.Ptr(domain.PaymentFailed),
	}).Return(nil).Once()
	f.metrics.On("RecordPayment", "charge", "declined").Once()

	_, err := f.svc.CreatePayment(ctx, 7)
	assert.ErrorIs(t, err, ErrPaymentDeclined)
	f.bookings.AssertExpectations(t)
}

func TestCreatePayment_Rejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	paid := unpaidBooking()
	paid.PaymentStatus = domain.PaymentPaid
	f.bookings.On("GetByID", ctx, int64(7)).Return(paid, nil)
	f.bookings.On("GetByID", ctx, int64(8)).Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := f.svc.CreatePayment(ctx, 7)
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	_, err = f.svc.CreatePayment(ctx, 8)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	f.gateway.AssertNotCalled(t, "CreateCharge", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPayment_Succeeded(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	booking := unpaidBooking()
	booking.PaymentReference = ptr.Ptr("ch_2")
	f.bookings.On("GetByPaymentReference", ctx, "ch_2").Return(booking, nil)
	f.gateway.On("GetCharge", ctx, "ch_2").Return(&paymentgateway.Charge{
		ID: "ch_2", Status: paymentgateway.StatusSucceeded, Amount: 7000, Currency: "usd",
	}, nil)
	f.bookings.On("Update", ctx, int64(7), domain.BookingPatch{
		PaymentStatus: ptr.Ptr(domain.PaymentPaid),
		ActualPrice:   ptr.Ptr(70.0),
	}).Return(nil).Once()
	f.metrics.On("RecordPayment", "confirm", "succeeded").Once()
	f.cache.On("Invalidate", ctx).Return(nil).Once()

	resp, err := f.svc.ConfirmPayment(ctx, "ch_2")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.Equal(t, ptr.Ptr(70.0), resp.ActualPrice)
	f.bookings.AssertExpectations(t)
	f.cache.AssertExpectations(t)
}

func TestConfirmPayment_NotYetSucceeded(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	booking := unpaidBooking()
	booking.PaymentReference = ptr.Ptr("ch_3")
	f.bookings.On("GetByPaymentReference", ctx, "ch_3").Return(booking, nil)
	f.gateway.On("GetCharge", ctx, "ch_3").Return(&paymentgateway.Charge{
		ID: "ch_3", Status: paymentgateway.StatusProcessing,
	}, nil)
	f.metrics.On("RecordPayment", "confirm", "pending").Once()

	resp, err := f.svc.ConfirmPayment(ctx, "ch_3")
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "pending", resp.PaymentStatus)
	f.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPayment_UnknownReference(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.bookings.On("GetByPaymentReference", ctx, "ch_x").Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := f.svc.ConfirmPayment(ctx, "ch_x")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestRefundPayment_Partial(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	booking := unpaidBooking()
	booking.PaymentReference = ptr.Ptr("ch_1")
	booking.PaymentStatus = domain.PaymentPaid
	f.bookings.On("GetByID", ctx, int64(7)).Return(booking, nil)
	f.gateway.On("Refund", ctx, "ch_1", ptr.Ptr(int64(2050))).Return(&paymentgateway.Refund{
		ID: "re_1", ChargeID: "ch_1", Status: "succeeded", Amount: 2050,
	}, nil)
	f.bookings.On("Update", ctx, int64(7), domain.BookingPatch{
		PaymentStatus: ptr.Ptr(domain.PaymentRefunded),
	}).Return(nil).Once()
	f.metrics.On("RecordPayment", "refund", "succeeded").Once()
	f.cache.On("Invalidate", ctx).Return(errors.New("redis down"))

	resp, err := f.svc.RefundPayment(ctx, 7, &models.RefundRequest{Amount: ptr.Ptr(20.50)})
	require.NoError(t, err)
	assert.Equal(t, "re_1", resp.RefundID)
	assert.Equal(t, "refunded", resp.PaymentStatus)
	assert.Equal(t, 20.5, resp.Amount)
	f.bookings.AssertExpectations(t)
}

func TestRefundPayment_WithoutChargeOrBadAmount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.bookings.On("GetByID", ctx, int64(7)).Return(unpaidBooking(), nil)

	_, err := f.svc.RefundPayment(ctx, 7, &models.RefundRequest{})
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	_, err = f.svc.RefundPayment(ctx, 7, &models.RefundRequest{Amount: ptr.Ptr(-5.0)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	f.gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetPaymentStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	charged := unpaidBooking()
	charged.ID = 9
	charged.PaymentReference = ptr.Ptr("ch_9")
	f.bookings.On("GetByID", ctx, int64(7)).Return(unpaidBooking(), nil)
	f.bookings.On("GetByID", ctx, int64(9)).Return(charged, nil)
	f.gateway.On("GetCharge", ctx, "ch_9").Return(&paymentgateway.Charge{
		ID: "ch_9", Status: paymentgateway.StatusSucceeded, Amount: 4500, Currency: "usd", Created: 1745160000,
	}, nil)

	none, err := f.svc.GetPaymentStatus(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "pending", none.Status)
	assert.NotEmpty(t, none.Message)
	assert.Nil(t, none.Amount)

	status, err := f.svc.GetPaymentStatus(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "succeeded", status.Status)
	assert.Equal(t, ptr.Ptr(45.0), status.Amount)
	assert.Equal(t, time.Unix(1745160000, 0).UTC(), *status.Created)
}
