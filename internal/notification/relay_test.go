package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PickupService/internal/domain"
	"github.com/m04kA/SMC-PickupService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type sentEvent struct {
	room  string
	event Event
}

type recordingHub struct {
	mu   sync.Mutex
	sent []sentEvent
}

func (h *recordingHub) Broadcast(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sent = append(h.sent, sentEvent{event: event})
}

func (h *recordingHub) BroadcastToRoom(room string, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sent = append(h.sent, sentEvent{room: room, event: event})
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, key string, event Event) error {
	args := m.Called(ctx, key, event)
	return args.Error(0)
}

var fixedNow = time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)

func newTestRelay(hub Broadcaster, publisher EventPublisher) *Relay {
	r := NewRelay(hub, publisher, nopLogger{})
	r.now = func() time.Time { return fixedNow }
	return r
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:          10,
		BookingCode: "REG-AB12CD",
		Customer: domain.CustomerSnapshot{
			FirstName: "Ann",
			LastName:  "Lee",
			Address:   "1 Main St",
			City:      "Springfield",
		},
		ServiceType:    domain.ServiceRegular,
		Priority:       domain.PriorityMedium,
		EstimatedPrice: 45,
		Status:         domain.StatusPending,
		PaymentStatus:  domain.PaymentPending,
		UpdatedAt:      fixedNow,
	}
}

func TestRelay_NotifyNewBooking(t *testing.T) {
	hub := &recordingHub{}
	publisher := &MockPublisher{}
	publisher.On("Publish", mock.Anything, "REG-AB12CD", mock.MatchedBy(func(e Event) bool {
		return e.Type == EventNewBooking
	})).Return(nil).Once()

	relay := newTestRelay(hub, publisher)
	relay.NotifyNewBooking(testBooking())
	relay.Wait()

	require.Len(t, hub.sent, 1)
	assert.Equal(t, "", hub.sent[0].room)
	assert.Equal(t, EventNewBooking, hub.sent[0].event.Type)
	assert.Equal(t, fixedNow, hub.sent[0].event.OccurredAt)

	payload, ok := hub.sent[0].event.Payload.(BookingPayload)
	require.True(t, ok)
	assert.Equal(t, "REG-AB12CD", payload.BookingID)
	assert.Equal(t, "Ann Lee", payload.CustomerName)
	publisher.AssertExpectations(t)
}

func TestRelay_NotifyStatusChange_WithoutDriver(t *testing.T) {
	hub := &recordingHub{}
	relay := newTestRelay(hub, nil)

	relay.NotifyStatusChange(testBooking())

	require.Len(t, hub.sent, 1)
	assert.Equal(t, EventBookingStatusUpdate, hub.sent[0].event.Type)
}

func TestRelay_NotifyStatusChange_WithDriverRoom(t *testing.T) {
	hub := &recordingHub{}
	relay := newTestRelay(hub, nil)

	booking := testBooking()
	booking.Status = domain.StatusScheduled
	booking.DriverID = ptr.Ptr(int64(7))
	booking.DriverUser = &domain.UserSummary{ID: 7, DriverCode: ptr.Ptr("D0003")}

	relay.NotifyStatusChange(booking)

	require.Len(t, hub.sent, 2)
	assert.Equal(t, EventBookingStatusUpdate, hub.sent[0].event.Type)
	assert.Equal(t, "driver-D0003", hub.sent[1].room)
	assert.Equal(t, EventDriverBookingUpdate, hub.sent[1].event.Type)

	payload := hub.sent[1].event.Payload.(BookingPayload)
	assert.Equal(t, ptr.Ptr("D0003"), payload.DriverID)
	assert.Equal(t, ptr.Ptr(int64(7)), payload.DriverUserID)
}

func TestRelay_NotifyDriverStatusChange(t *testing.T) {
	hub := &recordingHub{}
	publisher := &MockPublisher{}
	publisher.On("Publish", mock.Anything, "D0001", mock.Anything).
		Return(errors.New("broker down")).Once()

	relay := newTestRelay(hub, publisher)
	relay.NotifyDriverStatusChange("D0001", domain.DriverBusy)
	relay.Wait()

	require.Len(t, hub.sent, 1)
	assert.Equal(t, RoomAdmin, hub.sent[0].room)
	assert.Equal(t, DriverStatusPayload{DriverID: "D0001", Status: "busy"}, hub.sent[0].event.Payload)
	publisher.AssertExpectations(t)
}

func TestValidRoom(t *testing.T) {
	assert.True(t, ValidRoom(RoomAdmin))
	assert.True(t, ValidRoom(DriverRoom("D0001")))
	assert.False(t, ValidRoom("driver-1"))
	assert.False(t, ValidRoom("drivers"))
	assert.False(t, ValidRoom(""))
}
