package notification

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-PickupService/internal/domain"
)

const defaultPublishTimeout = 5 * time.Second

// Relay рассылает события бронирований и водителей.
// Все методы fire-and-forget: ошибки доставки только логируются.
type Relay struct {
	hub            Broadcaster
	publisher      EventPublisher
	logger         Logger
	now            func() time.Time
	publishTimeout time.Duration
	wg             sync.WaitGroup
}

// NewRelay создает рассыльщик. publisher может быть nil, тогда поток событий не используется.
func NewRelay(hub Broadcaster, publisher EventPublisher, logger Logger) *Relay {
	return &Relay{
		hub:            hub,
		publisher:      publisher,
		logger:         logger,
		now:            time.Now,
		publishTimeout: defaultPublishTimeout,
	}
}

// NotifyNewBooking рассылает new-booking всем клиентам
func (r *Relay) NotifyNewBooking(booking *domain.Booking) {
	event := newEvent(EventNewBooking, "", bookingPayload(booking), r.now())
	r.hub.Broadcast(event)
	r.publish(booking.BookingCode, event)
}

// NotifyStatusChange рассылает booking-status-update всем клиентам
// и driver-booking-update в комнату назначенного водителя
func (r *Relay) NotifyStatusChange(booking *domain.Booking) {
	payload := bookingPayload(booking)
	now := r.now()

	event := newEvent(EventBookingStatusUpdate, "", payload, now)
	r.hub.Broadcast(event)
	r.publish(booking.BookingCode, event)

	if room, ok := driverRoomOf(booking); ok {
		r.hub.BroadcastToRoom(room, newEvent(EventDriverBookingUpdate, room, payload, now))
	}
}

// NotifyDriverStatusChange отправляет driver-status-update в комнату администраторов
func (r *Relay) NotifyDriverStatusChange(driverCode string, status domain.DriverStatus) {
	event := newEvent(EventDriverStatusUpdate, RoomAdmin, DriverStatusPayload{
		DriverID: driverCode,
		Status:   string(status),
	}, r.now())
	r.hub.BroadcastToRoom(RoomAdmin, event)
	r.publish(driverCode, event)
}

// Wait дожидается завершения начатых публикаций
func (r *Relay) Wait() {
	r.wg.Wait()
}

func (r *Relay) publish(key string, event Event) {
	if r.publisher == nil {
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.publishTimeout)
		defer cancel()

		if err := r.publisher.Publish(ctx, key, event); err != nil {
			r.logger.Error("Relay.publish: failed to publish event type=%s key=%s: %v", event.Type, key, err)
		}
	}()
}
