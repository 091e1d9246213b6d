package notification

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T, rooms []string) (*Hub, string) {
	t.Helper()

	hub := NewHub(nopLogger{})
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.ServeWS(conn, rooms)
	}))
	t.Cleanup(server.Close)

	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readJSON(t *testing.T, conn *websocket.Conn, v interface{}) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastReachesEveryone(t *testing.T) {
	hub, url := startHub(t, nil)
	first := dial(t, url)
	second := dial(t, url)
	waitForClients(t, hub, 2)

	hub.Broadcast(newEvent(EventNewBooking, "", map[string]string{"bookingId": "REG-ABCDEF"}, fixedNow))

	for _, conn := range []*websocket.Conn{first, second} {
		var got Event
		readJSON(t, conn, &got)
		assert.Equal(t, EventNewBooking, got.Type)
	}
}

func TestHub_RoomSubscription(t *testing.T) {
	hub, url := startHub(t, nil)
	admin := dial(t, url)
	other := dial(t, url)
	waitForClients(t, hub, 2)

	require.NoError(t, admin.WriteJSON(clientCommand{Type: commandSubscribe, Room: RoomAdmin}))
	var ack commandReply
	readJSON(t, admin, &ack)
	assert.Equal(t, commandReply{Type: replySubscribed, Room: RoomAdmin}, ack)

	hub.BroadcastToRoom(RoomAdmin, newEvent(EventDriverStatusUpdate, RoomAdmin,
		DriverStatusPayload{DriverID: "D0001", Status: "busy"}, fixedNow))
	hub.Broadcast(newEvent(EventNewBooking, "", nil, fixedNow))

	var got Event
	readJSON(t, admin, &got)
	assert.Equal(t, EventDriverStatusUpdate, got.Type)
	assert.Equal(t, RoomAdmin, got.Room)

	// the non-subscribed client sees only the broadcast
	readJSON(t, other, &got)
	assert.Equal(t, EventNewBooking, got.Type)
}

func TestHub_InitialRoomsAndDisconnect(t *testing.T) {
	hub, url := startHub(t, []string{DriverRoom("D0007")})
	conn := dial(t, url)
	waitForClients(t, hub, 1)

	hub.BroadcastToRoom(DriverRoom("D0007"), newEvent(EventDriverBookingUpdate, DriverRoom("D0007"), nil, fixedNow))

	var got Event
	readJSON(t, conn, &got)
	assert.Equal(t, EventDriverBookingUpdate, got.Type)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 0)
}

func TestHub_SubscribeRejectsUnknownRoom(t *testing.T) {
	hub, url := startHub(t, nil)
	conn := dial(t, url)
	waitForClients(t, hub, 1)

	require.NoError(t, conn.WriteJSON(clientCommand{Type: commandSubscribe, Room: "driver-not-a-code"}))
	var reply commandReply
	readJSON(t, conn, &reply)
	assert.Equal(t, commandReply{Type: replyError, Room: "driver-not-a-code", Error: errInvalidRoom}, reply)

	hub.BroadcastToRoom("driver-not-a-code", newEvent(EventDriverBookingUpdate, "driver-not-a-code", nil, fixedNow))
	hub.Broadcast(newEvent(EventNewBooking, "", nil, fixedNow))

	var got Event
	readJSON(t, conn, &got)
	assert.Equal(t, EventNewBooking, got.Type)
}

func TestHub_SubscribeRoomLimit(t *testing.T) {
	hub, url := startHub(t, nil)
	conn := dial(t, url)
	waitForClients(t, hub, 1)

	var reply commandReply
	for i := 1; i <= MaxRoomsPerClient; i++ {
		room := DriverRoom(fmt.Sprintf("D%04d", i))
		require.NoError(t, conn.WriteJSON(clientCommand{Type: commandSubscribe, Room: room}))
		readJSON(t, conn, &reply)
		require.Equal(t, replySubscribed, reply.Type)
	}

	// re-subscribing to a held room does not count against the limit
	require.NoError(t, conn.WriteJSON(clientCommand{Type: commandSubscribe, Room: DriverRoom("D0001")}))
	readJSON(t, conn, &reply)
	assert.Equal(t, replySubscribed, reply.Type)

	require.NoError(t, conn.WriteJSON(clientCommand{Type: commandSubscribe, Room: RoomAdmin}))
	readJSON(t, conn, &reply)
	assert.Equal(t, commandReply{Type: replyError, Room: RoomAdmin, Error: errTooManyRooms}, reply)
}
