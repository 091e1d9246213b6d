package subscribe_notifications

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PickupService/internal/notification"
)

type MockLogger struct{}

func (m *MockLogger) Info(format string, v ...interface{})  {}
func (m *MockLogger) Warn(format string, v ...interface{})  {}
func (m *MockLogger) Error(format string, v ...interface{}) {}

func wsURL(server *httptest.Server, query string) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws" + query
}

func TestHandle_JoinsRequestedRooms(t *testing.T) {
	hub := notification.NewHub(&MockLogger{})
	defer hub.Close()

	server := httptest.NewServer(http.HandlerFunc(NewHandler(hub, Config{}, &MockLogger{}).Handle))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, "?room=admin"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	relay := notification.NewRelay(hub, nil, &MockLogger{})
	relay.NotifyDriverStatusChange("D0003", "busy")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event notification.Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, notification.EventDriverStatusUpdate, event.Type)
}

func TestHandle_RejectsUnknownRoom(t *testing.T) {
	hub := notification.NewHub(&MockLogger{})
	defer hub.Close()

	rec := httptest.NewRecorder()
	NewHandler(hub, Config{}, &MockLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/ws?room=everyone", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, hub.ClientCount())
}

func TestHandle_RejectsTooManyRooms(t *testing.T) {
	hub := notification.NewHub(&MockLogger{})
	defer hub.Close()

	query := strings.Repeat("room=admin&", notification.MaxRoomsPerClient) + "room=driver-D0001"
	rec := httptest.NewRecorder()
	NewHandler(hub, Config{}, &MockLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/ws?"+query, nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, hub.ClientCount())
}

func TestHandle_OriginCheck(t *testing.T) {
	hub := notification.NewHub(&MockLogger{})
	defer hub.Close()

	server := httptest.NewServer(http.HandlerFunc(NewHandler(hub, Config{
		AllowedOrigins: []string{"https://admin.pickup.test"},
	}, &MockLogger{}).Handle))
	defer server.Close()

	header := http.Header{"Origin": []string{"https://evil.test"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(server, ""), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
