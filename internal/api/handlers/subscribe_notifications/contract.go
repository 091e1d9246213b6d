package subscribe_notifications

import "github.com/gorilla/websocket"

// Hub принимает websocket подключения и держит их до закрытия
type Hub interface {
	ServeWS(conn *websocket.Conn, initialRooms []string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
