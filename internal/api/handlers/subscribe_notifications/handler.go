package subscribe_notifications

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-PickupService/internal/api/handlers"
	"github.com/m04kA/SMC-PickupService/internal/notification"
)

const (
	msgInvalidRoom  = "неизвестная комната, ожидается admin или driver-D0001"
	msgTooManyRooms = "слишком много комнат в одном подключении"
)

// Config настройки апгрейда соединения
type Config struct {
	AllowedOrigins  []string // Пустой список разрешает любой Origin
	ReadBufferSize  int
	WriteBufferSize int
}

type Handler struct {
	hub      Hub
	upgrader websocket.Upgrader
	logger   Logger
}

func NewHandler(hub Hub, cfg Config, logger Logger) *Handler {
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowed[origin] = struct{}{}
	}

	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
		logger: logger,
	}
}

// Handle GET /ws?room=admin&room=driver-D0001
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rooms := r.URL.Query()["room"]
	if len(rooms) > notification.MaxRoomsPerClient {
		h.logger.Warn("GET /ws - Too many rooms: %d", len(rooms))
		handlers.RespondBadRequest(w, msgTooManyRooms)
		return
	}
	for _, room := range rooms {
		if !notification.ValidRoom(room) {
			h.logger.Warn("GET /ws - Invalid room: %q", room)
			handlers.RespondBadRequest(w, msgInvalidRoom)
			return
		}
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		h.logger.Warn("GET /ws - Upgrade failed: %v", err)
		return
	}

	h.logger.Info("GET /ws - Client connected: remote=%s, rooms=%v", r.RemoteAddr, rooms)
	h.hub.ServeWS(conn, rooms)
	h.logger.Info("GET /ws - Client disconnected: remote=%s", r.RemoteAddr)
}
