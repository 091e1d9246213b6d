package notification

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024

	defaultWriteWait  = 10 * time.Second
	defaultSendBuffer = 64
)

const (
	commandSubscribe   = "subscribe"
	commandUnsubscribe = "unsubscribe"

	replySubscribed   = "subscribed"
	replyUnsubscribed = "unsubscribed"
	replyError        = "error"

	errInvalidRoom  = "invalid room"
	errTooManyRooms = "too many rooms"
)

// MaxRoomsPerClient предел подписок одного подключения
const MaxRoomsPerClient = 8

// clientCommand сообщение клиента: {"type":"subscribe","room":"admin"}
type clientCommand struct {
	Type string `json:"type"`
	Room string `json:"room"`
}

type commandReply struct {
	Type  string `json:"type"`
	Room  string `json:"room"`
	Error string `json:"error,omitempty"`
}

type client struct {
	conn  *websocket.Conn
	send  chan []byte
	rooms map[string]bool
}

// Hub держит WebSocket подключения и раздает им события.
// Медленным клиентам событие не доставляется, чтобы не блокировать отправителя.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*client]struct{}
	writeWait  time.Duration
	sendBuffer int
	logger     Logger
}

// HubOption настройка хаба
type HubOption func(*Hub)

// WithWriteWait таймаут записи в сокет
func WithWriteWait(d time.Duration) HubOption {
	return func(h *Hub) {
		if d > 0 {
			h.writeWait = d
		}
	}
}

// WithSendBuffer размер очереди исходящих сообщений одного клиента
func WithSendBuffer(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.sendBuffer = n
		}
	}
}

func NewHub(logger Logger, opts ...HubOption) *Hub {
	h := &Hub{
		clients:    make(map[*client]struct{}),
		writeWait:  defaultWriteWait,
		sendBuffer: defaultSendBuffer,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeWS регистрирует подключение и блокируется до его закрытия.
// initialRooms подписываются сразу, остальные клиент запрашивает командой subscribe.
func (h *Hub) ServeWS(conn *websocket.Conn, initialRooms []string) {
	c := &client{
		conn:  conn,
		send:  make(chan []byte, h.sendBuffer),
		rooms: make(map[string]bool),
	}
	for _, room := range initialRooms {
		if ValidRoom(room) && len(c.rooms) < MaxRoomsPerClient {
			c.rooms[room] = true
		}
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

// Broadcast отправляет событие всем подключенным клиентам
func (h *Hub) Broadcast(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Hub.Broadcast: failed to encode event type=%s: %v", event.Type, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		h.deliver(c, data)
	}
}

// BroadcastToRoom отправляет событие подписчикам комнаты
func (h *Hub) BroadcastToRoom(room string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Hub.BroadcastToRoom: failed to encode event type=%s room=%s: %v", event.Type, room, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c.rooms[room] {
			h.deliver(c, data)
		}
	}
}

// ClientCount количество активных подключений
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close отключает всех клиентов
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// deliver вызывается под блокировкой чтения
func (h *Hub) deliver(c *client, data []byte) {
	select {
	case c.send <- data:
	default:
		h.logger.Warn("Hub: client send buffer full, event dropped")
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("Hub: unexpected websocket close: %v", err)
			}
			return
		}

		var cmd clientCommand
		if err := json.Unmarshal(msg, &cmd); err != nil || cmd.Room == "" {
			continue
		}

		switch cmd.Type {
		case commandSubscribe:
			if !ValidRoom(cmd.Room) {
				h.reply(c, commandReply{Type: replyError, Room: cmd.Room, Error: errInvalidRoom})
				continue
			}
			if !h.subscribe(c, cmd.Room) {
				h.reply(c, commandReply{Type: replyError, Room: cmd.Room, Error: errTooManyRooms})
				continue
			}
			h.reply(c, commandReply{Type: replySubscribed, Room: cmd.Room})
		case commandUnsubscribe:
			h.mu.Lock()
			delete(c.rooms, cmd.Room)
			h.mu.Unlock()
			h.reply(c, commandReply{Type: replyUnsubscribed, Room: cmd.Room})
		}
	}
}

// subscribe добавляет комнату клиенту, если не превышен предел подписок
func (h *Hub) subscribe(c *client, room string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c.rooms[room] {
		return true
	}
	if len(c.rooms) >= MaxRoomsPerClient {
		return false
	}
	c.rooms[room] = true
	return true
}

func (h *Hub) reply(c *client, reply commandReply) {
	data, err := json.Marshal(reply)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; ok {
		h.deliver(c, data)
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
