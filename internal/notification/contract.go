package notification

import (
	"context"

	"github.com/segmentio/kafka-go"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Broadcaster доставка событий подключенным клиентам
type Broadcaster interface {
	Broadcast(event Event)
	BroadcastToRoom(room string, event Event)
}

// EventPublisher публикация событий во внешний поток
type EventPublisher interface {
	Publish(ctx context.Context, key string, event Event) error
}

// MessageWriter подмножество kafka.Writer, используемое публикатором
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
