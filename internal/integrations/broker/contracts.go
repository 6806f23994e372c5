package broker

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel канал AMQP в режиме подтверждений, через который публикуются сообщения
type Channel interface {
	Confirm(noWait bool) error
	PublishWithConfirm(ctx context.Context, exchange, key string, msg amqp.Publishing) (Confirmation, error)
	Close() error
}

// Confirmation ожидание подтверждения публикации от брокера
type Confirmation interface {
	// WaitContext возвращает true для ack и false для nack
	WaitContext(ctx context.Context) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
