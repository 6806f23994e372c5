package cron

import (
	"context"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

// Deliverer канал доставки сработавшего уведомления (Telegram, брокер сообщений)
type Deliverer interface {
	Deliver(ctx context.Context, request domain.Request) error
}

// DeliveryLog журнал доставленных уведомлений
type DeliveryLog interface {
	// Save добавляет запись о доставке
	Save(ctx context.Context, delivered domain.DeliveredNotification) error

	// List возвращает все записи о доставке
	List(ctx context.Context) ([]domain.DeliveredNotification, error)

	// DeleteByIdentifiers удаляет записи с указанными идентификаторами, возвращает число удаленных
	DeleteByIdentifiers(ctx context.Context, identifiers []string) (int, error)

	// DeleteAll очищает журнал, возвращает число удаленных записей
	DeleteAll(ctx context.Context) (int, error)
}

// Metrics интерфейс для сбора метрик доставки
type Metrics interface {
	ObserveDelivery(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
