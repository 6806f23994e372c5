package scheduler

import (
	"context"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

// DispatchAuthority внешняя система, которая фактически хранит и доставляет уведомления.
// Может хранить несколько записей с одинаковым идентификатором.
type DispatchAuthority interface {
	// Submit передает запрос на доставку
	Submit(ctx context.Context, request domain.Request) error

	// Withdraw отзывает все записи с указанным идентификатором, повторный вызов не является ошибкой
	Withdraw(ctx context.Context, identifier string) error

	// WithdrawMany пакетная форма Withdraw
	WithdrawMany(ctx context.Context, identifiers []string) error

	// ListPending возвращает все ожидающие доставки записи
	ListPending(ctx context.Context) ([]domain.Request, error)

	// ListDelivered возвращает уже доставленные уведомления
	ListDelivered(ctx context.Context) ([]domain.DeliveredNotification, error)
}

// Metrics интерфейс для сбора метрик планировщика
type Metrics interface {
	SetScheduledCount(count int)
	ObserveOperation(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
