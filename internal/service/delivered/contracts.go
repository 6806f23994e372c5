package delivered

import (
	"context"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

// Store источник доставленных уведомлений (система доставки или журнал доставки)
type Store interface {
	ListDelivered(ctx context.Context) ([]domain.DeliveredNotification, error)
	RemoveDelivered(ctx context.Context, identifiers []string) (int, error)
	RemoveAllDelivered(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
