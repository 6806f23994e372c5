package get_delivered

import (
	"context"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

// DeliveredService интерфейс сервиса доставленных уведомлений
type DeliveredService interface {
	Get(ctx context.Context, identifier string) (*domain.Notification, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
