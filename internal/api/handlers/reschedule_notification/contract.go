package reschedule_notification

import (
	"context"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

// Scheduler интерфейс планировщика уведомлений
type Scheduler interface {
	RescheduleExisting(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
