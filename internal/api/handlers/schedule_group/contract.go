package schedule_group

import (
	"context"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

// Scheduler интерфейс планировщика уведомлений
type Scheduler interface {
	ScheduleGroup(ctx context.Context, group *domain.NotificationGroup) (*domain.NotificationGroup, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
