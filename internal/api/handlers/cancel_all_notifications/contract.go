package cancel_all_notifications

import "context"

// Scheduler интерфейс планировщика уведомлений
type Scheduler interface {
	CancelAll(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
