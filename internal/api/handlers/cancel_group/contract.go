package cancel_group

import "context"

// Scheduler интерфейс планировщика уведомлений
type Scheduler interface {
	CancelGroupByIdentifier(ctx context.Context, identifier string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
