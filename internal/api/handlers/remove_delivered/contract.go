package remove_delivered

import "context"

// DeliveredService интерфейс сервиса доставленных уведомлений
type DeliveredService interface {
	Remove(ctx context.Context, identifiers []string) (int, error)
	RemoveAll(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
