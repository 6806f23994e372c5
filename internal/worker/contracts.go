package worker

import "context"

// Scheduler интерфейс планировщика уведомлений
type Scheduler interface {
	// Reconcile удаляет из реестра уведомления, которых система доставки уже не хранит
	Reconcile(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
