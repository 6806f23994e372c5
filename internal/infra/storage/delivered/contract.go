package delivered

import (
	"context"

	"github.com/m04kA/SMC-NotificationScheduler/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// TxManager выполняет функцию в транзакции, передавая ее через контекст
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
