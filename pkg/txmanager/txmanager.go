// Package txmanager выполняет несколько операций репозитория в одной транзакции.
// Транзакция передается через контекст, репозитории получают ее через dbmetrics.GetExecutor.
package txmanager

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-NotificationScheduler/pkg/dbmetrics"
)

var (
	ErrBegin    = errors.New("txmanager: failed to begin transaction")
	ErrCommit   = errors.New("txmanager: failed to commit transaction")
	ErrRollback = errors.New("txmanager: failed to rollback transaction")
)

// Manager открывает транзакции на dbmetrics.DB
type Manager struct {
	db *dbmetrics.DB
}

func New(db *dbmetrics.DB) *Manager {
	return &Manager{db: db}
}

// Do выполняет fn в транзакции: commit при успехе, rollback при ошибке или панике.
// Если в контексте уже есть транзакция, fn выполняется в ней.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBegin, err)
	}

	return run(dbmetrics.WithTx(ctx, tx), tx, fn)
}

func run(ctx context.Context, tx dbmetrics.TxExecutor, fn func(ctx context.Context) error) error {
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("%w: %v", ErrRollback, rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrCommit, err)
	}
	return nil
}
