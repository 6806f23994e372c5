package dbmetrics

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeExecutor struct {
	name string
}

func (fakeExecutor) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (fakeExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (fakeExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

type fakeTx struct {
	fakeExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type recordingRecorder struct {
	statuses []string
}

func (r *recordingRecorder) ObserveDBQuery(operation, status string, _ time.Duration) {
	r.statuses = append(r.statuses, operation+"/"+status)
}

func (r *recordingRecorder) SetDBStats(sql.DBStats) {}

func TestGetExecutor(t *testing.T) {
	db := fakeExecutor{name: "db"}
	tx := fakeTx{fakeExecutor{name: "tx"}}

	ctx := context.Background()
	assert.False(t, IsInTransaction(ctx))
	assert.Equal(t, db, GetExecutor(ctx, db))

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, db))
}

func TestObserve(t *testing.T) {
	recorder := &recordingRecorder{}
	start := time.Now()

	observe(recorder, operationExec, start, nil)
	observe(recorder, operationQueryRow, start, sql.ErrNoRows)
	observe(recorder, operationQuery, start, errors.New("connection reset"))
	observe(nil, operationQuery, start, nil)

	assert.Equal(t, []string{"exec/ok", "query_row/ok", "query/error"}, recorder.statuses)
}
