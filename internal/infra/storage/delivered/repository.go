package delivered

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
	"github.com/m04kA/SMC-NotificationScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-NotificationScheduler/pkg/psqlbuilder"
)

// Repository журнал доставленных уведомлений в PostgreSQL
type Repository struct {
	db        DBExecutor
	tx        TxManager
	retention int
}

// NewRepository создает новый экземпляр репозитория.
// retention > 0 ограничивает журнал последними retention записями.
func NewRepository(db DBExecutor, tx TxManager, retention int) *Repository {
	return &Repository{
		db:        db,
		tx:        tx,
		retention: retention,
	}
}

// Save добавляет запись о доставке и обрезает журнал до retention записей
func (r *Repository) Save(ctx context.Context, delivered domain.DeliveredNotification) error {
	insert, args, err := buildInsert(delivered)
	if err != nil {
		return fmt.Errorf("Save - %w", err)
	}

	return r.tx.Do(ctx, func(ctx context.Context) error {
		executor := dbmetrics.GetExecutor(ctx, r.db)

		if _, err := executor.ExecContext(ctx, insert, args...); err != nil {
			return fmt.Errorf("%w: Save - execute insert: %v", ErrExecQuery, err)
		}

		if r.retention <= 0 {
			return nil
		}

		trim, trimArgs, err := buildTrim(r.retention)
		if err != nil {
			return fmt.Errorf("%w: Save - build trim query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, trim, trimArgs...); err != nil {
			return fmt.Errorf("%w: Save - execute trim: %v", ErrExecQuery, err)
		}

		return nil
	})
}

// List возвращает записи, новые первыми
func (r *Repository) List(ctx context.Context) ([]domain.DeliveredNotification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildList()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.DeliveredNotification, 0)
	for rows.Next() {
		var rec row
		if err := rows.Scan(rec.targets()...); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		delivered, err := rec.toDomain()
		if err != nil {
			return nil, fmt.Errorf("List - %w", err)
		}
		result = append(result, delivered)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// DeleteByIdentifiers удаляет записи с указанными идентификаторами
func (r *Repository) DeleteByIdentifiers(ctx context.Context, identifiers []string) (int, error) {
	if len(identifiers) == 0 {
		return 0, nil
	}

	query, args, err := buildDeleteByIdentifiers(identifiers)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByIdentifiers - build delete query: %v", ErrBuildQuery, err)
	}

	return r.exec(ctx, "DeleteByIdentifiers", query, args)
}

// DeleteAll очищает журнал
func (r *Repository) DeleteAll(ctx context.Context) (int, error) {
	query, args, err := psqlbuilder.Delete(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAll - build delete query: %v", ErrBuildQuery, err)
	}

	return r.exec(ctx, "DeleteAll", query, args)
}

func (r *Repository) exec(ctx context.Context, op, query string, args []interface{}) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute delete: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}

	return int(affected), nil
}

func buildInsert(delivered domain.DeliveredNotification) (string, []interface{}, error) {
	rec, err := newRow(delivered)
	if err != nil {
		return "", nil, err
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns...).
		Values(rec.values()...).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: build insert query: %v", ErrBuildQuery, err)
	}

	return query, args, nil
}

func buildList() (string, []interface{}, error) {
	return psqlbuilder.Select(columns...).
		From(table).
		OrderBy("delivered_at DESC", "id DESC").
		ToSql()
}

func buildDeleteByIdentifiers(identifiers []string) (string, []interface{}, error) {
	return psqlbuilder.Delete(table).
		Where("identifier = ANY(?)", pq.Array(identifiers)).
		ToSql()
}

func buildTrim(retention int) (string, []interface{}, error) {
	keep := psqlbuilder.Select("id").
		From(table).
		OrderBy("delivered_at DESC", "id DESC").
		Limit(uint64(retention))

	return psqlbuilder.Delete(table).
		Where(squirrel.Expr("id NOT IN (?)", keep)).
		ToSql()
}
