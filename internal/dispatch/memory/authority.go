// Package memory детерминированная система доставки в памяти.
// Повторяет семантику Submit/Withdraw/List настоящей системы доставки и используется в тестах.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

// ErrLimitReached возвращается, когда достигнут внутренний лимит ожидающих записей
var ErrLimitReached = errors.New("dispatch.memory: pending limit reached")

// Authority система доставки в памяти
type Authority struct {
	mu        sync.Mutex
	pending   []domain.Request
	delivered []domain.DeliveredNotification
	limit     int              // 0 — без лимита
	failures  map[string]error // identifier -> ошибка Submit
	now       func() time.Time
}

// New создает систему доставки; limit <= 0 отключает внутренний лимит
func New(limit int) *Authority {
	return &Authority{
		limit:    limit,
		failures: make(map[string]error),
		now:      time.Now,
	}
}

// SetClock подменяет источник времени для записей о доставке
func (a *Authority) SetClock(now func() time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.now = now
}

// FailSubmit заставляет Submit с указанным идентификатором возвращать err
func (a *Authority) FailSubmit(identifier string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures[identifier] = err
}

// ClearFailures снимает все подмененные ошибки
func (a *Authority) ClearFailures() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures = make(map[string]error)
}

func (a *Authority) Submit(ctx context.Context, request domain.Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err, ok := a.failures[request.Identifier]; ok {
		return err
	}
	if a.limit > 0 && len(a.pending) >= a.limit {
		return ErrLimitReached
	}

	request.Content = request.Content.Clone()
	a.pending = append(a.pending, request)
	return nil
}

func (a *Authority) Withdraw(ctx context.Context, identifier string) error {
	return a.WithdrawMany(ctx, []string{identifier})
}

func (a *Authority) WithdrawMany(ctx context.Context, identifiers []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	drop := toSet(identifiers)
	kept := a.pending[:0]
	for _, request := range a.pending {
		if _, ok := drop[request.Identifier]; !ok {
			kept = append(kept, request)
		}
	}
	a.pending = kept
	return nil
}

func (a *Authority) ListPending(ctx context.Context) ([]domain.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	result := make([]domain.Request, len(a.pending))
	copy(result, a.pending)
	return result, nil
}

func (a *Authority) ListDelivered(ctx context.Context) ([]domain.DeliveredNotification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	result := make([]domain.DeliveredNotification, len(a.delivered))
	copy(result, a.delivered)
	return result, nil
}

// Deliver имитирует срабатывание всех записей с идентификатором.
// Одноразовые записи переходят в доставленные, повторяющиеся остаются в ожидании.
// Возвращает число доставленных записей.
func (a *Authority) Deliver(identifier string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	date := a.now()
	count := 0
	kept := a.pending[:0]
	for _, request := range a.pending {
		if request.Identifier != identifier {
			kept = append(kept, request)
			continue
		}

		count++
		a.delivered = append(a.delivered, domain.DeliveredNotification{Date: date, Request: request})
		if request.Trigger != nil && request.Trigger.Repeats() {
			kept = append(kept, request)
		}
	}
	a.pending = kept
	return count
}

// RemoveDelivered удаляет доставленные записи с указанными идентификаторами
func (a *Authority) RemoveDelivered(ctx context.Context, identifiers []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	drop := toSet(identifiers)
	kept := a.delivered[:0]
	for _, d := range a.delivered {
		if _, ok := drop[d.Request.Identifier]; !ok {
			kept = append(kept, d)
		}
	}
	removed := len(a.delivered) - len(kept)
	a.delivered = kept
	return removed, nil
}

// RemoveAllDelivered очищает список доставленных
func (a *Authority) RemoveAllDelivered(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	removed := len(a.delivered)
	a.delivered = nil
	return removed, nil
}

// Reset очищает ожидающие и доставленные записи и подмененные ошибки
func (a *Authority) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending = nil
	a.delivered = nil
	a.failures = make(map[string]error)
}

// PendingCount количество ожидающих записей, включая совпадающие идентификаторы
func (a *Authority) PendingCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}

func toSet(identifiers []string) map[string]struct{} {
	set := make(map[string]struct{}, len(identifiers))
	for _, id := range identifiers {
		set[id] = struct{}{}
	}
	return set
}
