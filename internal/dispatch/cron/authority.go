// Package cron система доставки на базе gocron: уведомления исполняются задачами планировщика,
// сработавшие уведомления передаются в каналы доставки и записываются в журнал.
package cron

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

const (
	deliveryResultDelivered = "delivered"
	deliveryResultFailed    = "failed"

	// DefaultDeliveryTimeout таймаут одной доставки
	DefaultDeliveryTimeout = 30 * time.Second
)

// entry ожидающая запись; key отличает записи с одинаковым идентификатором
type entry struct {
	key     int64
	request domain.Request
	job     *gocron.Job
	repeats bool

	// monthDay ненулевой для ежемесячных триггеров на 29-31 число: задача запускается ежедневно,
	// доставка выполняется только в этот день месяца
	monthDay int
}

// Authority система доставки на gocron
type Authority struct {
	deliverer Deliverer
	log       DeliveryLog
	logger    Logger
	metrics   Metrics
	timeout   time.Duration
	now       func() time.Time

	scheduler *gocron.Scheduler
	mu        sync.Mutex
	entries   []*entry
	nextKey   int64

	ctx    context.Context
	cancel context.CancelFunc
}

// NewAuthority создает систему доставки; timeout <= 0 заменяется на DefaultDeliveryTimeout
func NewAuthority(deliverer Deliverer, log DeliveryLog, logger Logger, metrics Metrics, timeout time.Duration) *Authority {
	if timeout <= 0 {
		timeout = DefaultDeliveryTimeout
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Authority{
		deliverer: deliverer,
		log:       log,
		logger:    logger,
		metrics:   metrics,
		timeout:   timeout,
		now:       time.Now,
		scheduler: gocron.NewScheduler(time.UTC),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start запускает планировщик
func (a *Authority) Start() {
	a.logger.Info("Starting dispatch scheduler")
	a.scheduler.StartAsync()
}

// Stop останавливает планировщик, ожидающие записи теряются
func (a *Authority) Stop() {
	a.logger.Info("Stopping dispatch scheduler")
	a.cancel()
	a.scheduler.Stop()
	a.logger.Info("Dispatch scheduler stopped")
}

// Submit создает задачу gocron для запроса
func (a *Authority) Submit(ctx context.Context, request domain.Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.nextKey++
	key := a.nextKey

	job, repeats, err := a.schedule(request.Trigger, key)
	if err != nil {
		return fmt.Errorf("Submit %s - %w", request.Identifier, err)
	}

	request.Content = request.Content.Clone()
	a.entries = append(a.entries, &entry{
		key:      key,
		request:  request,
		job:      job,
		repeats:  repeats,
		monthDay: monthDayFilter(request.Trigger),
	})

	a.logger.Info("Submitted notification %s (%s trigger)", request.Identifier, request.Trigger.Kind())
	return nil
}

// Withdraw снимает все задачи с идентификатором
func (a *Authority) Withdraw(ctx context.Context, identifier string) error {
	return a.WithdrawMany(ctx, []string{identifier})
}

// WithdrawMany снимает все задачи с указанными идентификаторами
func (a *Authority) WithdrawMany(ctx context.Context, identifiers []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	drop := make(map[string]struct{}, len(identifiers))
	for _, id := range identifiers {
		drop[id] = struct{}{}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	kept := make([]*entry, 0, len(a.entries))
	for _, e := range a.entries {
		if _, ok := drop[e.request.Identifier]; !ok {
			kept = append(kept, e)
			continue
		}
		a.scheduler.RemoveByReference(e.job)
	}

	if withdrawn := len(a.entries) - len(kept); withdrawn > 0 {
		a.logger.Info("Withdrew %d scheduled jobs", withdrawn)
	}
	a.entries = kept

	return nil
}

// ListPending возвращает запросы, задачи которых еще не отработали
func (a *Authority) ListPending(ctx context.Context) ([]domain.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	result := make([]domain.Request, 0, len(a.entries))
	for _, e := range a.entries {
		result = append(result, e.request)
	}
	return result, nil
}

// ListDelivered возвращает записи журнала доставки
func (a *Authority) ListDelivered(ctx context.Context) ([]domain.DeliveredNotification, error) {
	delivered, err := a.log.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDelivered: %v", ErrDeliveryLog, err)
	}
	return delivered, nil
}

// RemoveDelivered удаляет записи журнала с указанными идентификаторами
func (a *Authority) RemoveDelivered(ctx context.Context, identifiers []string) (int, error) {
	removed, err := a.log.DeleteByIdentifiers(ctx, identifiers)
	if err != nil {
		return 0, fmt.Errorf("%w: RemoveDelivered: %v", ErrDeliveryLog, err)
	}
	return removed, nil
}

// RemoveAllDelivered очищает журнал доставки
func (a *Authority) RemoveAllDelivered(ctx context.Context) (int, error) {
	removed, err := a.log.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: RemoveAllDelivered: %v", ErrDeliveryLog, err)
	}
	return removed, nil
}

// schedule создает задачу gocron под триггер. Вызывается под a.mu:
// цепочка вызовов gocron.Scheduler не потокобезопасна.
func (a *Authority) schedule(trigger domain.Trigger, key int64) (*gocron.Job, bool, error) {
	now := a.now().UTC()

	var (
		job *gocron.Job
		err error
	)

	switch t := trigger.(type) {
	case domain.DateTrigger:
		at := t.At.UTC()
		cadence := t.Cadence()

		switch cadence {
		case domain.RepeatNone:
			if !at.After(now) {
				return nil, false, fmt.Errorf("%w: %s", ErrDateInPast, at.Format(time.RFC3339))
			}
			job, err = a.scheduler.Every(1).StartAt(at).LimitRunsTo(1).Do(a.fire, key)

		case domain.RepeatMonth:
			clock := nextOccurrence(at, cadence, now).Format("15:04:05")
			// gocron принимает дни месяца только 1..28, более поздние дни фильтрует fire
			if monthDayFilter(trigger) != 0 {
				job, err = a.scheduler.Every(1).Day().At(clock).Do(a.fire, key)
			} else {
				job, err = a.scheduler.Every(1).Month(at.Day()).At(clock).Do(a.fire, key)
			}

		default:
			next := nextOccurrence(at, cadence, now)
			job, err = a.scheduler.Every(cadenceStep(cadence)).StartAt(next).Do(a.fire, key)
		}

		if err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrScheduleJob, err)
		}
		return job, cadence != domain.RepeatNone, nil

	case domain.IntervalTrigger:
		interval := t.Duration()
		s := a.scheduler.Every(interval).StartAt(now.Add(interval))
		if !t.Repeating {
			s = s.LimitRunsTo(1)
		}
		job, err = s.Do(a.fire, key)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrScheduleJob, err)
		}
		return job, t.Repeating, nil

	case domain.RegionTrigger:
		return nil, false, fmt.Errorf("%w: region trigger %q requires device location", ErrUnsupportedTrigger, t.Identifier)
	}

	return nil, false, fmt.Errorf("%w: %T", ErrUnsupportedTrigger, trigger)
}

// fire вызывается gocron при срабатывании задачи
func (a *Authority) fire(key int64) {
	a.mu.Lock()
	e := a.take(key)
	a.mu.Unlock()

	if e == nil {
		// Запись отозвана, пока задача ждала исполнения
		return
	}

	// Месяцы без нужного дня пропускаются
	if e.monthDay != 0 && a.now().UTC().Day() != e.monthDay {
		return
	}

	if !e.repeats {
		a.scheduler.RemoveByReference(e.job)
	}

	request := e.request
	a.logger.Info("Executing scheduled notification %s", request.Identifier)

	ctx, cancel := context.WithTimeout(a.ctx, a.timeout)
	defer cancel()

	if err := a.deliverer.Deliver(ctx, request); err != nil {
		a.logger.Error("Failed to deliver notification %s: %v", request.Identifier, err)
		a.metrics.ObserveDelivery(deliveryResultFailed)
		return
	}
	a.metrics.ObserveDelivery(deliveryResultDelivered)

	delivered := domain.DeliveredNotification{Date: a.now(), Request: request}
	if err := a.log.Save(ctx, delivered); err != nil {
		a.logger.Error("Failed to record delivery of notification %s: %v", request.Identifier, err)
		return
	}

	a.logger.Info("Successfully delivered notification %s", request.Identifier)
}

// take находит запись по ключу; одноразовая запись удаляется из ожидающих
func (a *Authority) take(key int64) *entry {
	for i, e := range a.entries {
		if e.key != key {
			continue
		}
		if !e.repeats {
			a.entries = append(a.entries[:i:i], a.entries[i+1:]...)
		}
		return e
	}
	return nil
}

type noopMetrics struct{}

func (noopMetrics) ObserveDelivery(string) {}
