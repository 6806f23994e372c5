package worker

import (
	"context"
	"sync"
	"time"
)

// DefaultReconcileInterval интервал сверки реестра по умолчанию
const DefaultReconcileInterval = time.Minute

// Reconciler периодически сверяет реестр планировщика с системой доставки,
// чтобы сработавшие одноразовые уведомления освобождали слоты
type Reconciler struct {
	scheduler Scheduler
	logger    Logger
	interval  time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewReconciler создает новый экземпляр сверки
func NewReconciler(scheduler Scheduler, logger Logger, interval time.Duration) *Reconciler {
	if interval <= 0 {
		interval = DefaultReconcileInterval
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Reconciler{
		scheduler: scheduler,
		logger:    logger,
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start запускает сверку в отдельной goroutine
func (r *Reconciler) Start() {
	r.logger.Info("Starting registry reconciler (interval: %s)", r.interval)

	r.wg.Add(1)
	go r.run()
}

// Stop останавливает сверку и дожидается завершения текущего прохода
func (r *Reconciler) Stop() {
	r.logger.Info("Stopping registry reconciler")
	r.cancel()
	r.wg.Wait()
	r.logger.Info("Registry reconciler stopped")
}

func (r *Reconciler) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.reconcile()
		case <-r.ctx.Done():
			return
		}
	}
}

func (r *Reconciler) reconcile() {
	ctx, cancel := context.WithTimeout(r.ctx, r.interval)
	defer cancel()

	pruned, err := r.scheduler.Reconcile(ctx)
	if err != nil {
		r.logger.Error("Failed to reconcile scheduled notifications: %v", err)
		return
	}

	if pruned > 0 {
		r.logger.Info("Released %d slots of fired notifications", pruned)
	}
}
