package cron

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

// Deliverers рассылает уведомление во все каналы; ошибки каналов объединяются
type Deliverers []Deliverer

func (d Deliverers) Deliver(ctx context.Context, request domain.Request) error {
	var errs []error
	for _, deliverer := range d {
		if err := deliverer.Deliver(ctx, request); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
