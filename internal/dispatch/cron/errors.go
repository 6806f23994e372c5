package cron

import "errors"

var (
	// ErrDateInPast возвращается для одноразового триггера с датой в прошлом
	ErrDateInPast = errors.New("dispatch.cron: trigger date is in the past")

	// ErrUnsupportedTrigger возвращается для триггеров, которые нельзя исполнить на сервере
	ErrUnsupportedTrigger = errors.New("dispatch.cron: unsupported trigger")

	// ErrScheduleJob возвращается при ошибке создания задачи gocron
	ErrScheduleJob = errors.New("dispatch.cron: failed to schedule job")

	// ErrDeliveryLog возвращается при ошибках журнала доставки
	ErrDeliveryLog = errors.New("dispatch.cron: delivery log error")
)
