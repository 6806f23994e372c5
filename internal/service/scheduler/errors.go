package scheduler

import "errors"

var (
	// ErrCapacityExceeded возвращается, когда планирование превысило бы лимит ожидающих уведомлений
	ErrCapacityExceeded = errors.New("service.scheduler: maximum allowed notifications exceeded")

	// ErrInvalidTrigger возвращается при некорректном триггере, до обращения к системе доставки
	ErrInvalidTrigger = errors.New("service.scheduler: invalid trigger")

	// ErrInvalidContent возвращается при некорректном содержимом (например, незаданный звук)
	ErrInvalidContent = errors.New("service.scheduler: invalid content")

	// ErrInvalidGroup возвращается для пустой группы или группы с nil-уведомлением
	ErrInvalidGroup = errors.New("service.scheduler: invalid notification group")

	// ErrDispatchAuthority возвращается, когда система доставки отклонила или не выполнила вызов
	ErrDispatchAuthority = errors.New("service.scheduler: dispatch authority failure")

	// ErrNotScheduled возвращается RescheduleExisting для идентификатора, которого нет в реестре
	ErrNotScheduled = errors.New("service.scheduler: notification is not scheduled")
)
