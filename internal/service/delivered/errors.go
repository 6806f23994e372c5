package delivered

import "errors"

var (
	// ErrNotificationNotFound возвращается, когда доставленное уведомление не найдено
	ErrNotificationNotFound = errors.New("service.delivered: notification not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("service.delivered: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service.delivered: internal error")
)
