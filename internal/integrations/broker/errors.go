package broker

import "errors"

var (
	// ErrConnect возвращается при ошибке подключения к брокеру
	ErrConnect = errors.New("broker: failed to connect")

	// ErrPublish возвращается при ошибке публикации сообщения
	ErrPublish = errors.New("broker: failed to publish message")

	// ErrNotConfirmed возвращается, когда брокер ответил nack или подтверждение не пришло
	ErrNotConfirmed = errors.New("broker: publish not confirmed")
)
