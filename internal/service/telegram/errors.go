package telegram

import "errors"

var (
	// ErrNoRecipient у уведомления нет chat_id, и чат по умолчанию не настроен
	ErrNoRecipient = errors.New("service.telegram: no recipient chat")

	// ErrEmptyMessage у уведомления нет ни заголовка, ни текста
	ErrEmptyMessage = errors.New("service.telegram: message text is empty")

	// ErrTooManyImages Telegram принимает не больше maxMediaGroup изображений в одном сообщении
	ErrTooManyImages = errors.New("service.telegram: too many images")

	// ErrSend Telegram отклонил сообщение или оказался недоступен
	ErrSend = errors.New("service.telegram: failed to send")
)
