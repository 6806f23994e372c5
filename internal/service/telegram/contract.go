package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// BotAPI часть *tgbotapi.BotAPI, нужная для доставки
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)

	// Request используется для media group: Telegram отвечает массивом сообщений
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}
