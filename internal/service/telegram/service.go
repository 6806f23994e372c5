package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

const maxMediaGroup = 10

// Service канал доставки сработавших уведомлений в Telegram
type Service struct {
	bot           BotAPI
	defaultChatID int64
}

// NewService создает канал доставки.
// defaultChatID используется для уведомлений без chat_id в user info.
func NewService(bot BotAPI, defaultChatID int64) *Service {
	return &Service{
		bot:           bot,
		defaultChatID: defaultChatID,
	}
}

// Deliver преобразует запрос в сообщение Telegram и отправляет его
func (s *Service) Deliver(ctx context.Context, request domain.Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.Send(domain.NewTelegramMessage(request, s.defaultChatID)); err != nil {
		return fmt.Errorf("Deliver %s - %w", request.Identifier, err)
	}
	return nil
}

// Send отправляет сообщение: текст, фото с подписью или media group
func (s *Service) Send(msg *domain.TelegramMessage) error {
	switch {
	case msg.ChatID == 0:
		return ErrNoRecipient
	case msg.MessageText == "":
		return ErrEmptyMessage
	case len(msg.ImageURLs) > maxMediaGroup:
		return fmt.Errorf("%w: %d of %d", ErrTooManyImages, len(msg.ImageURLs), maxMediaGroup)
	}

	if msg.IsMediaGroup() {
		resp, err := s.bot.Request(mediaGroup(msg))
		if err != nil {
			return fmt.Errorf("%w: media group: %v", ErrSend, err)
		}
		if !resp.Ok {
			return fmt.Errorf("%w: media group: %s", ErrSend, resp.Description)
		}
		return nil
	}

	var c tgbotapi.Chattable
	if msg.HasImages() {
		photo := tgbotapi.NewPhoto(msg.ChatID, tgbotapi.FileURL(msg.GetFirstImage()))
		photo.Caption = msg.MessageText
		photo.ParseMode = msg.ParseMode
		c = photo
	} else {
		text := tgbotapi.NewMessage(msg.ChatID, msg.MessageText)
		text.ParseMode = msg.ParseMode
		c = text
	}

	if _, err := s.bot.Send(c); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	return nil
}

// mediaGroup текст уходит подписью к первому изображению
func mediaGroup(msg *domain.TelegramMessage) tgbotapi.MediaGroupConfig {
	media := make([]interface{}, 0, len(msg.ImageURLs))
	for i, url := range msg.ImageURLs {
		photo := tgbotapi.NewInputMediaPhoto(tgbotapi.FileURL(url))
		if i == 0 {
			photo.Caption = msg.MessageText
			photo.ParseMode = msg.ParseMode
		}
		media = append(media, photo)
	}
	return tgbotapi.NewMediaGroup(msg.ChatID, media)
}
