package domain

import (
	"html"
	"strings"
)

// ParseModeHTML текст сообщения экранируется и размечается HTML
const ParseModeHTML = "HTML"

// Ключи user info, которые понимает Telegram-доставка
const (
	UserInfoChatID    = "chat_id"
	UserInfoImageURLs = "image_urls"
)

// TelegramMessage представляет сообщение для отправки через Telegram Bot API
type TelegramMessage struct {
	ChatID      int64    // ID чата получателя
	MessageText string   // Текст сообщения
	ImageURLs   []string // URL изображений (для MediaGroup или одиночного фото)
	ParseMode   string   // Режим парсинга Telegram
}

// NewTelegramMessage создает сообщение из сработавшего запроса.
// chat_id из user info имеет приоритет над fallbackChatID.
func NewTelegramMessage(request Request, fallbackChatID int64) *TelegramMessage {
	content := request.Content

	var text strings.Builder
	if content.Title != "" {
		text.WriteString("<b>")
		text.WriteString(html.EscapeString(content.Title))
		text.WriteString("</b>\n")
	}
	text.WriteString(html.EscapeString(content.Body))

	chatID := fallbackChatID
	if v, ok := content.UserInfo[UserInfoChatID]; ok {
		if id, ok := toInt64(v); ok {
			chatID = id
		}
	}

	return &TelegramMessage{
		ChatID:      chatID,
		MessageText: text.String(),
		ImageURLs:   toStrings(content.UserInfo[UserInfoImageURLs]),
		ParseMode:   ParseModeHTML,
	}
}

// HasImages проверяет, есть ли изображения для отправки
func (m *TelegramMessage) HasImages() bool {
	return len(m.ImageURLs) > 0
}

// IsMediaGroup проверяет, нужно ли отправлять как MediaGroup
// MediaGroup используется для 2+ изображений в одном сообщении
func (m *TelegramMessage) IsMediaGroup() bool {
	return len(m.ImageURLs) > 1
}

// GetFirstImage возвращает URL первого изображения (для одиночного фото)
func (m *TelegramMessage) GetFirstImage() string {
	if len(m.ImageURLs) > 0 {
		return m.ImageURLs[0]
	}
	return ""
}

// toInt64 user info приходит из JSON, поэтому числа могут быть float64
func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func toStrings(v interface{}) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []interface{}:
		result := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	}
	return nil
}
