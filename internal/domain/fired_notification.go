package domain

import "time"

// FiredNotification сообщение о сработавшем уведомлении для внешних получателей (брокер, webhook)
type FiredNotification struct {
	Identifier         string         `json:"identifier"`
	Title              string         `json:"title,omitempty"`
	Body               string         `json:"body"`
	Badge              *int           `json:"badge,omitempty"`
	Sound              SoundRecord    `json:"sound"`
	UserInfo           UserInfo       `json:"user_info,omitempty"`
	ThreadIdentifier   string         `json:"thread_identifier,omitempty"`
	CategoryIdentifier string         `json:"category_identifier,omitempty"`
	Trigger            *TriggerRecord `json:"trigger,omitempty"`
	FiredAt            time.Time      `json:"fired_at"`
}

// NewFiredNotification собирает сообщение из запроса
func NewFiredNotification(request Request, firedAt time.Time) FiredNotification {
	content := request.Content.Clone()
	return FiredNotification{
		Identifier:         request.Identifier,
		Title:              content.Title,
		Body:               content.Body,
		Badge:              content.Badge,
		Sound:              NewSoundRecord(content.Sound),
		UserInfo:           content.UserInfo,
		ThreadIdentifier:   content.ThreadIdentifier,
		CategoryIdentifier: content.CategoryIdentifier,
		Trigger:            NewTriggerRecord(request.Trigger),
		FiredAt:            firedAt,
	}
}
