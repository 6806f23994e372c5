// Package models HTTP модели уведомлений и групп
package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

// NotificationRequest HTTP запрос на планирование уведомления
type NotificationRequest struct {
	Identifier         string                `json:"identifier,omitempty"`
	Title              string                `json:"title,omitempty"`
	Body               string                `json:"body"`
	Badge              *int                  `json:"badge,omitempty"`
	Sound              *domain.SoundRecord   `json:"sound,omitempty"`
	UserInfo           domain.UserInfo       `json:"user_info,omitempty"`
	ThreadIdentifier   string                `json:"thread_identifier,omitempty"`
	CategoryIdentifier string                `json:"category_identifier,omitempty"`
	Trigger            *domain.TriggerRecord `json:"trigger,omitempty"`
}

// ToDomain преобразует HTTP модель в доменное уведомление.
// Незаданные идентификатор, триггер и звук получают значения по умолчанию.
func (r *NotificationRequest) ToDomain() (*domain.Notification, error) {
	var trigger domain.Trigger
	if r.Trigger != nil {
		t, err := r.Trigger.Trigger()
		if err != nil {
			return nil, fmt.Errorf("trigger: %w", err)
		}
		trigger = t
	}

	n := domain.NewNotification(r.Identifier, r.Body, trigger)
	n.Title = r.Title
	n.Badge = r.Badge
	n.ThreadIdentifier = r.ThreadIdentifier
	n.CategoryIdentifier = r.CategoryIdentifier

	if r.Sound != nil {
		sound, err := r.Sound.Sound()
		if err != nil {
			return nil, fmt.Errorf("sound: %w", err)
		}
		n.Sound = sound
	}

	for key, value := range r.UserInfo {
		n.SetUserInfo(key, value)
	}

	return n, nil
}

// NotificationResponse HTTP ответ с данными уведомления
type NotificationResponse struct {
	Identifier         string                `json:"identifier"`
	Title              string                `json:"title,omitempty"`
	Body               string                `json:"body"`
	Badge              *int                  `json:"badge,omitempty"`
	Sound              domain.SoundRecord    `json:"sound"`
	UserInfo           domain.UserInfo       `json:"user_info,omitempty"`
	ThreadIdentifier   string                `json:"thread_identifier,omitempty"`
	CategoryIdentifier string                `json:"category_identifier,omitempty"`
	Trigger            *domain.TriggerRecord `json:"trigger,omitempty"`
	Scheduled          bool                  `json:"scheduled"`
	Delivered          bool                  `json:"delivered,omitempty"`
	DeliveryDate       *time.Time            `json:"delivery_date,omitempty"`
}

// FromDomainNotification преобразует доменную модель в HTTP ответ
func FromDomainNotification(n *domain.Notification) *NotificationResponse {
	return &NotificationResponse{
		Identifier:         n.Identifier,
		Title:              n.Title,
		Body:               n.Body,
		Badge:              n.Badge,
		Sound:              domain.NewSoundRecord(n.Sound),
		UserInfo:           n.UserInfo,
		ThreadIdentifier:   n.ThreadIdentifier,
		CategoryIdentifier: n.CategoryIdentifier,
		Trigger:            domain.NewTriggerRecord(n.Trigger),
		Scheduled:          n.Scheduled(),
		Delivered:          n.Delivered,
		DeliveryDate:       n.DeliveryDate,
	}
}

// NotificationListResponse список уведомлений
type NotificationListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	Count         int                     `json:"count"`
}

// FromDomainNotifications преобразует список доменных уведомлений
func FromDomainNotifications(notifications []*domain.Notification) *NotificationListResponse {
	items := make([]*NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, FromDomainNotification(n))
	}
	return &NotificationListResponse{Notifications: items, Count: len(items)}
}

// GroupRequest HTTP запрос на планирование группы уведомлений
type GroupRequest struct {
	Identifier    string                `json:"identifier,omitempty"`
	Notifications []NotificationRequest `json:"notifications"`
}

// ToDomain преобразует HTTP модель в доменную группу
func (r *GroupRequest) ToDomain() (*domain.NotificationGroup, error) {
	notifications := make([]*domain.Notification, 0, len(r.Notifications))
	for i := range r.Notifications {
		n, err := r.Notifications[i].ToDomain()
		if err != nil {
			return nil, fmt.Errorf("notification %d: %w", i, err)
		}
		notifications = append(notifications, n)
	}
	return domain.NewNotificationGroup(notifications, r.Identifier), nil
}

// GroupResponse HTTP ответ с данными группы
type GroupResponse struct {
	Identifier    string                  `json:"identifier"`
	Count         int                     `json:"count"`
	Notifications []*NotificationResponse `json:"notifications"`
}

// FromDomainGroup преобразует доменную группу в HTTP ответ
func FromDomainGroup(g *domain.NotificationGroup) *GroupResponse {
	list := FromDomainNotifications(g.Notifications)
	return &GroupResponse{
		Identifier:    g.Identifier,
		Count:         list.Count,
		Notifications: list.Notifications,
	}
}
