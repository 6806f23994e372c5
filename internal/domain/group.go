package domain

import "github.com/google/uuid"

// NotificationGroup упорядоченный набор уведомлений, планируемых и отменяемых вместе
type NotificationGroup struct {
	Identifier    string
	Notifications []*Notification
}

// NewNotificationGroup создает группу, пустой identifier заменяется на UUID
func NewNotificationGroup(notifications []*Notification, identifier string) *NotificationGroup {
	if identifier == "" {
		identifier = uuid.New().String()
	}
	return &NotificationGroup{
		Identifier:    identifier,
		Notifications: notifications,
	}
}

// Count количество уведомлений в группе
func (g *NotificationGroup) Count() int {
	return len(g.Notifications)
}
