package list_notifications

import "github.com/m04kA/SMC-NotificationScheduler/internal/domain"

// Scheduler интерфейс планировщика уведомлений
type Scheduler interface {
	Notifications() []*domain.Notification
}
