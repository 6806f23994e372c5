package get_notification

import "github.com/m04kA/SMC-NotificationScheduler/internal/domain"

// Scheduler интерфейс планировщика уведомлений
type Scheduler interface {
	Notification(identifier string) *domain.Notification
}
