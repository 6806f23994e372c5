package get_group

import "github.com/m04kA/SMC-NotificationScheduler/internal/domain"

// Scheduler интерфейс планировщика уведомлений
type Scheduler interface {
	Group(identifier string) *domain.NotificationGroup
}
