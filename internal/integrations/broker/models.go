package broker

import (
	"time"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

// EventNotificationFired тип события о сработавшем уведомлении
const EventNotificationFired = "notification.fired"

// Meta метаданные сообщения
type Meta struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	OccurredAt    time.Time `json:"occurred_at"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// Envelope конверт сообщения в брокере
type Envelope struct {
	Meta Meta                     `json:"meta"`
	Data domain.FiredNotification `json:"data"`
}
