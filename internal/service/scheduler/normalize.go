package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

const (
	// MaximumAllowedNotifications лимит ожидающих уведомлений, совпадает с лимитом платформы
	MaximumAllowedNotifications = 64

	// MinimumInterval минимальный интервал для IntervalTrigger
	MinimumInterval = 60 * time.Second
)

// Settings параметры планировщика
type Settings struct {
	MaximumAllowedNotifications int
	MinimumInterval             time.Duration
	// AllowSilent разрешает уведомления без звука (незаданный Sound)
	AllowSilent bool
}

// DefaultSettings возвращает параметры по умолчанию
func DefaultSettings() Settings {
	return Settings{
		MaximumAllowedNotifications: MaximumAllowedNotifications,
		MinimumInterval:             MinimumInterval,
	}
}

func (s Settings) withDefaults() Settings {
	if s.MaximumAllowedNotifications <= 0 {
		s.MaximumAllowedNotifications = MaximumAllowedNotifications
	}
	// Ниже ограничения платформы интервал не опускается
	if s.MinimumInterval < MinimumInterval {
		s.MinimumInterval = MinimumInterval
	}
	return s
}

// normalizeTrigger приводит триггер к виду, который принимает система доставки.
// Даты в прошлом не сдвигаются: отказ остается за системой доставки.
func normalizeTrigger(trigger domain.Trigger, minimum time.Duration) (domain.Trigger, error) {
	switch t := trigger.(type) {
	case domain.DateTrigger:
		if t.At.IsZero() {
			return nil, fmt.Errorf("%w: date trigger without date", ErrInvalidTrigger)
		}
		cadence := t.Cadence()
		if !cadence.IsValid() {
			return nil, fmt.Errorf("%w: unknown repeat cadence %q", ErrInvalidTrigger, t.Repeat)
		}
		return domain.NewDateTrigger(t.At, cadence), nil

	case domain.IntervalTrigger:
		if math.IsNaN(t.Seconds) || math.IsInf(t.Seconds, 0) {
			return nil, fmt.Errorf("%w: interval is not a finite number", ErrInvalidTrigger)
		}
		if t.Seconds < minimum.Seconds() {
			return nil, fmt.Errorf("%w: interval %.0fs is below minimum %.0fs", ErrInvalidTrigger, t.Seconds, minimum.Seconds())
		}
		return t, nil

	case domain.RegionTrigger:
		if !t.NotifyOnEntry && !t.NotifyOnExit {
			return nil, fmt.Errorf("%w: region %q notifies neither on entry nor on exit", ErrInvalidTrigger, t.Identifier)
		}
		return t, nil

	case nil:
		return nil, fmt.Errorf("%w: trigger is not set", ErrInvalidTrigger)
	}

	return nil, fmt.Errorf("%w: unsupported trigger %T", ErrInvalidTrigger, trigger)
}

// validateContent проверяет содержимое уведомления
func validateContent(n *domain.Notification, allowSilent bool) error {
	if n.Identifier == "" {
		return fmt.Errorf("%w: empty identifier", ErrInvalidContent)
	}
	if !n.Sound.IsValid() && !(allowSilent && !n.Sound.IsSet()) {
		return fmt.Errorf("%w: sound %s is not valid", ErrInvalidContent, n.Sound)
	}
	return nil
}
