package domain

import (
	"time"
)

// TriggerKind тип триггера
type TriggerKind string

const (
	TriggerKindDate     TriggerKind = "date"
	TriggerKindInterval TriggerKind = "interval"
	TriggerKindRegion   TriggerKind = "region"
)

// RepeatCadence периодичность повторения триггера по дате
type RepeatCadence string

const (
	RepeatNone  RepeatCadence = "none"
	RepeatHour  RepeatCadence = "hour"
	RepeatDay   RepeatCadence = "day"
	RepeatWeek  RepeatCadence = "week"
	RepeatMonth RepeatCadence = "month"
)

// IsValid проверяет, что периодичность входит в допустимый набор
func (c RepeatCadence) IsValid() bool {
	switch c {
	case RepeatNone, RepeatHour, RepeatDay, RepeatWeek, RepeatMonth:
		return true
	}
	return false
}

// Trigger описывает момент срабатывания уведомления.
// Набор вариантов закрыт: DateTrigger, IntervalTrigger, RegionTrigger.
type Trigger interface {
	Kind() TriggerKind
	Repeats() bool
	Equal(other Trigger) bool

	sealed()
}

// TriggersEqual сравнивает два триггера с учетом nil
func TriggersEqual(a, b Trigger) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// TruncateSeconds отбрасывает доли секунды
func TruncateSeconds(t time.Time) time.Time {
	return t.Truncate(time.Second)
}

// DateTrigger срабатывает в указанный момент, опционально с повторением
type DateTrigger struct {
	At     time.Time
	Repeat RepeatCadence
}

// NewDateTrigger создает триггер по дате с точностью до секунды
func NewDateTrigger(at time.Time, repeat RepeatCadence) DateTrigger {
	if repeat == "" {
		repeat = RepeatNone
	}
	return DateTrigger{At: TruncateSeconds(at), Repeat: repeat}
}

func (t DateTrigger) Kind() TriggerKind { return TriggerKindDate }

func (t DateTrigger) Repeats() bool { return t.Cadence() != RepeatNone }

// Cadence возвращает периодичность, пустое значение считается RepeatNone
func (t DateTrigger) Cadence() RepeatCadence {
	if t.Repeat == "" {
		return RepeatNone
	}
	return t.Repeat
}

// Equal сравнивает даты с точностью до секунды и периодичность
func (t DateTrigger) Equal(other Trigger) bool {
	o, ok := other.(DateTrigger)
	if !ok {
		return false
	}
	return TruncateSeconds(t.At).Equal(TruncateSeconds(o.At)) && t.Cadence() == o.Cadence()
}

func (DateTrigger) sealed() {}

// IntervalTrigger срабатывает через заданное количество секунд
type IntervalTrigger struct {
	Seconds   float64
	Repeating bool
}

// NewIntervalTrigger создает триггер по интервалу
func NewIntervalTrigger(seconds float64, repeats bool) IntervalTrigger {
	return IntervalTrigger{Seconds: seconds, Repeating: repeats}
}

func (t IntervalTrigger) Kind() TriggerKind { return TriggerKindInterval }

func (t IntervalTrigger) Repeats() bool { return t.Repeating }

// Duration возвращает интервал как time.Duration
func (t IntervalTrigger) Duration() time.Duration {
	return time.Duration(t.Seconds * float64(time.Second))
}

func (t IntervalTrigger) Equal(other Trigger) bool {
	o, ok := other.(IntervalTrigger)
	return ok && t == o
}

func (IntervalTrigger) sealed() {}

// Coordinate географическая точка
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// RegionTrigger срабатывает при входе в круговую область или выходе из нее
type RegionTrigger struct {
	Center        Coordinate
	Radius        float64 // в метрах
	Identifier    string
	NotifyOnEntry bool
	NotifyOnExit  bool
	Repeating     bool
}

func (t RegionTrigger) Kind() TriggerKind { return TriggerKindRegion }

func (t RegionTrigger) Repeats() bool { return t.Repeating }

func (t RegionTrigger) Equal(other Trigger) bool {
	o, ok := other.(RegionTrigger)
	return ok && t == o
}

func (RegionTrigger) sealed() {}
