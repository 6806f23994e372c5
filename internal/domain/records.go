package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-NotificationScheduler/pkg/ptr"
)

var (
	// ErrUnknownTrigger возвращается при разборе записи триггера неизвестного типа
	ErrUnknownTrigger = errors.New("domain: unknown trigger type")

	// ErrUnknownSound возвращается при разборе записи звука неизвестного вида
	ErrUnknownSound = errors.New("domain: unknown sound kind")
)

// TriggerRecord сериализуемое представление триггера (JSON API и хранилище)
type TriggerRecord struct {
	Type             TriggerKind   `json:"type"`
	Date             *time.Time    `json:"date,omitempty"`
	RepeatsEvery     RepeatCadence `json:"repeats_every,omitempty"`
	Seconds          float64       `json:"seconds,omitempty"`
	Repeats          bool          `json:"repeats,omitempty"`
	Latitude         float64       `json:"latitude,omitempty"`
	Longitude        float64       `json:"longitude,omitempty"`
	Radius           float64       `json:"radius,omitempty"`
	RegionIdentifier string        `json:"region_identifier,omitempty"`
	NotifyOnEntry    bool          `json:"notify_on_entry,omitempty"`
	NotifyOnExit     bool          `json:"notify_on_exit,omitempty"`
}

// NewTriggerRecord преобразует триггер в запись
func NewTriggerRecord(t Trigger) *TriggerRecord {
	switch v := t.(type) {
	case DateTrigger:
		return &TriggerRecord{Type: TriggerKindDate, Date: ptr.Ptr(v.At), RepeatsEvery: v.Cadence()}
	case IntervalTrigger:
		return &TriggerRecord{Type: TriggerKindInterval, Seconds: v.Seconds, Repeats: v.Repeating}
	case RegionTrigger:
		return &TriggerRecord{
			Type:             TriggerKindRegion,
			Latitude:         v.Center.Latitude,
			Longitude:        v.Center.Longitude,
			Radius:           v.Radius,
			RegionIdentifier: v.Identifier,
			NotifyOnEntry:    v.NotifyOnEntry,
			NotifyOnExit:     v.NotifyOnExit,
			Repeats:          v.Repeating,
		}
	}
	return nil
}

// Trigger восстанавливает триггер из записи
func (r *TriggerRecord) Trigger() (Trigger, error) {
	switch r.Type {
	case TriggerKindDate:
		if r.Date == nil {
			return nil, fmt.Errorf("%w: date trigger without date", ErrUnknownTrigger)
		}
		return NewDateTrigger(*r.Date, r.RepeatsEvery), nil
	case TriggerKindInterval:
		return NewIntervalTrigger(r.Seconds, r.Repeats), nil
	case TriggerKindRegion:
		return RegionTrigger{
			Center:        Coordinate{Latitude: r.Latitude, Longitude: r.Longitude},
			Radius:        r.Radius,
			Identifier:    r.RegionIdentifier,
			NotifyOnEntry: r.NotifyOnEntry,
			NotifyOnExit:  r.NotifyOnExit,
			Repeating:     r.Repeats,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTrigger, r.Type)
}

// SoundRecord сериализуемое представление звука
type SoundRecord struct {
	Kind string `json:"kind"`
	Name string `json:"name,omitempty"`
}

const (
	soundKindUnset  = "unset"
	soundKindNamed  = "named"
	soundKindSystem = "system"
)

// NewSoundRecord преобразует звук в запись
func NewSoundRecord(s Sound) SoundRecord {
	switch s.kind {
	case soundNamed:
		return SoundRecord{Kind: soundKindNamed, Name: s.name}
	case soundSystemDefault:
		return SoundRecord{Kind: soundKindSystem}
	}
	return SoundRecord{Kind: soundKindUnset}
}

// Sound восстанавливает звук из записи
func (r SoundRecord) Sound() (Sound, error) {
	switch r.Kind {
	case soundKindNamed:
		return NamedSound(r.Name), nil
	case soundKindSystem:
		return SystemDefaultSound(), nil
	case soundKindUnset, "":
		return Sound{}, nil
	}
	return Sound{}, fmt.Errorf("%w: %q", ErrUnknownSound, r.Kind)
}
