package cron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

func TestNextOccurrence(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		at      time.Time
		cadence domain.RepeatCadence
		want    time.Time
	}{
		{"future date unchanged", now.Add(time.Minute), domain.RepeatDay, now.Add(time.Minute)},
		{"hourly", now.Add(-90 * time.Minute), domain.RepeatHour, now.Add(30 * time.Minute)},
		{"hourly exactly now", now.Add(-time.Hour), domain.RepeatHour, now.Add(time.Hour)},
		{"daily", time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC), domain.RepeatDay, time.Date(2026, 10, 20, 9, 30, 0, 0, time.UTC)},
		{"weekly", time.Date(2026, 10, 12, 8, 0, 0, 0, time.UTC), domain.RepeatWeek, time.Date(2026, 10, 26, 8, 0, 0, 0, time.UTC)},
		{"monthly later this month", time.Date(2026, 9, 25, 8, 0, 0, 0, time.UTC), domain.RepeatMonth, time.Date(2026, 10, 25, 8, 0, 0, 0, time.UTC)},
		{"monthly next month", time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC), domain.RepeatMonth, time.Date(2026, 11, 10, 8, 0, 0, 0, time.UTC)},
		{"monthly clamps day", time.Date(2026, 1, 31, 8, 0, 0, 0, time.UTC), domain.RepeatMonth, time.Date(2026, 10, 31, 8, 0, 0, 0, time.UTC)},
		{"none keeps past date", now.Add(-time.Hour), domain.RepeatNone, now.Add(-time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextOccurrence(tt.at, tt.cadence, now))
		})
	}
}

func TestAddMonths(t *testing.T) {
	at := time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 2, 28, 10, 0, 0, 0, time.UTC), addMonths(at, 1))
	assert.Equal(t, time.Date(2026, 4, 30, 10, 0, 0, 0, time.UTC), addMonths(at, 3))
	assert.Equal(t, time.Date(2027, 1, 31, 10, 0, 0, 0, time.UTC), addMonths(at, 12))
}

func TestMonthDayFilter(t *testing.T) {
	tests := []struct {
		name    string
		trigger domain.Trigger
		want    int
	}{
		{"monthly early day", domain.NewDateTrigger(time.Date(2026, 1, 28, 9, 0, 0, 0, time.UTC), domain.RepeatMonth), 0},
		{"monthly 30th", domain.NewDateTrigger(time.Date(2026, 1, 30, 9, 0, 0, 0, time.UTC), domain.RepeatMonth), 30},
		{"monthly 31st", domain.NewDateTrigger(time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC), domain.RepeatMonth), 31},
		{"weekly 31st", domain.NewDateTrigger(time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC), domain.RepeatWeek), 0},
		{"interval", domain.NewIntervalTrigger(120, true), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, monthDayFilter(tt.trigger))
		})
	}
}
