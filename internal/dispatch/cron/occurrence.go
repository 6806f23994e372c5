package cron

import (
	"time"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

// maxCronMonthDay последний день месяца, который gocron принимает в Month()
const maxCronMonthDay = 28

// monthDayFilter возвращает день месяца ежемесячного триггера, если он позже maxCronMonthDay, иначе 0
func monthDayFilter(trigger domain.Trigger) int {
	t, ok := trigger.(domain.DateTrigger)
	if !ok || t.Cadence() != domain.RepeatMonth {
		return 0
	}
	if day := t.At.UTC().Day(); day > maxCronMonthDay {
		return day
	}
	return 0
}

// nextOccurrence возвращает первый момент повторения at по cadence, который позже now
func nextOccurrence(at time.Time, cadence domain.RepeatCadence, now time.Time) time.Time {
	if at.After(now) {
		return at
	}

	switch cadence {
	case domain.RepeatHour, domain.RepeatDay, domain.RepeatWeek:
		step := cadenceStep(cadence)
		steps := now.Sub(at)/step + 1
		return at.Add(steps * step)

	case domain.RepeatMonth:
		months := (now.Year()-at.Year())*12 + int(now.Month()-at.Month())
		if months < 1 {
			months = 1
		}
		next := addMonths(at, months)
		for !next.After(now) {
			months++
			next = addMonths(at, months)
		}
		return next
	}

	return at
}

func cadenceStep(cadence domain.RepeatCadence) time.Duration {
	switch cadence {
	case domain.RepeatHour:
		return time.Hour
	case domain.RepeatDay:
		return 24 * time.Hour
	case domain.RepeatWeek:
		return 7 * 24 * time.Hour
	}
	return 0
}

// addMonths сдвигает дату на months месяцев; день, которого нет в месяце, прижимается к последнему
func addMonths(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	day := t.Day()
	if last := daysIn(first); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

func daysIn(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
