package recurrence

import (
	"math"
	"time"

	"github.com/phrazzld/chorely-api/internal/domain"
)

// OccurrencesInRange returns every date in [start, end] on which the task
// fires, in strictly increasing order. An inverted range yields an empty
// slice.
func OccurrencesInRange(task *domain.Task, start, end domain.Date) []domain.Date {
	if task == nil || end.Before(start) {
		return []domain.Date{}
	}

	switch task.Frequency {
	case domain.FrequencyDaily:
		return dailyOccurrences(start, end)
	case domain.FrequencyWeekly:
		return weekdayOccurrences(start, end, weekdayOf(task), nil)
	case domain.FrequencyBiWeekly:
		anchor := task.EffectiveAnchor()
		return weekdayOccurrences(start, end, weekdayOf(task), func(d domain.Date) bool {
			return isOnWeek(anchor, d)
		})
	case domain.FrequencyMonthly:
		return monthDayOccurrences(start, end, monthDayOf(task), nil)
	case domain.FrequencyQuarterly:
		anchor := task.EffectiveAnchor()
		return monthDayOccurrences(start, end, monthDayOf(task), func(year int, month time.Month) bool {
			return isOnQuarter(anchor, year, month)
		})
	default:
		return []domain.Date{}
	}
}

// IsDueOn reports whether the task fires on d. It agrees with
// OccurrencesInRange(task, d, d) for every input.
func IsDueOn(task *domain.Task, d domain.Date) bool {
	return len(OccurrencesInRange(task, d, d)) > 0
}

// NextOccurrenceOnOrAfter returns the earliest occurrence >= d within
// horizonDays. When nothing is found it returns d itself; callers should
// treat that as "unknown, recheck later" rather than a real occurrence.
func NextOccurrenceOnOrAfter(task *domain.Task, d domain.Date, horizonDays int) domain.Date {
	if horizonDays <= 0 {
		horizonDays = DefaultSearchHorizonDays
	}
	occurrences := OccurrencesInRange(task, d, d.AddDays(horizonDays))
	if len(occurrences) == 0 {
		return d
	}
	return occurrences[0]
}

func dailyOccurrences(start, end domain.Date) []domain.Date {
	out := make([]domain.Date, 0, start.DaysUntil(end)+1)
	for d := start; !d.After(end); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

// weekdayOccurrences walks from the first matching weekday in steps of seven
// days, keeping the dates accepted by filter (all of them when nil).
func weekdayOccurrences(
	start, end domain.Date,
	weekday time.Weekday,
	filter func(domain.Date) bool,
) []domain.Date {
	out := []domain.Date{}
	offset := mod(int(weekday)-int(start.Weekday()), 7)
	for d := start.AddDays(offset); !d.After(end); d = d.AddDays(7) {
		if filter == nil || filter(d) {
			out = append(out, d)
		}
	}
	return out
}

// monthDayOccurrences visits each month overlapping the range and emits the
// clamped day-of-month when it falls inside the range and the month is
// accepted by filter.
func monthDayOccurrences(
	start, end domain.Date,
	day int,
	filter func(int, time.Month) bool,
) []domain.Date {
	out := []domain.Date{}
	for month := start.FirstOfMonth(); !month.After(end); month = month.AddMonths(1) {
		// Safety bound on the month walk.
		if month.Year() > end.Year()+1 {
			break
		}
		if filter != nil && !filter(month.Year(), month.Month()) {
			continue
		}
		occurrence := clampedDate(month.Year(), month.Month(), day)
		if occurrence.Before(start) || occurrence.After(end) {
			continue
		}
		out = append(out, occurrence)
	}
	return out
}

// isOnWeek reports whether d lies an even number of weeks from anchor.
func isOnWeek(anchor, d domain.Date) bool {
	weeks := int(math.Round(float64(anchor.DaysUntil(d)) / 7))
	return mod(weeks, 2) == 0
}

// isOnQuarter reports whether the month lies a multiple of three months from
// the anchor's month.
func isOnQuarter(anchor domain.Date, year int, month time.Month) bool {
	offset := (year-anchor.Year())*12 + int(month) - int(anchor.Month())
	return mod(mod(offset, 12), 3) == 0
}

// weekdayOf resolves the task's day of week, falling back to the weekday of
// its last known due date.
func weekdayOf(task *domain.Task) time.Weekday {
	if task.ScheduledDay != nil {
		return time.Weekday(mod(*task.ScheduledDay, 7))
	}
	return task.FallbackDate().Weekday()
}

// monthDayOf resolves the task's day of month, falling back to the day of its
// last known due date. Clamping to the real month length happens later.
func monthDayOf(task *domain.Task) int {
	if task.ScheduledDay != nil {
		return *task.ScheduledDay
	}
	return task.FallbackDate().Day()
}

func clampedDate(year int, month time.Month, day int) domain.Date {
	last := domain.DaysInMonth(year, month)
	switch {
	case day < 1:
		day = 1
	case day > last:
		day = last
	}
	return domain.NewDate(year, month, day)
}

// mod is a modulo whose result is always in [0, n).
func mod(a, n int) int {
	return ((a % n) + n) % n
}
