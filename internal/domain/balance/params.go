package balance

import "time"

// DefaultAvailableDays is Monday through Saturday. Sunday is left free.
var DefaultAvailableDays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
}

// Params defines the configurable parameters of the weekly scheduler.
type Params struct {
	// AvailableDays are the weekdays tasks may be assigned to. Order matters:
	// ties between equally loaded days go to the earliest day in this list.
	AvailableDays []time.Weekday
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	days := make([]time.Weekday, len(DefaultAvailableDays))
	copy(days, DefaultAvailableDays)
	return &Params{AvailableDays: days}
}

// NewParams creates a Params instance from integer weekdays (0=Sunday).
// Invalid values are dropped; an empty result keeps the defaults.
func NewParams(availableDays []int) *Params {
	params := NewDefaultParams()
	days := make([]time.Weekday, 0, len(availableDays))
	for _, d := range availableDays {
		days = append(days, time.Weekday(d))
	}
	if normalized := normalizeDays(days); len(normalized) > 0 {
		params.AvailableDays = normalized
	}
	return params
}

// normalizeDays drops values outside Sunday..Saturday and repeated days,
// keeping the first occurrence of each.
func normalizeDays(days []time.Weekday) []time.Weekday {
	seen := make(map[time.Weekday]bool, len(days))
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}
