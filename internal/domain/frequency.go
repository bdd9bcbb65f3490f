package domain

import (
	"fmt"
	"strings"
)

// Frequency identifies which recurrence rule applies to a task.
type Frequency string

// Supported frequencies
const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiWeekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
)

// ParseFrequency converts a case-insensitive string into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
	}
	return f, nil
}

// IsValid reports whether f is one of the supported frequencies.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily,
		FrequencyWeekly,
		FrequencyBiWeekly,
		FrequencyMonthly,
		FrequencyQuarterly:
		return true
	default:
		return false
	}
}

// IsWeekBased reports whether the scheduled day is a day of the week.
// These are the frequencies the weekly scheduler balances.
func (f Frequency) IsWeekBased() bool {
	return f == FrequencyWeekly || f == FrequencyBiWeekly
}

// IsMonthBased reports whether the scheduled day is a day of the month.
func (f Frequency) IsMonthBased() bool {
	return f == FrequencyMonthly || f == FrequencyQuarterly
}

// NeedsAnchor reports whether occurrence membership depends on an anchor date.
func (f Frequency) NeedsAnchor() bool {
	return f == FrequencyBiWeekly || f == FrequencyQuarterly
}
