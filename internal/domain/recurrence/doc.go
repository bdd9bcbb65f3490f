// Package recurrence answers occurrence questions for a single task: whether
// it is due on a date, every date it fires within a range, and the next date
// it fires on or after a given day.
//
// All functions are pure calendar arithmetic over (frequency, scheduled day,
// anchor date). They never mutate the task and never fail; missing or
// out-of-range inputs fall back to documented defaults.
package recurrence
