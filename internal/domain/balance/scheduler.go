package balance

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/chorely-api/internal/domain"
)

// Assignment is the day chosen for one task.
type Assignment struct {
	TaskID       uuid.UUID `json:"task_id"`
	ScheduledDay int       `json:"scheduled_day"`
}

// roomGroup is an indivisible bundle of tasks that must share a day.
type roomGroup struct {
	tasks   []*domain.Task
	minutes int
}

// Optimize assigns each weekly and biweekly task a day from availableDays.
// Other frequencies are ignored and get no assignment. An empty
// availableDays falls back to DefaultAvailableDays.
//
// The result holds exactly one assignment per week-based input task, grouped
// by room and in the order the groups were placed.
func Optimize(tasks []*domain.Task, availableDays []time.Weekday) []Assignment {
	days := normalizeDays(availableDays)
	if len(days) == 0 {
		days = DefaultAvailableDays
	}

	groups := groupByRoom(tasks)
	if len(groups) == 0 {
		return []Assignment{}
	}

	// Heaviest first; the stable sort keeps first-appearance order on ties.
	slices.SortStableFunc(groups, func(a, b *roomGroup) int {
		return b.minutes - a.minutes
	})

	loads := make([]int, len(days))
	assignments := make([]Assignment, 0, len(tasks))
	for _, group := range groups {
		idx := lightestDay(loads)
		loads[idx] += group.minutes
		for _, task := range group.tasks {
			assignments = append(assignments, Assignment{
				TaskID:       task.ID,
				ScheduledDay: int(days[idx]),
			})
		}
	}

	return assignments
}

// DayLoads sums estimated minutes per assigned day.
func DayLoads(tasks []*domain.Task, assignments []Assignment) map[int]int {
	minutes := make(map[uuid.UUID]int, len(tasks))
	for _, task := range tasks {
		if task != nil {
			minutes[task.ID] = task.EstimatedMinutes
		}
	}

	loads := make(map[int]int)
	for _, a := range assignments {
		loads[a.ScheduledDay] += minutes[a.TaskID]
	}
	return loads
}

// groupByRoom collects week-based tasks into room groups in order of first
// appearance. Tasks without a room each form their own group.
func groupByRoom(tasks []*domain.Task) []*roomGroup {
	var groups []*roomGroup
	byRoom := make(map[string]*roomGroup)
	seen := make(map[uuid.UUID]bool, len(tasks))

	for _, task := range tasks {
		if task == nil || !task.Frequency.IsWeekBased() {
			continue
		}
		if task.ID != uuid.Nil {
			if seen[task.ID] {
				continue
			}
			seen[task.ID] = true
		}

		group, ok := byRoom[task.RoomID]
		if !ok || task.RoomID == "" {
			group = &roomGroup{}
			groups = append(groups, group)
			if task.RoomID != "" {
				byRoom[task.RoomID] = group
			}
		}
		group.tasks = append(group.tasks, task)
		group.minutes += task.EstimatedMinutes
	}

	return groups
}

// lightestDay returns the index of the minimum load, earliest on ties.
func lightestDay(loads []int) int {
	best := 0
	for i := 1; i < len(loads); i++ {
		if loads[i] < loads[best] {
			best = i
		}
	}
	return best
}
