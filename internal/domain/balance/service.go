package balance

import (
	"time"

	"github.com/phrazzld/chorely-api/internal/domain"
)

// Service defines the interface for weekly schedule balancing.
type Service interface {
	// Optimize assigns days to week-based tasks. A nil or empty
	// availableDays uses the configured defaults.
	Optimize(tasks []*domain.Task, availableDays []int) []Assignment

	// DayLoads sums estimated minutes per assigned day.
	DayLoads(tasks []*domain.Task, assignments []Assignment) map[int]int

	// AvailableDays resolves requested days the way Optimize does: invalid and
	// repeated values are dropped, and an empty result means the configured days.
	AvailableDays(requested []int) []int
}

type defaultService struct {
	params *Params
}

// NewDefaultService creates a balancing service that uses Monday-Saturday.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a balancing service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	if params == nil || len(params.AvailableDays) == 0 {
		params = NewDefaultParams()
	}
	return &defaultService{params: params}
}

func (s *defaultService) Optimize(tasks []*domain.Task, availableDays []int) []Assignment {
	return Optimize(tasks, s.resolve(availableDays))
}

func (s *defaultService) AvailableDays(requested []int) []int {
	days := s.resolve(requested)
	out := make([]int, len(days))
	for i, d := range days {
		out[i] = int(d)
	}
	return out
}

func (s *defaultService) resolve(requested []int) []time.Weekday {
	days := make([]time.Weekday, 0, len(requested))
	for _, d := range requested {
		days = append(days, time.Weekday(d))
	}
	if normalized := normalizeDays(days); len(normalized) > 0 {
		return normalized
	}
	return s.params.AvailableDays
}

func (s *defaultService) DayLoads(tasks []*domain.Task, assignments []Assignment) map[int]int {
	return DayLoads(tasks, assignments)
}
