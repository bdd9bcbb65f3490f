package recurrence

import (
	"github.com/phrazzld/chorely-api/internal/domain"
)

// Service defines the interface for recurrence queries.
type Service interface {
	// OccurrencesInRange lists every occurrence in [start, end], inclusive.
	OccurrencesInRange(task *domain.Task, start, end domain.Date) []domain.Date

	// IsDueOn reports whether the task has an occurrence on d.
	IsDueOn(task *domain.Task, d domain.Date) bool

	// NextOccurrenceOnOrAfter returns the first occurrence >= d, or d itself
	// when none exists within the search horizon.
	NextOccurrenceOnOrAfter(task *domain.Task, d domain.Date) domain.Date

	// NextOccurrenceAfter returns the first occurrence strictly after d, with
	// the same fallback policy (returns d+1 when nothing is found).
	NextOccurrenceAfter(task *domain.Task, d domain.Date) domain.Date
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new recurrence service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new recurrence service with custom parameters
func NewServiceWithParams(params *Params) Service {
	if params == nil {
		params = NewDefaultParams()
	}
	return &defaultService{
		params: params,
	}
}

func (s *defaultService) OccurrencesInRange(task *domain.Task, start, end domain.Date) []domain.Date {
	return OccurrencesInRange(task, start, end)
}

func (s *defaultService) IsDueOn(task *domain.Task, d domain.Date) bool {
	return IsDueOn(task, d)
}

func (s *defaultService) NextOccurrenceOnOrAfter(task *domain.Task, d domain.Date) domain.Date {
	return NextOccurrenceOnOrAfter(task, d, s.params.SearchHorizonDays)
}

func (s *defaultService) NextOccurrenceAfter(task *domain.Task, d domain.Date) domain.Date {
	return NextOccurrenceOnOrAfter(task, d.AddDays(1), s.params.SearchHorizonDays)
}
