package recurrence

// DefaultSearchHorizonDays bounds the forward search of NextOccurrenceOnOrAfter.
const DefaultSearchHorizonDays = 366

// Params defines the configurable parameters of the recurrence engine.
type Params struct {
	// SearchHorizonDays is how far NextOccurrenceOnOrAfter looks ahead before
	// giving up and returning the query date.
	SearchHorizonDays int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		SearchHorizonDays: DefaultSearchHorizonDays,
	}
}

// NewParams creates a Params instance, overriding defaults with any
// positive values supplied.
func NewParams(searchHorizonDays int) *Params {
	params := NewDefaultParams()
	if searchHorizonDays > 0 {
		params.SearchHorizonDays = searchHorizonDays
	}
	return params
}
