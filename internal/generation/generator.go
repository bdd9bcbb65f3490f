package generation

import (
	"context"

	"github.com/phrazzld/chorely-api/internal/domain"
)

// DefaultMaxSuggestions caps a request that does not set Max.
const DefaultMaxSuggestions = 5

// SuggestionRequest describes the room a caller wants chore ideas for.
type SuggestionRequest struct {
	// RoomID is the room the suggested chores belong to.
	RoomID string
	// ExistingTasks are the names of chores the room already has.
	ExistingTasks []string
	// Max caps the number of suggestions returned.
	Max int
}

// Limit returns Max, or DefaultMaxSuggestions when Max is not positive.
func (r SuggestionRequest) Limit() int {
	if r.Max <= 0 {
		return DefaultMaxSuggestions
	}
	return r.Max
}

// Suggestion is a proposed chore. It is not persisted until a caller creates
// a task from it.
type Suggestion struct {
	Name             string           `json:"name"`
	RoomID           string           `json:"room_id"`
	Frequency        domain.Frequency `json:"frequency"`
	ScheduledDay     *int             `json:"scheduled_day,omitempty"`
	EstimatedMinutes int              `json:"estimated_minutes"`
	Reason           string           `json:"reason,omitempty"`
}

// Suggester defines the boundary between the application core and an
// external AI service that proposes chores.
type Suggester interface {
	// SuggestTasks returns up to req.Limit() chore suggestions for req.RoomID.
	SuggestTasks(ctx context.Context, req SuggestionRequest) ([]Suggestion, error)
}
