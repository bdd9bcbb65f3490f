package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/phrazzld/chorely-api/internal/domain"
	"github.com/phrazzld/chorely-api/internal/generation"
)

// ResponseSchema is the JSON shape the model is asked to reply with.
type ResponseSchema struct {
	Suggestions []SuggestionSchema `json:"suggestions"`
}

// SuggestionSchema is one chore in the model reply.
type SuggestionSchema struct {
	Name             string `json:"name"`
	Frequency        string `json:"frequency"`
	ScheduledDay     *int   `json:"scheduled_day,omitempty"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	Reason           string `json:"reason,omitempty"`
}

// parseResponse decodes the model text and converts it to suggestions for
// req.RoomID. Entries that fail task validation are skipped; a reply with no
// usable entries is an error.
func parseResponse(text string, req generation.SuggestionRequest) ([]generation.Suggestion, error) {
	text = stripCodeFence(text)

	var schema ResponseSchema
	if err := json.Unmarshal([]byte(text), &schema); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}
	if len(schema.Suggestions) == 0 {
		return nil, fmt.Errorf("%w: no suggestions in response", generation.ErrInvalidResponse)
	}

	existing := make(map[string]struct{}, len(req.ExistingTasks))
	for _, name := range req.ExistingTasks {
		existing[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}

	suggestions := make([]generation.Suggestion, 0, len(schema.Suggestions))
	for _, s := range schema.Suggestions {
		if len(suggestions) == req.Limit() {
			break
		}
		key := strings.ToLower(strings.TrimSpace(s.Name))
		if _, dup := existing[key]; dup {
			continue
		}

		frequency, err := domain.ParseFrequency(s.Frequency)
		if err != nil {
			continue
		}
		day := s.ScheduledDay
		if frequency == domain.FrequencyDaily {
			day = nil
		}

		// NewTask applies the same validation a created task would get.
		if _, err := domain.NewTask(s.Name, req.RoomID, frequency, day, s.EstimatedMinutes); err != nil {
			continue
		}

		existing[key] = struct{}{}
		suggestions = append(suggestions, generation.Suggestion{
			Name:             strings.TrimSpace(s.Name),
			RoomID:           req.RoomID,
			Frequency:        frequency,
			ScheduledDay:     day,
			EstimatedMinutes: s.EstimatedMinutes,
			Reason:           strings.TrimSpace(s.Reason),
		})
	}

	if len(suggestions) == 0 {
		return nil, fmt.Errorf("%w: no valid suggestions in response", generation.ErrInvalidResponse)
	}
	return suggestions, nil
}

// stripCodeFence removes a surrounding ```json fence some models add despite
// the JSON response MIME type.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
