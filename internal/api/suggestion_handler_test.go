package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/phrazzld/chorely-api/internal/api"
	"github.com/phrazzld/chorely-api/internal/api/shared"
	"github.com/phrazzld/chorely-api/internal/domain"
	"github.com/phrazzld/chorely-api/internal/generation"
	"github.com/phrazzld/chorely-api/internal/mocks"
	"github.com/phrazzld/chorely-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	var got generation.SuggestionRequest
	svc := &mocks.MockTaskService{
		SuggestTasksFn: func(ctx context.Context, req generation.SuggestionRequest) ([]generation.Suggestion, error) {
			got = req
			return []generation.Suggestion{{
				Name:             "Clean oven",
				RoomID:           req.RoomID,
				Frequency:        domain.FrequencyMonthly,
				ScheduledDay:     domain.IntPtr(1),
				EstimatedMinutes: 45,
			}}, nil
		},
	}

	rr := doRequest(t, newTestRouter(svc), http.MethodPost, "/api/suggestions", map[string]any{
		"room_id": "kitchen",
		"max":     3,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, generation.SuggestionRequest{RoomID: "kitchen", Max: 3}, got)

	resp := decodeBody[api.SuggestionsResponse](t, rr)
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "Clean oven", resp.Suggestions[0].Name)
}

func TestSuggestErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing room",
			body:       map[string]any{"max": 3},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid room_id: required field",
		},
		{
			name:       "too many",
			body:       map[string]any{"room_id": "kitchen", "max": 50},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid max: too large",
		},
		{
			name:       "disabled",
			body:       map[string]any{"room_id": "kitchen"},
			err:        service.ErrSuggestionsDisabled,
			wantStatus: http.StatusServiceUnavailable,
			wantError:  "Task suggestions are not configured",
		},
		{
			name:       "blocked",
			body:       map[string]any{"room_id": "kitchen"},
			err:        generation.ErrContentBlocked,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "The suggestion request was blocked by content filters",
		},
		{
			name:       "garbled response",
			body:       map[string]any{"room_id": "kitchen"},
			err:        generation.ErrInvalidResponse,
			wantStatus: http.StatusBadGateway,
			wantError:  "The suggestion provider returned an unusable response",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mocks.MockTaskService{
				SuggestTasksFn: func(ctx context.Context, req generation.SuggestionRequest) ([]generation.Suggestion, error) {
					return nil, tc.err
				},
			}

			rr := doRequest(t, newTestRouter(svc), http.MethodPost, "/api/suggestions", tc.body)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantError, decodeBody[shared.ErrorResponse](t, rr).Error)
		})
	}
}
