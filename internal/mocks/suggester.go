package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/chorely-api/internal/generation"
)

// MockSuggester implements generation.Suggester for testing.
type MockSuggester struct {
	SuggestTasksFn func(ctx context.Context, req generation.SuggestionRequest) ([]generation.Suggestion, error)

	// Default response values
	Suggestions []generation.Suggestion
	Err         error

	mu       sync.Mutex
	Requests []generation.SuggestionRequest
}

var _ generation.Suggester = (*MockSuggester)(nil)

// SuggestTasks implements generation.Suggester.
func (m *MockSuggester) SuggestTasks(
	ctx context.Context,
	req generation.SuggestionRequest,
) ([]generation.Suggestion, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()

	if m.SuggestTasksFn != nil {
		return m.SuggestTasksFn(ctx, req)
	}
	return m.Suggestions, m.Err
}
