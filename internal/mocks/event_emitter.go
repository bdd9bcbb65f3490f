package mocks

import (
	"context"

	"github.com/phrazzld/chorely-api/internal/events"
	"github.com/stretchr/testify/mock"
)

// TestifyMockEventEmitter is a mock of events.EventEmitter for use with testify/mock.
type TestifyMockEventEmitter struct {
	mock.Mock
}

var _ events.EventEmitter = (*TestifyMockEventEmitter)(nil)

// EmitEvent is a mock implementation of events.EventEmitter.EmitEvent
func (m *TestifyMockEventEmitter) EmitEvent(ctx context.Context, event *events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
