// Package mocks provides centralized mock implementations for testing.
//
// MockTaskStore is an in-memory store.TaskStore; MockSuggester and
// MockTaskService use function fields so tests override only the calls
// they care about:
//
//	svc := &mocks.MockTaskService{
//	    GetTaskFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
//	        return nil, store.ErrTaskNotFound
//	    },
//	}
package mocks
