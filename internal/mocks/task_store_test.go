package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/chorely-api/internal/domain"
	"github.com/phrazzld/chorely-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockTaskStoreIsolation(t *testing.T) {
	ctx := context.Background()
	task, err := domain.NewTask("Dust", "office", domain.FrequencyWeekly, domain.IntPtr(2), 10)
	require.NoError(t, err)

	s := NewMockTaskStore()
	require.NoError(t, s.Create(ctx, task))
	assert.ErrorIs(t, s.Create(ctx, task), store.ErrDuplicate)

	task.Name = "changed outside"
	got, err := s.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dust", got.Name)

	got.MarkCompleted(domain.MustParseDate("2024-01-02"))
	again, err := s.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, again.CompletedDates)

	require.NoError(t, s.Update(ctx, got))
	again, err = s.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, again.CompletedDates, 1)

	list, err := s.List(ctx, store.TaskFilter{RoomID: "office"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.Delete(ctx, task.ID))
	assert.ErrorIs(t, s.Delete(ctx, task.ID), store.ErrTaskNotFound)
	_, err = s.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.Zero(t, s.Len())
}
