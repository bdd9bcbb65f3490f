package recurrence

import (
	"testing"

	"github.com/phrazzld/chorely-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceWithParams(t *testing.T) {
	t.Parallel()

	t.Run("nil params fall back to defaults", func(t *testing.T) {
		svc := NewServiceWithParams(nil)
		require.NotNil(t, svc)

		task := taskWith(domain.FrequencyWeekly, domain.IntPtr(3), "")
		assert.Equal(t, "2024-01-10", svc.NextOccurrenceOnOrAfter(task, date("2024-01-04")).String())
	})

	t.Run("custom horizon limits the search", func(t *testing.T) {
		svc := NewServiceWithParams(NewParams(3))
		task := taskWith(domain.FrequencyWeekly, domain.IntPtr(3), "")
		assert.Equal(t, "2024-01-04", svc.NextOccurrenceOnOrAfter(task, date("2024-01-04")).String())
	})
}

func TestNewParams(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultSearchHorizonDays, NewDefaultParams().SearchHorizonDays)
	assert.Equal(t, 30, NewParams(30).SearchHorizonDays)
	assert.Equal(t, DefaultSearchHorizonDays, NewParams(0).SearchHorizonDays)
	assert.Equal(t, DefaultSearchHorizonDays, NewParams(-5).SearchHorizonDays)
}

func TestServiceDelegatesToEngine(t *testing.T) {
	t.Parallel()

	svc := NewDefaultService()
	task := taskWith(domain.FrequencyMonthly, domain.IntPtr(31), "")

	occurrences := svc.OccurrencesInRange(task, date("2024-02-01"), date("2024-04-30"))
	require.Len(t, occurrences, 3)
	assert.Equal(t, "2024-02-29", occurrences[0].String())
	assert.Equal(t, "2024-03-31", occurrences[1].String())
	assert.Equal(t, "2024-04-30", occurrences[2].String())

	assert.True(t, svc.IsDueOn(task, date("2024-02-29")))
	assert.False(t, svc.IsDueOn(task, date("2024-02-28")))
}

func TestNextOccurrenceAfter(t *testing.T) {
	t.Parallel()

	svc := NewDefaultService()
	weekly := taskWith(domain.FrequencyWeekly, domain.IntPtr(3), "")

	// Completing today's occurrence moves on to next week.
	assert.Equal(t, "2024-01-10", svc.NextOccurrenceAfter(weekly, date("2024-01-03")).String())

	daily := taskWith(domain.FrequencyDaily, nil, "")
	assert.Equal(t, "2024-01-04", svc.NextOccurrenceAfter(daily, date("2024-01-03")).String())
}
