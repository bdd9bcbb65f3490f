package generation

import "testing"

func TestSuggestionRequestLimit(t *testing.T) {
	t.Parallel()

	cases := map[int]int{-1: DefaultMaxSuggestions, 0: DefaultMaxSuggestions, 1: 1, 12: 12}
	for max, want := range cases {
		if got := (SuggestionRequest{Max: max}).Limit(); got != want {
			t.Errorf("Limit() with Max=%d = %d, want %d", max, got, want)
		}
	}
}
