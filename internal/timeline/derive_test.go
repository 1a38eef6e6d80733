package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveLogisticsWindowsScenario(t *testing.T) {
	// Event 10:00-18:00, loading 60m, preparation 30m, travel 60m.
	// Logistics must start 150m before the event: 07:30.
	eventStart := at(t, "2025-06-01T10:00:00Z")
	eventEnd := at(t, "2025-06-01T18:00:00Z")
	d := Durations{LoadingMin: 60, PreparationMin: 30, TravelMin: 60}

	logStart := DefaultLogisticsStart(eventStart, d)
	assert.Equal(t, at(t, "2025-06-01T07:30:00Z"), logStart)

	lw, err := DeriveLogisticsWindows(eventStart, eventEnd, d, logStart)
	require.NoError(t, err)

	assert.Equal(t, at(t, "2025-06-01T07:30:00Z"), lw.Loading.Start)
	assert.Equal(t, at(t, "2025-06-01T08:30:00Z"), lw.Loading.End)
	assert.Equal(t, at(t, "2025-06-01T09:00:00Z"), lw.Preparation.End)
	assert.Equal(t, at(t, "2025-06-01T10:00:00Z"), lw.TravelOut.End, "travel out must land on event start")
	assert.Equal(t, at(t, "2025-06-01T18:00:00Z"), lw.TravelBack.Start)
	assert.Equal(t, at(t, "2025-06-01T19:00:00Z"), lw.TravelBack.End)
	assert.Equal(t, at(t, "2025-06-01T20:00:00Z"), lw.Unloading.End, "unloading mirrors loading duration")
}

func TestDeriveLogisticsWindowsContiguity(t *testing.T) {
	eventStart := at(t, "2025-06-01T10:00:00Z")
	eventEnd := at(t, "2025-06-01T18:00:00Z")

	tests := []struct {
		name string
		d    Durations
	}{
		{"typical", Durations{LoadingMin: 60, PreparationMin: 30, TravelMin: 60}},
		{"zero preparation", Durations{LoadingMin: 45, PreparationMin: 0, TravelMin: 90}},
		{"all zero", Durations{}},
		{"long haul", Durations{LoadingMin: 120, PreparationMin: 60, TravelMin: 480}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lw, err := DeriveLogisticsWindows(eventStart, eventEnd, tt.d, DefaultLogisticsStart(eventStart, tt.d))
			require.NoError(t, err)

			assert.Equal(t, lw.Loading.End, lw.Preparation.Start)
			assert.Equal(t, lw.Preparation.End, lw.TravelOut.Start)
			assert.Equal(t, eventStart, lw.TravelOut.End)
			assert.Equal(t, eventEnd, lw.TravelBack.Start)
			assert.Equal(t, lw.TravelBack.End, lw.Unloading.Start)

			assert.Equal(t, lw.Loading.Start, lw.Span().Start)
			assert.Equal(t, lw.Unloading.End, lw.Span().End)
		})
	}
}

func TestDeriveLogisticsWindowsInconsistentAnchorSurvives(t *testing.T) {
	// A caller-chosen logistics start that doesn't leave room for the
	// lead time is not "fixed": travel out still ends at event start,
	// even if that makes it inverted. The conflict detector deals with it.
	eventStart := at(t, "2025-06-01T10:00:00Z")
	eventEnd := at(t, "2025-06-01T18:00:00Z")
	d := Durations{LoadingMin: 60, PreparationMin: 30, TravelMin: 60}

	lw, err := DeriveLogisticsWindows(eventStart, eventEnd, d, at(t, "2025-06-01T09:30:00Z"))
	require.NoError(t, err)

	assert.Equal(t, at(t, "2025-06-01T11:00:00Z"), lw.Preparation.End)
	assert.Equal(t, eventStart, lw.TravelOut.End)
	assert.True(t, lw.TravelOut.End.Before(lw.TravelOut.Start), "inverted travel window is surfaced as-is")
}

func TestDeriveLogisticsWindowsLoadingWithPreparation(t *testing.T) {
	eventStart := at(t, "2025-06-01T10:00:00Z")
	d := Durations{LoadingMin: 60, PreparationMin: 30, TravelMin: 60}

	lw, err := DeriveLogisticsWindows(eventStart, at(t, "2025-06-01T18:00:00Z"), d, DefaultLogisticsStart(eventStart, d))
	require.NoError(t, err)

	merged := lw.LoadingWithPreparation()
	assert.Equal(t, at(t, "2025-06-01T07:30:00Z"), merged.Start)
	assert.Equal(t, at(t, "2025-06-01T09:00:00Z"), merged.End)
}

func TestDeriveLogisticsWindowsRejectsBadInput(t *testing.T) {
	eventStart := at(t, "2025-06-01T10:00:00Z")
	eventEnd := at(t, "2025-06-01T18:00:00Z")

	_, err := DeriveLogisticsWindows(eventStart, eventEnd, Durations{LoadingMin: -1}, eventStart)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = DeriveLogisticsWindows(eventStart, eventStart.Add(-time.Hour), Durations{}, eventStart)
	assert.ErrorIs(t, err, ErrInvalidEventWindow)
}
