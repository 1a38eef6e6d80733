package timeline

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConflictsFlagsBothSides(t *testing.T) {
	intervals := []Interval{
		{ID: "setup", Window: win(t, "2025-06-01T09:00:00Z", "2025-06-01T11:00:00Z")},
		{ID: "sound", Window: win(t, "2025-06-01T10:30:00Z", "2025-06-01T12:00:00Z")},
		{ID: "strike", Window: win(t, "2025-06-01T14:00:00Z", "2025-06-01T15:00:00Z")},
	}

	got := Conflicts(intervals)
	assert.True(t, got["setup"])
	assert.True(t, got["sound"])
	assert.False(t, got["strike"])
}

func TestConflictsAdjacencyIsClean(t *testing.T) {
	intervals := []Interval{
		{ID: "a", Window: win(t, "2025-06-01T09:00:00Z", "2025-06-01T10:00:00Z")},
		{ID: "b", Window: win(t, "2025-06-01T10:00:00Z", "2025-06-01T11:00:00Z")},
	}

	got := Conflicts(intervals)
	assert.False(t, got["a"])
	assert.False(t, got["b"])
}

func TestConflictsExcludesSelf(t *testing.T) {
	got := Conflicts([]Interval{
		{ID: "only", Window: win(t, "2025-06-01T09:00:00Z", "2025-06-01T10:00:00Z")},
	})
	assert.False(t, got["only"], "a single interval cannot conflict with itself")
}

func TestConflictsZeroDuration(t *testing.T) {
	intervals := []Interval{
		{ID: "marker", Window: win(t, "2025-06-01T09:30:00Z", "2025-06-01T09:30:00Z")},
		{ID: "block", Window: win(t, "2025-06-01T09:00:00Z", "2025-06-01T10:00:00Z")},
	}

	got := Conflicts(intervals)
	assert.False(t, got["marker"])
	assert.False(t, got["block"])
}

func TestConflictsEmptyInput(t *testing.T) {
	assert.Empty(t, Conflicts(nil))
}

func TestConflictDetailsIntersection(t *testing.T) {
	intervals := []Interval{
		{ID: "setup", Window: win(t, "2025-06-01T09:00:00Z", "2025-06-01T11:00:00Z")},
		{ID: "sound", Window: win(t, "2025-06-01T10:30:00Z", "2025-06-01T12:00:00Z")},
	}

	details := ConflictDetails(intervals)
	require.Len(t, details["setup"], 1)
	require.Len(t, details["sound"], 1)

	assert.Equal(t, "sound", details["setup"][0].PeerID)
	assert.Equal(t, win(t, "2025-06-01T10:30:00Z", "2025-06-01T11:00:00Z"), details["setup"][0].Window)
	assert.Equal(t, "setup", details["sound"][0].PeerID)
	assert.Equal(t, details["setup"][0].Window, details["sound"][0].Window)
}

// Property: the boolean map and the detail map must agree on which
// intervals conflict, for any input.
func TestConflictsAgreeWithDetails(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.Intn(8)
		intervals := make([]Interval, n)
		for i := range intervals {
			start := base.Add(time.Duration(rng.Intn(20*60)) * time.Minute)
			intervals[i] = Interval{
				ID:     string(rune('a' + i)),
				Window: Window{Start: start, End: start.Add(time.Duration(rng.Intn(4*60)) * time.Minute)},
			}
		}

		flags := Conflicts(intervals)
		details := ConflictDetails(intervals)
		for _, iv := range intervals {
			assert.Equal(t, flags[iv.ID], len(details[iv.ID]) > 0,
				"trial %d: flag and details disagree for %s", trial, iv.ID)
		}
	}
}
