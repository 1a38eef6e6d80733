package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftSetProjection(t *testing.T) {
	stored := win(t, "2025-06-01T10:00:00Z", "2025-06-01T12:00:00Z")
	edited := win(t, "2025-06-01T09:00:00Z", "2025-06-01T11:30:00Z")

	d := NewDraftSet()
	assert.False(t, d.Dirty())
	assert.Equal(t, stored, d.Effective("p1", stored), "no draft falls through to stored")

	d.Record("p1", edited)
	assert.True(t, d.Dirty())
	assert.Equal(t, edited, d.Effective("p1", stored))
	assert.Equal(t, stored, d.Effective("p2", stored), "other phases unaffected")

	got, ok := d.Window("p1")
	require.True(t, ok)
	assert.Equal(t, edited, got)
}

func TestDraftSetDiscard(t *testing.T) {
	stored := win(t, "2025-06-01T10:00:00Z", "2025-06-01T12:00:00Z")
	edited := win(t, "2025-06-01T09:00:00Z", "2025-06-01T11:30:00Z")

	d := NewDraftSet()
	d.Record("p1", edited)
	d.Record("p2", edited)
	require.Equal(t, 2, d.Len())

	d.Discard()
	assert.False(t, d.Dirty())
	assert.Equal(t, stored, d.Effective("p1", stored))
}

func TestDraftSetRecordReplaces(t *testing.T) {
	first := win(t, "2025-06-01T09:00:00Z", "2025-06-01T10:00:00Z")
	second := win(t, "2025-06-01T11:00:00Z", "2025-06-01T12:00:00Z")

	d := NewDraftSet()
	d.Record("p1", first)
	d.Record("p1", second)

	assert.Equal(t, 1, d.Len())
	got, _ := d.Window("p1")
	assert.Equal(t, second, got)
}

func TestDraftSetWindowsIsACopy(t *testing.T) {
	d := NewDraftSet()
	d.Record("p1", win(t, "2025-06-01T09:00:00Z", "2025-06-01T10:00:00Z"))

	snapshot := d.Windows()
	delete(snapshot, "p1")
	assert.True(t, d.Dirty(), "mutating the snapshot must not touch the set")
}
