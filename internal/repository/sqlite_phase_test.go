package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEventAndTypes(t *testing.T) (context.Context, *SQLitePhaseRepo, *domain.Event, map[domain.PhaseRole]*domain.PhaseType) {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	eventRepo := NewSQLiteEventRepo(database)
	typeRepo := NewSQLitePhaseTypeRepo(database)
	phaseRepo := NewSQLitePhaseRepo(database)

	event := testutil.NewTestEvent("Open Air Setup")
	require.NoError(t, eventRepo.Create(ctx, event))

	types := make(map[domain.PhaseRole]*domain.PhaseType)
	for _, pt := range testutil.NewLogisticsPhaseTypes() {
		require.NoError(t, typeRepo.Create(ctx, pt))
		types[pt.Role] = pt
	}
	return ctx, phaseRepo, event, types
}

func TestPhaseRepoCreateAndGet(t *testing.T) {
	ctx, repo, event, types := seedEventAndTypes(t)

	phase := testutil.NewTestPhase(event.ID, types[domain.RoleLoading].ID, "Loading",
		testutil.TestEventStart.Add(-150*time.Minute), testutil.TestEventStart.Add(-90*time.Minute),
		testutil.WithSequenceOrder(1), testutil.WithColor("#ffaa00"))
	require.NoError(t, repo.Create(ctx, phase))

	got, err := repo.GetByID(ctx, phase.ID)
	require.NoError(t, err)
	assert.Equal(t, "Loading", got.Name)
	assert.Equal(t, phase.StartTime.UTC(), got.StartTime)
	assert.Equal(t, phase.EndTime.UTC(), got.EndTime)
	assert.Equal(t, 1, got.SequenceOrder)
	assert.Equal(t, "#ffaa00", got.Color)
}

func TestPhaseRepoGetMissing(t *testing.T) {
	ctx, repo, _, _ := seedEventAndTypes(t)

	_, err := repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPhaseRepoListByEventOrder(t *testing.T) {
	ctx, repo, event, types := seedEventAndTypes(t)

	unloading := testutil.NewTestPhase(event.ID, types[domain.RoleUnloading].ID, "Unloading",
		testutil.TestEventEnd.Add(time.Hour), testutil.TestEventEnd.Add(2*time.Hour),
		testutil.WithSequenceOrder(5))
	loading := testutil.NewTestPhase(event.ID, types[domain.RoleLoading].ID, "Loading",
		testutil.TestEventStart.Add(-2*time.Hour), testutil.TestEventStart.Add(-time.Hour),
		testutil.WithSequenceOrder(1))
	require.NoError(t, repo.Create(ctx, unloading))
	require.NoError(t, repo.Create(ctx, loading))

	phases, err := repo.ListByEvent(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, phases, 2)
	assert.Equal(t, "Loading", phases[0].Name, "ordered by sequence_order")
	assert.Equal(t, "Unloading", phases[1].Name)
}

func TestPhaseRepoUpdateWindow(t *testing.T) {
	ctx, repo, event, types := seedEventAndTypes(t)

	phase := testutil.NewTestPhase(event.ID, types[domain.RoleEvent].ID, "Show",
		testutil.TestEventStart, testutil.TestEventEnd)
	require.NoError(t, repo.Create(ctx, phase))

	phase.StartTime = phase.StartTime.Add(-30 * time.Minute)
	phase.EndTime = phase.EndTime.Add(time.Hour)
	phase.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, phase))

	got, err := repo.GetByID(ctx, phase.ID)
	require.NoError(t, err)
	assert.Equal(t, phase.StartTime.Truncate(time.Second), got.StartTime)
	assert.Equal(t, phase.EndTime.Truncate(time.Second), got.EndTime)
}

func TestPhaseRepoUpdateMissing(t *testing.T) {
	ctx, repo, event, types := seedEventAndTypes(t)

	phase := testutil.NewTestPhase(event.ID, types[domain.RoleEvent].ID, "Ghost",
		testutil.TestEventStart, testutil.TestEventEnd)
	// Never created.
	err := repo.Update(ctx, phase)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPhaseRepoDeleteAndCascade(t *testing.T) {
	ctx, repo, event, types := seedEventAndTypes(t)

	phase := testutil.NewTestPhase(event.ID, types[domain.RoleEvent].ID, "Show",
		testutil.TestEventStart, testutil.TestEventEnd)
	require.NoError(t, repo.Create(ctx, phase))
	require.NoError(t, repo.Delete(ctx, phase.ID))

	_, err := repo.GetByID(ctx, phase.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
