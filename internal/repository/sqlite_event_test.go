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

func TestEventRepoRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteEventRepo(database)

	event := testutil.NewTestEvent("Festival Rig")
	require.NoError(t, repo.Create(ctx, event))

	got, err := repo.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Festival Rig", got.Name)
	assert.Equal(t, testutil.TestEventStart, got.StartTime)
	assert.Equal(t, testutil.TestEventEnd, got.EndTime)
	assert.Equal(t, domain.EventPlanned, got.Status)
}

func TestEventRepoStoresUTC(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteEventRepo(database)

	berlin := time.FixedZone("CEST", 2*3600)
	event := testutil.NewTestEvent("Zoned", testutil.WithEventWindow(
		time.Date(2025, 6, 1, 12, 0, 0, 0, berlin),
		time.Date(2025, 6, 1, 20, 0, 0, 0, berlin),
	))
	require.NoError(t, repo.Create(ctx, event))

	got, err := repo.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.TestEventStart, got.StartTime, "12:00+02:00 is 10:00Z")
}

func TestEventRepoListOrderedByStart(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteEventRepo(database)

	later := testutil.NewTestEvent("Later", testutil.WithEventWindow(
		testutil.TestEventStart.AddDate(0, 0, 7), testutil.TestEventEnd.AddDate(0, 0, 7)))
	require.NoError(t, repo.Create(ctx, later))
	require.NoError(t, repo.Create(ctx, testutil.NewTestEvent("Sooner")))

	events, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Sooner", events[0].Name)
}

func TestEventRepoDeleteCascadesPhases(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	eventRepo := NewSQLiteEventRepo(database)
	typeRepo := NewSQLitePhaseTypeRepo(database)
	phaseRepo := NewSQLitePhaseRepo(database)

	event := testutil.NewTestEvent("Doomed")
	require.NoError(t, eventRepo.Create(ctx, event))
	pt := testutil.NewTestPhaseType("Event", domain.RoleEvent, 30)
	require.NoError(t, typeRepo.Create(ctx, pt))
	phase := testutil.NewTestPhase(event.ID, pt.ID, "Show", testutil.TestEventStart, testutil.TestEventEnd)
	require.NoError(t, phaseRepo.Create(ctx, phase))

	require.NoError(t, eventRepo.Delete(ctx, event.ID))

	phases, err := phaseRepo.ListByEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, phases, "phases cascade with their event")
}

func TestVehicleAndEmployeeRepos(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	vehicles := NewSQLiteVehicleRepo(database)
	employees := NewSQLiteEmployeeRepo(database)

	v := testutil.NewTestVehicle("Sprinter")
	require.NoError(t, vehicles.Create(ctx, v))
	gotV, err := vehicles.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleVan, gotV.Kind)
	assert.Equal(t, 3, gotV.Seats)

	e := testutil.NewTestEmployee("Ada", "Lovelace")
	require.NoError(t, employees.Create(ctx, e))
	gotE, err := employees.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", gotE.FullName())

	list, err := employees.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
