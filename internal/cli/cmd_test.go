package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/stagehand/internal/db"
	"github.com/alexanderramin/stagehand/internal/repository"
	"github.com/alexanderramin/stagehand/internal/service"
	"github.com/alexanderramin/stagehand/internal/testutil"
	"github.com/alexanderramin/stagehand/internal/timeline"
)

// newTestApp wires an App with every service over one in-memory DB.
func newTestApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	eventRepo := repository.NewSQLiteEventRepo(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	typeRepo := repository.NewSQLitePhaseTypeRepo(database)
	vehicleRepo := repository.NewSQLiteVehicleRepo(database)
	employeeRepo := repository.NewSQLiteEmployeeRepo(database)
	assignRepo := repository.NewSQLiteAssignmentRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	log := zerolog.Nop()

	return &App{
		Events:       service.NewEventService(eventRepo),
		Phases:       service.NewPhaseService(phaseRepo, uow, log),
		Types:        service.NewPhaseTypeService(typeRepo),
		Vehicles:     service.NewVehicleService(vehicleRepo),
		Crew:         service.NewEmployeeService(employeeRepo),
		Assignments:  service.NewAssignmentService(eventRepo, phaseRepo, typeRepo, assignRepo, log),
		Availability: service.NewAvailabilityService(assignRepo, log),
		Durations:    timeline.Durations{LoadingMin: 60, PreparationMin: 30, TravelMin: 60},
		DefaultZoom:  timeline.ZoomHours,
		Log:          log,
		// Tests run headless; commands must never open a wizard.
		IsInteractive: func() bool { return false },
	}
}

func run(t *testing.T, root *cobra.Command, args ...string) error {
	t.Helper()
	root.SetArgs(args)
	return root.Execute()
}

func TestEventAddListRemove(t *testing.T) {
	app := newTestApp(t)
	root := NewRootCmd(app)

	require.NoError(t, run(t, root,
		"event", "add", "--name", "Messe Aufbau", "--venue", "Halle 4",
		"--start", "2025-06-01 10:00", "--end", "2025-06-01 18:00"))

	events, err := app.Events.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Messe Aufbau", events[0].Name)

	require.NoError(t, run(t, root, "event", "remove", events[0].ID))
	events, err = app.Events.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventAddRejectsMissingFlagsHeadless(t *testing.T) {
	app := newTestApp(t)
	root := NewRootCmd(app)
	root.SilenceErrors = true
	root.SilenceUsage = true

	err := run(t, root, "event", "add")
	assert.Error(t, err)
}

func TestAssignVehicleEndToEnd(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	root := NewRootCmd(app)

	require.NoError(t, run(t, root, "type", "init"))
	require.NoError(t, run(t, root,
		"event", "add", "--name", "Gala", "--start", "2025-06-01 10:00", "--end", "2025-06-01 18:00"))
	require.NoError(t, run(t, root, "vehicle", "add", "--name", "Sprinter", "--kind", "van"))

	events, err := app.Events.List(ctx)
	require.NoError(t, err)
	vehicles, err := app.Vehicles.List(ctx)
	require.NoError(t, err)

	require.NoError(t, run(t, root,
		"assign", "vehicle", "--event", events[0].ID, "--vehicle", vehicles[0].ID))

	phases, err := app.Phases.ListByEvent(ctx, events[0].ID)
	require.NoError(t, err)
	assert.Len(t, phases, 4, "logistics phases laid out")

	assignments, err := app.Assignments.ListByEvent(ctx, events[0].ID)
	require.NoError(t, err)
	assert.Len(t, assignments, 1)
}

func TestAssignVehicleWithoutCatalogFails(t *testing.T) {
	app := newTestApp(t)
	root := NewRootCmd(app)
	root.SilenceErrors = true
	root.SilenceUsage = true

	require.NoError(t, run(t, root,
		"event", "add", "--name", "Gala", "--start", "2025-06-01 10:00", "--end", "2025-06-01 18:00"))

	events, err := app.Events.List(context.Background())
	require.NoError(t, err)

	err = run(t, root, "assign", "vehicle", "--event", events[0].ID, "--vehicle", "v1")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrMissingPhaseTypes)
}

func TestImportScheduleFile(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	root := NewRootCmd(app)

	path := filepath.Join(t.TempDir(), "tour.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"phase_types": [{"ref": "pt-show", "name": "Show", "role": "event", "priority": 50}],
		"vehicles": [{"ref": "v1", "name": "Sprinter", "kind": "van", "seats": 3}],
		"crew": [{"ref": "c1", "first_name": "Anna", "last_name": "Berg", "role": "driver"}],
		"events": [{
			"name": "Stadtfest", "venue": "Marktplatz",
			"start": "2026-07-10 18:00", "end": "2026-07-10 23:00",
			"phases": [{"type_ref": "pt-show", "name": "Show", "start": "2026-07-10 18:00", "end": "2026-07-10 23:00"}]
		}]
	}`), 0o644))

	require.NoError(t, run(t, root, "import", path))

	events, err := app.Events.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Stadtfest", events[0].Name)

	phases, err := app.Phases.ListByEvent(ctx, events[0].ID)
	require.NoError(t, err)
	require.Len(t, phases, 1)

	types, err := app.Types.List(ctx)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, types[0].ID, phases[0].PhaseTypeID)

	vehicles, err := app.Vehicles.List(ctx)
	require.NoError(t, err)
	assert.Len(t, vehicles, 1)
	crew, err := app.Crew.List(ctx)
	require.NoError(t, err)
	assert.Len(t, crew, 1)
}

func TestImportRejectsInvalidFileBeforeWriting(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	root := NewRootCmd(app)
	root.SilenceErrors = true
	root.SilenceUsage = true

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"vehicles": [{"ref": "v1", "name": "Sprinter", "kind": "van"}],
		"events": [{
			"name": "Stadtfest",
			"start": "2026-07-10 23:00", "end": "2026-07-10 18:00"
		}]
	}`), 0o644))

	err := run(t, root, "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 error(s)")

	// Nothing was written, not even the valid vehicle.
	vehicles, err := app.Vehicles.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, vehicles)
}

func TestImportDryRunWritesNothing(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	root := NewRootCmd(app)

	path := filepath.Join(t.TempDir(), "tour.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"vehicles": [{"ref": "v1", "name": "Sprinter", "kind": "van"}],
		"events": []
	}`), 0o644))

	require.NoError(t, run(t, root, "import", path, "--dry-run"))

	vehicles, err := app.Vehicles.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, vehicles)
}

func TestResolveEventIDPrefixAndName(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)

	e := testutil.NewTestEvent("Stadtfest")
	require.NoError(t, app.Events.Create(ctx, e))

	id, err := resolveEventID(ctx, app, e.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, e.ID, id)

	id, err = resolveEventID(ctx, app, "stadtfest")
	require.NoError(t, err)
	assert.Equal(t, e.ID, id)

	_, err = resolveEventID(ctx, app, "nope")
	assert.Error(t, err)
}
