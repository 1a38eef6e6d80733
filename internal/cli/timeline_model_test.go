package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/stagehand/internal/db"
	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/repository"
	"github.com/alexanderramin/stagehand/internal/service"
	"github.com/alexanderramin/stagehand/internal/teatest"
	"github.com/alexanderramin/stagehand/internal/testutil"
	"github.com/alexanderramin/stagehand/internal/timeline"
)

type tuiFixture struct {
	app      *App
	phases   *repository.SQLitePhaseRepo
	vehicles *repository.SQLiteVehicleRepo
	assigns  *repository.SQLiteAssignmentRepo
	event    *domain.Event
	seeded   []*domain.Phase
}

// newTUIFixture wires a full App over in-memory SQLite and seeds one
// event with two separated phases.
func newTUIFixture(t *testing.T) *tuiFixture {
	t.Helper()
	ctx := context.Background()
	database := testutil.NewTestDB(t)

	eventRepo := repository.NewSQLiteEventRepo(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	typeRepo := repository.NewSQLitePhaseTypeRepo(database)
	vehicleRepo := repository.NewSQLiteVehicleRepo(database)
	employeeRepo := repository.NewSQLiteEmployeeRepo(database)
	assignRepo := repository.NewSQLiteAssignmentRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	log := zerolog.Nop()

	app := &App{
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
	}

	event := testutil.NewTestEvent("Sommerfest")
	require.NoError(t, eventRepo.Create(ctx, event))
	pt := testutil.NewTestPhaseType("Generic", domain.RoleGeneric, 99)
	require.NoError(t, typeRepo.Create(ctx, pt))

	p1 := testutil.NewTestPhase(event.ID, pt.ID, "Build stage",
		time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	p2 := testutil.NewTestPhase(event.ID, pt.ID, "Soundcheck",
		time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 16, 0, 0, 0, time.UTC))
	require.NoError(t, phaseRepo.Create(ctx, p1))
	require.NoError(t, phaseRepo.Create(ctx, p2))

	return &tuiFixture{
		app:      app,
		phases:   phaseRepo,
		vehicles: vehicleRepo,
		assigns:  assignRepo,
		event:    event,
		seeded:   []*domain.Phase{p1, p2},
	}
}

func (f *tuiFixture) driver(t *testing.T) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newTimelineModel(f.app, f.event.ID), teatest.WithSize(120, 40))
	d.DrainInit()
	return d
}

func model(d *teatest.Driver) timelineModel {
	return d.Model.(timelineModel)
}

func TestTimelineLoadsSchedule(t *testing.T) {
	f := newTUIFixture(t)
	d := f.driver(t)

	view := d.View()
	assert.Contains(t, view, "Sommerfest")
	assert.Contains(t, view, "Build stage")
	assert.Contains(t, view, "Soundcheck")

	m := model(d)
	require.NotNil(t, m.event)
	assert.Len(t, m.phases, 2)
	assert.False(t, m.drafts.Dirty())
}

func TestTimelineKeyboardNudgeRecordsDraft(t *testing.T) {
	f := newTUIFixture(t)
	d := f.driver(t)

	d.PressKey('l')

	m := model(d)
	require.True(t, m.drafts.Dirty())
	w, ok := m.drafts.Window(f.seeded[0].ID)
	require.True(t, ok)
	assert.Equal(t, f.seeded[0].StartTime.Add(15*time.Minute), w.Start)
	assert.Equal(t, f.seeded[0].EndTime.Add(15*time.Minute), w.End)

	// The store has not moved.
	stored, err := f.phases.GetByID(context.Background(), f.seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, f.seeded[0].StartTime, stored.StartTime)
}

func TestTimelineMouseDragMovesPhase(t *testing.T) {
	f := newTUIFixture(t)
	d := f.driver(t)

	m := model(d)
	geom := m.geometry()
	original := f.seeded[0].Window()
	startCell := geom.CellAt(original.Start)
	endCell := geom.CellAt(original.End)
	grabX := labelWidth + (startCell+endCell)/2
	row := phaseRowOffset + 0

	d.Drag(row, grabX, grabX+4, grabX+8)

	m = model(d)
	require.Nil(t, m.drag, "gesture must end on release")
	w, ok := m.drafts.Window(f.seeded[0].ID)
	require.True(t, ok, "release must record a draft")
	assert.Equal(t, original.Duration(), w.Duration(), "move preserves duration")
	assert.True(t, w.Start.After(original.Start), "bar moved right")
	assert.Zero(t, w.Start.Minute()%15, "start snapped to the grid")
}

func TestTimelineMouseResizeEndFloorsAtMinDuration(t *testing.T) {
	f := newTUIFixture(t)
	d := f.driver(t)

	m := model(d)
	geom := m.geometry()
	original := f.seeded[0].Window()
	endCell := geom.CellAt(original.End)
	startCell := geom.CellAt(original.Start)
	row := phaseRowOffset + 0

	// Drag the end handle far left past the start.
	d.Drag(row, labelWidth+endCell, labelWidth+startCell-5)

	m = model(d)
	w, ok := m.drafts.Window(f.seeded[0].ID)
	require.True(t, ok)
	assert.Equal(t, original.Start, w.Start, "resize-end keeps the start fixed")
	assert.Equal(t, original.Start.Add(15*time.Minute), w.End, "end floors at the minimum duration")
}

func TestTimelineEscCancelsDrag(t *testing.T) {
	f := newTUIFixture(t)
	d := f.driver(t)

	m := model(d)
	geom := m.geometry()
	original := f.seeded[0].Window()
	grabX := labelWidth + (geom.CellAt(original.Start)+geom.CellAt(original.End))/2

	d.MouseDown(grabX, phaseRowOffset)
	d.MouseMove(grabX+6, phaseRowOffset)
	require.NotNil(t, model(d).drag)

	d.PressEsc()

	m = model(d)
	assert.Nil(t, m.drag)
	assert.False(t, m.drafts.Dirty(), "a cancelled gesture leaves no draft")
}

func TestTimelineSaveCommitsAndReloads(t *testing.T) {
	f := newTUIFixture(t)
	d := f.driver(t)

	d.PressKey('l')
	d.PressKey('l')
	d.PressKey('s')

	m := model(d)
	assert.False(t, m.drafts.Dirty(), "save clears the draft set")
	assert.Equal(t, "saved", m.status)

	stored, err := f.phases.GetByID(context.Background(), f.seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, f.seeded[0].StartTime.Add(30*time.Minute), stored.StartTime)
}

func TestTimelineReloadDuringSaveKeepsSaveResult(t *testing.T) {
	f := newTUIFixture(t)
	d := f.driver(t)

	d.PressKey('l')
	m := model(d)
	m.saving = true
	m.loadSeq++ // a reload raced the in-flight save
	d.Model = m

	d.Send(windowsSavedMsg{err: nil})

	m = model(d)
	assert.False(t, m.saving, "save completion must reset the saving flag")
	assert.False(t, m.drafts.Dirty(), "committed drafts must not stay marked unsaved")
	assert.Equal(t, "saved", m.status)

	// The save key is live again for the next batch of drafts.
	d.PressKey('l')
	d.PressKey('s')
	assert.Equal(t, "saved", model(d).status)
	stored, err := f.phases.GetByID(context.Background(), f.seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, f.seeded[0].StartTime.Add(15*time.Minute), stored.StartTime)
}

func TestTimelineDiscardRevertsDrafts(t *testing.T) {
	f := newTUIFixture(t)
	d := f.driver(t)

	d.PressKey('l')
	require.True(t, model(d).drafts.Dirty())

	d.PressKey('x')

	m := model(d)
	assert.False(t, m.drafts.Dirty())
	stored, err := f.phases.GetByID(context.Background(), f.seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, f.seeded[0].StartTime, stored.StartTime)
}

func TestTimelineZoomKeys(t *testing.T) {
	f := newTUIFixture(t)
	d := f.driver(t)

	require.Equal(t, timeline.ZoomHours, model(d).zoom)
	d.PressKey('+')
	assert.Equal(t, timeline.ZoomMinutes, model(d).zoom)
	d.PressKey('+')
	assert.Equal(t, timeline.ZoomMinutes, model(d).zoom, "zoom saturates at minutes")
	d.PressKey('-')
	d.PressKey('-')
	assert.Equal(t, timeline.ZoomDays, model(d).zoom)
}

func TestTimelineDragShowsLiveConflict(t *testing.T) {
	f := newTUIFixture(t)
	d := f.driver(t)

	// Drag the first phase onto the second one; separated phases have no
	// conflicts before the gesture.
	m := model(d)
	require.Zero(t, conflictSummary(m.phases, m.conflictSet()))

	geom := m.geometry()
	first := f.seeded[0].Window()
	second := f.seeded[1].Window()
	grabX := labelWidth + (geom.CellAt(first.Start)+geom.CellAt(first.End))/2
	targetX := labelWidth + geom.CellAt(second.Start.Add(time.Hour))

	d.MouseDown(grabX, phaseRowOffset)
	d.MouseMove(targetX, phaseRowOffset)

	m = model(d)
	require.NotNil(t, m.drag)
	assert.Equal(t, 2, conflictSummary(m.phases, m.conflictSet()),
		"an in-flight candidate conflicts live, before any save")

	d.MouseUp(targetX, phaseRowOffset)
}

func TestTimelineHatchesConflictIntersections(t *testing.T) {
	ctx := context.Background()
	f := newTUIFixture(t)

	// Overlaps "Soundcheck" (14:00-16:00) between 15:00 and 16:00.
	clash := testutil.NewTestPhase(f.event.ID, f.seeded[0].PhaseTypeID, "Catering",
		time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 17, 0, 0, 0, time.UTC))
	require.NoError(t, f.phases.Create(ctx, clash))

	d := f.driver(t)
	for _, line := range strings.Split(d.View(), "\n") {
		if strings.Contains(line, "Soundcheck") {
			assert.Contains(t, line, "▒", "the contested span renders hatched")
			assert.Contains(t, line, "█", "the uncontested remainder stays solid")
			return
		}
	}
	t.Fatal("no row rendered for the conflicted phase")
}

func TestTimelineShowsVehicleBookings(t *testing.T) {
	ctx := context.Background()
	f := newTUIFixture(t)

	van := testutil.NewTestVehicle("Sprinter 3")
	require.NoError(t, f.vehicles.Create(ctx, van))

	now := time.Now().UTC()
	booking := &domain.VehicleAssignment{
		ID:            "booking-1",
		PhaseID:       f.seeded[0].ID,
		EventID:       f.event.ID,
		VehicleID:     van.ID,
		AssignedStart: f.seeded[0].StartTime,
		AssignedEnd:   f.seeded[1].EndTime,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, f.assigns.Upsert(ctx, booking))

	d := f.driver(t)
	view := d.View()
	assert.Contains(t, view, "Sprinter 3")
	assert.Contains(t, view, "free", "a booking without cross-event overlap is marked free")

	// A second event booking the same vehicle in the same span flips the
	// marker to double-booked after a reload.
	other := testutil.NewTestEvent("Konkurrenz")
	require.NoError(t, f.app.Events.Create(ctx, other))
	clash := *booking
	clash.ID = "booking-2"
	clash.PhaseID = "other-phase"
	clash.EventID = other.ID
	require.NoError(t, f.assigns.Upsert(ctx, &clash))

	d.PressKey('r')
	assert.Contains(t, d.View(), "double-booked (1)")
}

func TestTimelineStaleLoadResponseIsDropped(t *testing.T) {
	f := newTUIFixture(t)
	d := f.driver(t)

	fresh := model(d).phases
	d.Send(scheduleLoadedMsg{seq: -1, phases: nil, event: nil})

	m := model(d)
	assert.Equal(t, fresh, m.phases, "a response from a superseded request must not apply")
	assert.NotNil(t, m.event)
}
