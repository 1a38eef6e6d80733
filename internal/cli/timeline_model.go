package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/timeline"
)

const (
	labelWidth = 18
	// Rows above the first phase row: title, meta, axis, agenda band.
	phaseRowOffset = 4
)

// scheduleLoadedMsg delivers an async reload. Seq ties the response to
// the request that issued it; stale responses are dropped so a slow
// query can never overwrite fresher state.
type scheduleLoadedMsg struct {
	seq      int
	event    *domain.Event
	phases   []*domain.Phase
	bookings []bookingRow
	err      error
}

// bookingRow is a vehicle booking prepared for rendering: resolved
// vehicle name, reservation span, and how many other events hold the
// vehicle in an overlapping span. A negative conflict count means the
// availability lookup failed and the state is unknown.
type bookingRow struct {
	vehicle   string
	span      timeline.Window
	conflicts int
}

// windowsSavedMsg reports the outcome of a draft commit. Unlike loads,
// a save result is never stale: the store either took the batch or it
// did not, regardless of reloads issued in between.
type windowsSavedMsg struct {
	err error
}

// clockTickMsg advances the cosmetic now marker.
type clockTickMsg time.Time

// timelineModel is the interactive schedule editor for one event.
// All window edits accumulate in a draft set; nothing touches the
// store until the user saves.
type timelineModel struct {
	app     *App
	eventID string

	event    *domain.Event
	phases   []*domain.Phase
	bookings []bookingRow
	drafts   *timeline.DraftSet
	drag     *timeline.DragSession
	zoom     timeline.Zoom
	keys     timelineKeyMap

	width    int
	height   int
	selected int
	now      time.Time
	status   string
	loadSeq  int
	saving   bool
	quitting bool
	err      error
}

func newTimelineModel(app *App, eventID string) timelineModel {
	zoom := app.DefaultZoom
	if !zoom.Valid() {
		zoom = timeline.ZoomHours
	}
	return timelineModel{
		app:     app,
		eventID: eventID,
		drafts:  timeline.NewDraftSet(),
		zoom:    zoom,
		keys:    newTimelineKeyMap(),
		width:   100,
		height:  30,
		now:     time.Now(),
	}
}

func (m timelineModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(m.loadSeq), clockTick())
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func (m timelineModel) loadCmd(seq int) tea.Cmd {
	app, eventID := m.app, m.eventID
	return func() tea.Msg {
		ctx := context.Background()
		event, err := app.Events.GetByID(ctx, eventID)
		if err != nil {
			return scheduleLoadedMsg{seq: seq, err: err}
		}
		phases, err := app.Phases.ListByEvent(ctx, eventID)
		if err != nil {
			return scheduleLoadedMsg{seq: seq, err: err}
		}
		return scheduleLoadedMsg{
			seq:      seq,
			event:    event,
			phases:   phases,
			bookings: loadBookings(ctx, app, eventID),
		}
	}
}

// loadBookings resolves the event's vehicle reservations and probes
// each one for cross-event double-bookings. Lookup failures degrade to
// "unknown" rather than failing the reload; orphaned bookings keep
// their raw id as the label.
func loadBookings(ctx context.Context, app *App, eventID string) []bookingRow {
	assignments, err := app.Assignments.ListByEvent(ctx, eventID)
	if err != nil || len(assignments) == 0 {
		return nil
	}
	names := vehicleNames(ctx, app)

	rows := make([]bookingRow, 0, len(assignments))
	for _, a := range assignments {
		name := names[a.VehicleID]
		if name == "" {
			name = a.VehicleID
		}
		span := timeline.Window{Start: a.AssignedStart, End: a.AssignedEnd}
		row := bookingRow{vehicle: name, span: span}
		conflicts, err := app.Availability.Check(ctx, a.VehicleID, span, eventID)
		if err != nil {
			row.conflicts = -1
		} else {
			row.conflicts = len(conflicts)
		}
		rows = append(rows, row)
	}
	return rows
}

func (m timelineModel) saveCmd(drafts map[string]timeline.Window) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		return windowsSavedMsg{err: app.Phases.CommitWindows(context.Background(), drafts)}
	}
}

func (m timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case scheduleLoadedMsg:
		if msg.seq != m.loadSeq {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.event = msg.event
		m.phases = msg.phases
		m.bookings = msg.bookings
		m.err = nil
		if m.selected >= len(m.phases) {
			m.selected = 0
		}
		return m, nil

	case windowsSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
			return m, nil
		}
		m.drafts.Discard()
		m.status = "saved"
		m.loadSeq++
		return m, m.loadCmd(m.loadSeq)

	case clockTickMsg:
		m.now = time.Time(msg)
		return m, clockTick()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

func (m timelineModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		if m.drag != nil {
			m.drag.Cancel()
			m.drag = nil
			m.status = "drag cancelled"
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.phases)-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.NudgeLeft):
		return m.nudgeSelected(-1, false), nil
	case key.Matches(msg, m.keys.NudgeRight):
		return m.nudgeSelected(1, false), nil
	case key.Matches(msg, m.keys.ShrinkEnd):
		return m.nudgeSelected(-1, true), nil
	case key.Matches(msg, m.keys.GrowEnd):
		return m.nudgeSelected(1, true), nil

	case key.Matches(msg, m.keys.ZoomIn):
		m.zoom = m.zoom.In()
		return m, nil
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoom = m.zoom.Out()
		return m, nil

	case key.Matches(msg, m.keys.Save):
		if m.drafts.Dirty() && !m.saving {
			m.saving = true
			m.status = "saving..."
			return m, m.saveCmd(m.drafts.Windows())
		}
		return m, nil

	case key.Matches(msg, m.keys.Discard):
		if m.drafts.Dirty() {
			m.drafts.Discard()
			m.status = "drafts discarded"
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.loadSeq++
		return m, m.loadCmd(m.loadSeq)
	}

	return m, nil
}

// nudgeSelected moves (or resizes, when resizeEnd) the selected phase by
// one grid step and records the result as a draft. Keyboard fallback for
// terminals without mouse support.
func (m timelineModel) nudgeSelected(steps int, resizeEnd bool) timelineModel {
	if m.selected < 0 || m.selected >= len(m.phases) {
		return m
	}
	p := m.phases[m.selected]
	w := m.drafts.Effective(p.ID, p.Window())
	delta := time.Duration(steps) * m.zoom.Grid()

	if resizeEnd {
		end := w.End.Add(delta)
		if min := w.Start.Add(m.zoom.MinDuration()); end.Before(min) {
			end = min
		}
		w.End = end
	} else {
		w = timeline.Window{Start: w.Start.Add(delta), End: w.End.Add(delta)}
	}
	m.drafts.Record(p.ID, w)
	m.status = ""
	return m
}

func (m timelineModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.zoom = m.zoom.In()
			return m, nil
		case tea.MouseButtonWheelDown:
			m.zoom = m.zoom.Out()
			return m, nil
		case tea.MouseButtonLeft:
			return m.startDrag(msg.X, msg.Y), nil
		}

	case tea.MouseActionMotion:
		if m.drag != nil {
			// Clamp instead of ignoring so dragging past the frame still
			// pins the bar to the track edge.
			m.drag.Move(clampTrackX(msg.X-labelWidth, m.trackWidth()))
		}
		return m, nil

	case tea.MouseActionRelease:
		if m.drag != nil {
			id, w := m.drag.Release()
			m.drafts.Record(id, w)
			m.drag = nil
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

// startDrag begins a gesture when the press lands on a phase bar. A
// press on the bar's first or last cell grabs a resize handle; anywhere
// inside grabs the whole bar.
func (m timelineModel) startDrag(x, y int) timelineModel {
	row := y - phaseRowOffset
	if row < 0 || row >= len(m.phases) || m.event == nil {
		return m
	}
	tx, ok := m.trackX(x)
	if !ok {
		return m
	}

	p := m.phases[row]
	geom := m.geometry()
	w := m.drafts.Effective(p.ID, p.Window())
	startCell := geom.CellAt(w.Start)
	endCell := geom.CellAt(w.End)
	if tx < startCell || tx > endCell {
		return m
	}

	mode := timeline.DragMove
	switch {
	case tx == startCell && endCell > startCell:
		mode = timeline.DragResizeStart
	case tx == endCell:
		mode = timeline.DragResizeEnd
	}

	m.selected = row
	m.drag = timeline.StartDrag(p.ID, mode, w, tx, geom, m.zoom)
	return m
}

func clampTrackX(x, width int) int {
	if x < 0 {
		return 0
	}
	if x >= width {
		return width - 1
	}
	return x
}

// trackX converts a terminal column to a track-local cell.
func (m timelineModel) trackX(x int) (int, bool) {
	tx := x - labelWidth
	if tx < 0 || tx >= m.trackWidth() {
		return 0, false
	}
	return tx, true
}

func (m timelineModel) trackWidth() int {
	w := m.width - labelWidth - 1
	if w < 10 {
		w = 10
	}
	return w
}

// geometry computes the visible track: the envelope of the agenda
// window and every effective phase window, padded by one grid step so
// bars never touch the frame.
func (m timelineModel) geometry() timeline.TrackGeometry {
	grid := m.zoom.Grid()
	windows := make([]timeline.Window, 0, len(m.phases))
	for _, p := range m.phases {
		w := m.effectiveWindow(p)
		if m.drag != nil && m.drag.PhaseID() == p.ID {
			w = m.drag.Candidate()
		}
		windows = append(windows, w)
	}
	bounds := timeline.Bounds(m.event.Window(), windows)
	bounds.Start = timeline.Snap(bounds.Start.Add(-grid), grid)
	bounds.End = timeline.Snap(bounds.End.Add(grid), grid)
	return timeline.TrackGeometry{Width: m.trackWidth(), Bounds: bounds}
}

// effectiveWindow is the phase window with any draft applied. The
// in-flight drag candidate is layered on top by the renderer only, so
// cancelling a drag cleanly falls back to the draft.
func (m timelineModel) effectiveWindow(p *domain.Phase) timeline.Window {
	return m.drafts.Effective(p.ID, p.Window())
}

// conflictIntervals collects the effective window of every phase with
// the in-flight drag candidate layered on top, so dragging a phase out
// of (or into) a collision updates the marking live.
func (m timelineModel) conflictIntervals() []timeline.Interval {
	intervals := make([]timeline.Interval, 0, len(m.phases))
	for _, p := range m.phases {
		w := m.effectiveWindow(p)
		if m.drag != nil && m.drag.PhaseID() == p.ID {
			w = m.drag.Candidate()
		}
		intervals = append(intervals, timeline.Interval{ID: p.ID, Window: w})
	}
	return intervals
}

func (m timelineModel) conflictSet() map[string]bool {
	return timeline.Conflicts(m.conflictIntervals())
}
