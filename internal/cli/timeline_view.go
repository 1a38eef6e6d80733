package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/stagehand/internal/cli/formatter"
	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/timeline"
)

var (
	styleAgenda   = lipgloss.NewStyle().Foreground(formatter.ColorBlue)
	styleConflict = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	styleDraft    = lipgloss.NewStyle().Foreground(formatter.ColorYellow)
	styleNow      = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	styleSelect   = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
)

func (m timelineModel) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return formatter.StyleRed.Render("error: "+m.err.Error()) + "\n" +
			formatter.Dim("press q to quit, r to retry") + "\n"
	}
	if m.event == nil {
		return formatter.Dim("loading schedule...") + "\n"
	}

	geom := m.geometry()
	intervals := m.conflictIntervals()
	conflicted := timeline.Conflicts(intervals)
	details := timeline.ConflictDetails(intervals)

	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render(m.event.Name))
	b.WriteString("  ")
	b.WriteString(formatter.Dim(m.event.Venue))
	b.WriteString("\n")
	b.WriteString(m.metaLine())
	b.WriteString("\n")
	b.WriteString(m.axisLine(geom))
	b.WriteString("\n")
	b.WriteString(m.agendaLine(geom))
	b.WriteString("\n")

	for i, p := range m.phases {
		b.WriteString(m.phaseLine(i, p, geom, conflicted, details))
		b.WriteString("\n")
	}
	if len(m.phases) == 0 {
		b.WriteString(formatter.Dim("  no phases yet, assign a vehicle or add phases"))
		b.WriteString("\n")
	}

	if len(m.bookings) > 0 {
		b.WriteString("\n")
		b.WriteString(formatter.Dim("vehicles"))
		b.WriteString("\n")
		for _, row := range m.bookings {
			b.WriteString(m.bookingLine(row))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m timelineModel) bookingLine(row bookingRow) string {
	label := formatter.StyleFg.Render(padLabel("  " + row.vehicle))
	span := formatter.FormatWindow(row.span)
	switch {
	case row.conflicts < 0:
		return label + span + "  " + formatter.Dim("availability unknown")
	case row.conflicts > 0:
		return label + span + "  " + styleConflict.Render(fmt.Sprintf("double-booked (%d)", row.conflicts))
	default:
		return label + span + "  " + styleNow.Render("free")
	}
}

func (m timelineModel) metaLine() string {
	parts := []string{
		formatter.FormatWindow(m.event.Window()),
		string(m.zoom) + " · grid " + timeline.DurationLabel(m.zoom.Grid()),
		formatter.FormatClock(m.now),
	}
	if n := m.drafts.Len(); n > 0 {
		parts = append(parts, styleDraft.Render(fmt.Sprintf("%d unsaved", n)))
	}
	return formatter.Dim(strings.Join(parts, "  ·  "))
}

// axisLine renders tick labels across the track and the now marker.
func (m timelineModel) axisLine(geom timeline.TrackGeometry) string {
	cells := make([]string, geom.Width)
	for i := range cells {
		cells[i] = " "
	}

	step := axisStep(m.zoom)
	layout := "15:04"
	if m.zoom == timeline.ZoomDays {
		layout = "Mon 15h"
	}
	for t := timeline.Snap(geom.Bounds.Start, step); t.Before(geom.Bounds.End); t = t.Add(step) {
		if t.Before(geom.Bounds.Start) {
			continue
		}
		label := t.Local().Format(layout)
		at := geom.CellAt(t)
		for j, r := range label {
			if at+j >= geom.Width {
				break
			}
			cells[at+j] = formatter.Dim(string(r))
		}
	}

	if m.now.After(geom.Bounds.Start) && m.now.Before(geom.Bounds.End) {
		cells[geom.CellAt(m.now)] = styleNow.Render("▼")
	}

	return strings.Repeat(" ", labelWidth) + strings.Join(cells, "")
}

func axisStep(z timeline.Zoom) time.Duration {
	switch z {
	case timeline.ZoomDays:
		return 6 * time.Hour
	case timeline.ZoomMinutes:
		return 15 * time.Minute
	default:
		return time.Hour
	}
}

// agendaLine renders the event's nominal window as a reference band.
func (m timelineModel) agendaLine(geom timeline.TrackGeometry) string {
	label := padLabel("agenda")
	return formatter.Dim(label) + renderBar(geom, m.event.Window(), styleAgenda, '░')
}

func (m timelineModel) phaseLine(i int, p *domain.Phase, geom timeline.TrackGeometry, conflicted map[string]bool, details map[string][]timeline.Overlap) string {
	w := m.effectiveWindow(p)
	dragging := m.drag != nil && m.drag.PhaseID() == p.ID
	if dragging {
		w = m.drag.Candidate()
	}

	style := lipgloss.NewStyle().Foreground(formatter.ColorFg)
	if p.Color != "" {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color))
	}
	_, drafted := m.drafts.Window(p.ID)
	switch {
	case conflicted[p.ID]:
		style = styleConflict
	case dragging || drafted:
		style = styleDraft
	}

	name := p.Name
	if i == m.selected {
		name = "» " + name
	}
	label := padLabel(name)
	if i == m.selected {
		label = styleSelect.Render(label)
	} else {
		label = formatter.StyleFg.Render(label)
	}

	if conflicted[p.ID] {
		return label + renderConflictBar(geom, w, details[p.ID], style)
	}
	return label + renderBar(geom, w, style, '█')
}

// renderBar paints a window onto the track. Zero-duration windows still
// get one marker cell so they stay grabbable.
func renderBar(geom timeline.TrackGeometry, w timeline.Window, style lipgloss.Style, fill rune) string {
	var b strings.Builder
	start := geom.CellAt(w.Start)
	end := geom.CellAt(w.End)
	for x := 0; x < geom.Width; x++ {
		if x >= start && x <= end {
			b.WriteRune(fill)
		} else {
			b.WriteRune(' ')
		}
	}
	return styleCells(b.String(), style)
}

// renderConflictBar paints a conflicted window with the contested spans
// hatched, so the eye finds the exact intersection, not just the row.
func renderConflictBar(geom timeline.TrackGeometry, w timeline.Window, overlaps []timeline.Overlap, style lipgloss.Style) string {
	cells := make([]rune, geom.Width)
	start := geom.CellAt(w.Start)
	end := geom.CellAt(w.End)
	for x := 0; x < geom.Width; x++ {
		if x >= start && x <= end {
			cells[x] = '█'
		} else {
			cells[x] = ' '
		}
	}
	for _, ov := range overlaps {
		os := geom.CellAt(ov.Window.Start)
		oe := geom.CellAt(ov.Window.End)
		for x := os; x <= oe; x++ {
			if x >= 0 && x < geom.Width && cells[x] == '█' {
				cells[x] = '▒'
			}
		}
	}
	return styleCells(string(cells), style)
}

// styleCells styles the filled run without styling the surrounding
// padding, keeping column math exact for mouse hit testing.
func styleCells(line string, style lipgloss.Style) string {
	trimmedLeft := strings.TrimLeft(line, " ")
	left := len([]rune(line)) - len([]rune(trimmedLeft))
	trimmed := strings.TrimRight(trimmedLeft, " ")
	right := len([]rune(trimmedLeft)) - len([]rune(trimmed))
	return strings.Repeat(" ", left) + style.Render(trimmed) + strings.Repeat(" ", right)
}

func padLabel(s string) string {
	r := []rune(s)
	if len(r) > labelWidth-1 {
		r = r[:labelWidth-1]
	}
	return string(r) + strings.Repeat(" ", labelWidth-len(r))
}

func (m timelineModel) footer() string {
	help := "drag phases with the mouse · edges resize · h/l nudge · H/L resize · +/- zoom · s save · x discard · q quit"
	line := formatter.Dim(help)
	if m.status != "" {
		line += "\n" + statusStyle(m.status).Render(m.status)
	}
	return line
}

func statusStyle(status string) lipgloss.Style {
	if strings.HasPrefix(status, "save failed") {
		return formatter.StyleRed
	}
	return formatter.StyleGreen
}

// conflictSummary counts phases currently overlapping, for tests and
// the inspect command.
func conflictSummary(phases []*domain.Phase, conflicted map[string]bool) int {
	n := 0
	for _, p := range phases {
		if conflicted[p.ID] {
			n++
		}
	}
	return n
}
