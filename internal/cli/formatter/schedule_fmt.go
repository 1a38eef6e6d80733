package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/timeline"
)

const (
	dayLayout  = "2006-01-02"
	timeLayout = "2006-01-02 15:04"
)

// FormatWindow renders a half-open window compactly, folding the date
// when both ends fall on the same day.
func FormatWindow(w timeline.Window) string {
	start := w.Start.Local()
	end := w.End.Local()
	if start.Format(dayLayout) == end.Format(dayLayout) {
		return fmt.Sprintf("%s – %s", start.Format(timeLayout), end.Format("15:04"))
	}
	return fmt.Sprintf("%s – %s", start.Format(timeLayout), end.Format(timeLayout))
}

// FormatEventList renders the event table.
func FormatEventList(events []*domain.Event) string {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			shortID(e.ID),
			e.Name,
			e.Venue,
			FormatWindow(e.Window()),
			StatusIndicator(e.Status),
		})
	}
	return RenderTable([]string{"ID", "NAME", "VENUE", "WINDOW", "STATUS"}, rows)
}

// FormatPhaseList renders the phases of one event in sequence order,
// with conflict markers from the given set.
func FormatPhaseList(phases []*domain.Phase, conflicted map[string]bool) string {
	rows := make([][]string, 0, len(phases))
	for _, p := range phases {
		marker := ""
		if conflicted[p.ID] {
			marker = StyleRed.Render("✗ overlap")
		}
		rows = append(rows, []string{
			shortID(p.ID),
			p.Name,
			FormatWindow(p.Window()),
			timeline.DurationLabel(p.Window().Duration()),
			marker,
		})
	}
	return RenderTable([]string{"ID", "PHASE", "WINDOW", "LENGTH", ""}, rows)
}

// FormatVehicleList renders the vehicle table.
func FormatVehicleList(vehicles []*domain.Vehicle) string {
	rows := make([][]string, 0, len(vehicles))
	for _, v := range vehicles {
		rows = append(rows, []string{
			shortID(v.ID),
			v.Name,
			v.Plate,
			string(v.Kind),
			fmt.Sprintf("%d", v.Seats),
		})
	}
	return RenderTable([]string{"ID", "NAME", "PLATE", "KIND", "SEATS"}, rows)
}

// FormatEmployeeList renders the crew table.
func FormatEmployeeList(employees []*domain.Employee) string {
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []string{shortID(e.ID), e.FullName(), e.Role})
	}
	return RenderTable([]string{"ID", "NAME", "ROLE"}, rows)
}

// FormatAssignmentList renders vehicle bookings with resolved names.
// Unresolvable ids (deleted vehicles, orphaned phases) fall back to the
// short id so the booking stays visible.
func FormatAssignmentList(assignments []*domain.VehicleAssignment, vehicleNames, driverNames map[string]string) string {
	rows := make([][]string, 0, len(assignments))
	for _, a := range assignments {
		vehicle := vehicleNames[a.VehicleID]
		if vehicle == "" {
			vehicle = shortID(a.VehicleID)
		}
		driver := Dim("unassigned")
		if a.DriverID != nil {
			if name := driverNames[*a.DriverID]; name != "" {
				driver = name
			} else {
				driver = shortID(*a.DriverID)
			}
		}
		span := timeline.Window{Start: a.AssignedStart, End: a.AssignedEnd}
		rows = append(rows, []string{shortID(a.ID), vehicle, driver, FormatWindow(span)})
	}
	return RenderTable([]string{"ID", "VEHICLE", "DRIVER", "BOOKED"}, rows)
}

// FormatConflicts renders the result of an availability check.
func FormatConflicts(conflicts []*domain.VehicleAssignment, eventNames map[string]string) string {
	if len(conflicts) == 0 {
		return StyleGreen.Render("✓ vehicle is free in this window")
	}
	out := StyleRed.Render(fmt.Sprintf("✗ %d conflicting booking(s)", len(conflicts))) + "\n"
	rows := make([][]string, 0, len(conflicts))
	for _, c := range conflicts {
		name := eventNames[c.EventID]
		if name == "" {
			name = shortID(c.EventID)
		}
		span := timeline.Window{Start: c.AssignedStart, End: c.AssignedEnd}
		rows = append(rows, []string{name, FormatWindow(span)})
	}
	return out + RenderTable([]string{"EVENT", "BOOKED"}, rows)
}

// FormatOverlapDetails renders each contested span once, naming both
// phases and the exact intersection window.
func FormatOverlapDetails(phases []*domain.Phase, details map[string][]timeline.Overlap) string {
	names := make(map[string]string, len(phases))
	for _, p := range phases {
		names[p.ID] = p.Name
	}
	seen := make(map[string]bool)
	var b strings.Builder
	for _, p := range phases {
		for _, ov := range details[p.ID] {
			pairKey := p.ID + "|" + ov.PeerID
			if p.ID > ov.PeerID {
				pairKey = ov.PeerID + "|" + p.ID
			}
			if seen[pairKey] {
				continue
			}
			seen[pairKey] = true
			peer := names[ov.PeerID]
			if peer == "" {
				peer = shortID(ov.PeerID)
			}
			b.WriteString(StyleRed.Render("  ✗ "))
			b.WriteString(fmt.Sprintf("%s ↔ %s: %s\n", p.Name, peer, FormatWindow(ov.Window)))
		}
	}
	return b.String()
}

// FormatClock renders a wall-clock instant for the TUI footer.
func FormatClock(t time.Time) string {
	return t.Local().Format("15:04")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
