package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/stagehand/internal/cli/formatter"
	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/timeline"
)

const windowLayout = "2006-01-02 15:04"

func parseWindowTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(windowLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected YYYY-MM-DD HH:MM", s)
	}
	return t, nil
}

// resolveEventID matches a full id or an unambiguous id prefix.
func resolveEventID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("event ID is required")
	}
	events, err := app.Events.List(ctx)
	if err != nil {
		return "", err
	}
	for _, e := range events {
		if e.ID == input {
			return e.ID, nil
		}
	}
	var matches []string
	for _, e := range events {
		if strings.HasPrefix(e.ID, input) || strings.EqualFold(e.Name, input) {
			matches = append(matches, e.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("event not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("event %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage events",
	}

	cmd.AddCommand(
		newEventAddCmd(app),
		newEventListCmd(app),
		newEventInspectCmd(app),
		newEventUpdateCmd(app),
		newEventRemoveCmd(app),
	)

	return cmd
}

func newEventAddCmd(app *App) *cobra.Command {
	var name, venue, start, end, notes string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new event",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Missing flags on a real terminal open the wizard instead.
			if name == "" && app.IsInteractive != nil && app.IsInteractive() {
				form := wizardEventForm(&name, &venue, &start, &end, &notes)
				if err := form.Run(); err != nil {
					return err
				}
			}
			if name == "" || start == "" || end == "" {
				return fmt.Errorf("--name, --start and --end are required")
			}

			startTime, err := parseWindowTime(start)
			if err != nil {
				return err
			}
			endTime, err := parseWindowTime(end)
			if err != nil {
				return err
			}

			e := &domain.Event{
				Name:      name,
				Venue:     venue,
				StartTime: startTime,
				EndTime:   endTime,
				Status:    domain.EventPlanned,
				Notes:     notes,
			}
			if err := app.Events.Create(context.Background(), e); err != nil {
				return err
			}

			fmt.Printf("Created event %s (%s)\n", e.Name, formatter.FormatWindow(e.Window()))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Event name")
	cmd.Flags().StringVar(&venue, "venue", "", "Venue")
	cmd.Flags().StringVar(&start, "start", "", "Agenda start (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "Agenda end (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

func newEventListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List events",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := app.Events.List(context.Background())
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Println("No events yet.")
				return nil
			}
			fmt.Print(formatter.FormatEventList(events))
			return nil
		},
	}
}

func newEventInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show an event with its phases and bookings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eventID, err := resolveEventID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Events.GetByID(ctx, eventID)
			if err != nil {
				return err
			}
			phases, err := app.Phases.ListByEvent(ctx, eventID)
			if err != nil {
				return err
			}

			intervals := make([]timeline.Interval, 0, len(phases))
			for _, p := range phases {
				intervals = append(intervals, timeline.Interval{ID: p.ID, Window: p.Window()})
			}
			conflicted := timeline.Conflicts(intervals)

			fmt.Println(formatter.Header(e.Name))
			fmt.Printf("%s  %s  %s\n\n",
				formatter.FormatWindow(e.Window()), e.Venue, formatter.StatusIndicator(e.Status))
			if len(phases) > 0 {
				fmt.Print(formatter.FormatPhaseList(phases, conflicted))
				if details := timeline.ConflictDetails(intervals); len(details) > 0 {
					fmt.Print(formatter.FormatOverlapDetails(phases, details))
				}
			} else {
				fmt.Println("No phases yet.")
			}

			assignments, err := app.Assignments.ListByEvent(ctx, eventID)
			if err != nil {
				return err
			}
			if len(assignments) > 0 {
				fmt.Println()
				fmt.Print(formatter.FormatAssignmentList(assignments, vehicleNames(ctx, app), driverNames(ctx, app)))
			}
			return nil
		},
	}
}

func newEventUpdateCmd(app *App) *cobra.Command {
	var name, venue, start, end, status, notes string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eventID, err := resolveEventID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Events.GetByID(ctx, eventID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				e.Name = name
			}
			if cmd.Flags().Changed("venue") {
				e.Venue = venue
			}
			if cmd.Flags().Changed("start") {
				t, err := parseWindowTime(start)
				if err != nil {
					return err
				}
				e.StartTime = t
			}
			if cmd.Flags().Changed("end") {
				t, err := parseWindowTime(end)
				if err != nil {
					return err
				}
				e.EndTime = t
			}
			if cmd.Flags().Changed("status") {
				e.Status = domain.EventStatus(status)
			}
			if cmd.Flags().Changed("notes") {
				e.Notes = notes
			}

			if err := app.Events.Update(ctx, e); err != nil {
				return err
			}
			fmt.Printf("Updated event %s\n", e.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Event name")
	cmd.Flags().StringVar(&venue, "venue", "", "Venue")
	cmd.Flags().StringVar(&start, "start", "", "Agenda start (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "Agenda end (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&status, "status", "", "Status (planned|confirmed|done|cancelled)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

func newEventRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an event and its phases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eventID, err := resolveEventID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Events.Delete(ctx, eventID); err != nil {
				return err
			}
			fmt.Printf("Removed event %s\n", eventID)
			return nil
		},
	}
}

func vehicleNames(ctx context.Context, app *App) map[string]string {
	names := make(map[string]string)
	vehicles, err := app.Vehicles.List(ctx)
	if err != nil {
		return names
	}
	for _, v := range vehicles {
		names[v.ID] = v.Name
	}
	return names
}

func driverNames(ctx context.Context, app *App) map[string]string {
	names := make(map[string]string)
	crew, err := app.Crew.List(ctx)
	if err != nil {
		return names
	}
	for _, e := range crew {
		names[e.ID] = e.FullName()
	}
	return names
}
