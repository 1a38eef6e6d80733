package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/stagehand/internal/cli/formatter"
	"github.com/alexanderramin/stagehand/internal/service"
	"github.com/alexanderramin/stagehand/internal/timeline"
)

func newAssignCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Book vehicles onto events",
	}

	cmd.AddCommand(
		newAssignVehicleCmd(app),
		newAssignCheckCmd(app),
		newAssignListCmd(app),
		newAssignRemoveCmd(app),
	)

	return cmd
}

func newAssignVehicleCmd(app *App) *cobra.Command {
	var eventRef, vehicleID, driverID string
	var loadingMin, prepMin, travelMin int

	cmd := &cobra.Command{
		Use:   "vehicle",
		Short: "Assign a vehicle to an event's logistics phases",
		Long: "Lays out the loading, travel and unloading phases around the event\n" +
			"if they do not exist yet, then books the vehicle across the whole\n" +
			"span. Safe to re-run; existing phases and bookings are reused.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eventID, err := resolveEventID(ctx, app, eventRef)
			if err != nil {
				return err
			}

			if vehicleID == "" && app.IsInteractive != nil && app.IsInteractive() {
				if form := wizardSelectVehicle(ctx, app, &vehicleID); form != nil {
					if err := form.Run(); err != nil {
						return err
					}
				}
				if driverID == "" {
					if form := wizardSelectDriver(ctx, app, &driverID); form != nil {
						if err := form.Run(); err != nil {
							return err
						}
					}
				}
			}
			if vehicleID == "" {
				return fmt.Errorf("--vehicle is required")
			}

			durations := app.Durations
			if cmd.Flags().Changed("loading") {
				durations.LoadingMin = loadingMin
			}
			if cmd.Flags().Changed("preparation") {
				durations.PreparationMin = prepMin
			}
			if cmd.Flags().Changed("travel") {
				durations.TravelMin = travelMin
			}

			req := service.AssignmentRequest{
				EventID:   eventID,
				VehicleID: vehicleID,
				Durations: durations,
			}
			if driverID != "" {
				req.DriverID = &driverID
			}

			plan, err := app.Assignments.EnsureVehicleAssignment(ctx, req)
			if err != nil {
				if errors.Is(err, service.ErrMissingPhaseTypes) {
					return fmt.Errorf("%w\nRun `stagehand type init` first", err)
				}
				return err
			}

			span := timeline.Window{Start: plan.Assignment.AssignedStart, End: plan.Assignment.AssignedEnd}
			if len(plan.Created) > 0 {
				fmt.Printf("Created %d logistics phases\n", len(plan.Created))
			}
			fmt.Printf("Vehicle booked %s\n", formatter.FormatWindow(span))

			// Availability is advisory: warn about double-bookings but never
			// block the assignment.
			conflicts, err := app.Availability.Check(ctx, vehicleID, span, eventID)
			if err != nil {
				fmt.Println(formatter.Dim("availability unknown: " + err.Error()))
				return nil
			}
			if len(conflicts) > 0 {
				fmt.Print(formatter.FormatConflicts(conflicts, eventNames(ctx, app)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&eventRef, "event", "", "Event ID or name")
	cmd.Flags().StringVar(&vehicleID, "vehicle", "", "Vehicle ID")
	cmd.Flags().StringVar(&driverID, "driver", "", "Driver (crew member ID)")
	cmd.Flags().IntVar(&loadingMin, "loading", 0, "Loading duration in minutes")
	cmd.Flags().IntVar(&prepMin, "preparation", 0, "Preparation duration in minutes")
	cmd.Flags().IntVar(&travelMin, "travel", 0, "Travel duration in minutes")
	_ = cmd.MarkFlagRequired("event")

	return cmd
}

func newAssignCheckCmd(app *App) *cobra.Command {
	var vehicleID, from, to, excludeRef string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a vehicle's availability in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			start, err := parseWindowTime(from)
			if err != nil {
				return err
			}
			end, err := parseWindowTime(to)
			if err != nil {
				return err
			}

			excludeID := ""
			if excludeRef != "" {
				if excludeID, err = resolveEventID(ctx, app, excludeRef); err != nil {
					return err
				}
			}

			w := timeline.Window{Start: start, End: end}
			conflicts, err := app.Availability.Check(ctx, vehicleID, w, excludeID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatConflicts(conflicts, eventNames(ctx, app)))
			return nil
		},
	}

	cmd.Flags().StringVar(&vehicleID, "vehicle", "", "Vehicle ID")
	cmd.Flags().StringVar(&from, "from", "", "Window start (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&to, "to", "", "Window end (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&excludeRef, "exclude-event", "", "Event whose own bookings are ignored")
	_ = cmd.MarkFlagRequired("vehicle")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newAssignListCmd(app *App) *cobra.Command {
	var eventRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List vehicle bookings for an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eventID, err := resolveEventID(ctx, app, eventRef)
			if err != nil {
				return err
			}
			assignments, err := app.Assignments.ListByEvent(ctx, eventID)
			if err != nil {
				return err
			}
			if len(assignments) == 0 {
				fmt.Println("No bookings yet.")
				return nil
			}
			fmt.Print(formatter.FormatAssignmentList(assignments, vehicleNames(ctx, app), driverNames(ctx, app)))
			return nil
		},
	}

	cmd.Flags().StringVar(&eventRef, "event", "", "Event ID or name")
	_ = cmd.MarkFlagRequired("event")

	return cmd
}

func newAssignRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a vehicle booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Assignments.Remove(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed booking %s\n", args[0])
			return nil
		},
	}
}

func eventNames(ctx context.Context, app *App) map[string]string {
	names := make(map[string]string)
	events, err := app.Events.List(ctx)
	if err != nil {
		return names
	}
	for _, e := range events {
		names[e.ID] = e.Name
	}
	return names
}
