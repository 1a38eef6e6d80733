package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/stagehand/internal/cli/formatter"
	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/timeline"
)

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Manage event phases",
	}

	cmd.AddCommand(
		newPhaseAddCmd(app),
		newPhaseListCmd(app),
		newPhaseSetWindowCmd(app),
		newPhaseRemoveCmd(app),
	)

	return cmd
}

func resolvePhaseType(ctx context.Context, app *App, input string) (*domain.PhaseType, error) {
	types, err := app.Types.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, pt := range types {
		if strings.EqualFold(pt.Name, input) || pt.ID == input || string(pt.Role) == input {
			return pt, nil
		}
	}
	return nil, fmt.Errorf("phase type not found: %q", input)
}

func newPhaseAddCmd(app *App) *cobra.Command {
	var eventRef, typeRef, name, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a phase to an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eventID, err := resolveEventID(ctx, app, eventRef)
			if err != nil {
				return err
			}
			pt, err := resolvePhaseType(ctx, app, typeRef)
			if err != nil {
				return err
			}
			startTime, err := parseWindowTime(start)
			if err != nil {
				return err
			}
			endTime, err := parseWindowTime(end)
			if err != nil {
				return err
			}

			if name == "" {
				name = pt.Name
			}
			p := &domain.Phase{
				EventID:       eventID,
				PhaseTypeID:   pt.ID,
				Name:          name,
				StartTime:     startTime,
				EndTime:       endTime,
				SequenceOrder: pt.SequencePriority,
				Color:         pt.Color,
			}
			if err := app.Phases.Create(ctx, p); err != nil {
				return err
			}
			fmt.Printf("Added phase %s (%s)\n", p.Name, formatter.FormatWindow(p.Window()))
			return nil
		},
	}

	cmd.Flags().StringVar(&eventRef, "event", "", "Event ID or name")
	cmd.Flags().StringVar(&typeRef, "type", "", "Phase type name, role or ID")
	cmd.Flags().StringVar(&name, "name", "", "Phase name (defaults to the type name)")
	cmd.Flags().StringVar(&start, "start", "", "Start (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End (YYYY-MM-DD HH:MM)")
	_ = cmd.MarkFlagRequired("event")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newPhaseListCmd(app *App) *cobra.Command {
	var eventRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the phases of an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eventID, err := resolveEventID(ctx, app, eventRef)
			if err != nil {
				return err
			}
			phases, err := app.Phases.ListByEvent(ctx, eventID)
			if err != nil {
				return err
			}
			if len(phases) == 0 {
				fmt.Println("No phases yet.")
				return nil
			}

			intervals := make([]timeline.Interval, 0, len(phases))
			for _, p := range phases {
				intervals = append(intervals, timeline.Interval{ID: p.ID, Window: p.Window()})
			}
			fmt.Print(formatter.FormatPhaseList(phases, timeline.Conflicts(intervals)))
			return nil
		},
	}

	cmd.Flags().StringVar(&eventRef, "event", "", "Event ID or name")
	_ = cmd.MarkFlagRequired("event")

	return cmd
}

func newPhaseSetWindowCmd(app *App) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "set-window ID",
		Short: "Move or resize a phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Phases.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("start") {
				t, err := parseWindowTime(start)
				if err != nil {
					return err
				}
				p.StartTime = t
			}
			if cmd.Flags().Changed("end") {
				t, err := parseWindowTime(end)
				if err != nil {
					return err
				}
				p.EndTime = t
			}
			if err := app.Phases.Update(ctx, p); err != nil {
				return err
			}
			fmt.Printf("Phase %s now %s\n", p.Name, formatter.FormatWindow(p.Window()))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "New start (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "New end (YYYY-MM-DD HH:MM)")

	return cmd
}

func newPhaseRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Phases.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed phase %s\n", args[0])
			return nil
		},
	}
}
