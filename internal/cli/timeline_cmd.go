package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline EVENT",
		Short: "Open the interactive schedule editor for an event",
		Long: "A full-screen timeline of the event's phases. Drag bars with the\n" +
			"mouse to move them, grab an edge to resize, then save or discard\n" +
			"the whole edit session.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("the timeline editor needs an interactive terminal")
			}

			eventID, err := resolveEventID(context.Background(), app, args[0])
			if err != nil {
				return err
			}

			model := newTimelineModel(app, eventID)
			program := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			final, err := program.Run()
			if err != nil {
				return err
			}

			// Unsaved drafts die with the session; say so instead of
			// silently dropping them.
			if m, ok := final.(timelineModel); ok && m.drafts.Dirty() {
				fmt.Printf("Left %d unsaved change(s) behind.\n", m.drafts.Len())
			}
			return nil
		},
	}
}
