package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/stagehand/internal/service"
	"github.com/alexanderramin/stagehand/internal/timeline"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Events       service.EventService
	Phases       service.PhaseService
	Types        service.PhaseTypeService
	Vehicles     service.VehicleService
	Crew         service.EmployeeService
	Assignments  service.AssignmentService
	Availability service.AvailabilityService

	// Defaults from configuration.
	Durations   timeline.Durations
	DefaultZoom timeline.Zoom

	Log zerolog.Logger

	// IsInteractive gates the TUI entrypoint on a real terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "stagehand" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "stagehand",
		Short: "Event logistics and vehicle scheduling",
	}

	root.AddCommand(
		newEventCmd(app),
		newPhaseCmd(app),
		newTypeCmd(app),
		newVehicleCmd(app),
		newCrewCmd(app),
		newAssignCmd(app),
		newImportCmd(app),
		newTimelineCmd(app),
	)

	return root
}
