package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/stagehand/internal/cli/formatter"
	"github.com/alexanderramin/stagehand/internal/importer"
)

func newImportCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a schedule bundle from a JSON file",
		Long: "Import phase types, vehicles, crew and events with their phases " +
			"from a single JSON file. The file is validated as a whole before " +
			"anything is written.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := importer.LoadImportSchema(args[0])
			if err != nil {
				return err
			}

			if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
				for _, e := range errs {
					fmt.Println(formatter.StyleRed.Render("  ✗ ") + e.Error())
				}
				return fmt.Errorf("import file has %d error(s)", len(errs))
			}

			bundle, err := importer.Convert(schema)
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Printf("Valid: %d type(s), %d vehicle(s), %d crew, %d event(s), %d phase(s)\n",
					len(bundle.PhaseTypes), len(bundle.Vehicles), len(bundle.Crew),
					len(bundle.Events), len(bundle.Phases))
				return nil
			}

			if err := persistBundle(context.Background(), app, bundle); err != nil {
				return err
			}

			app.Log.Info().
				Str("file", args[0]).
				Int("events", len(bundle.Events)).
				Int("phases", len(bundle.Phases)).
				Msg("schedule imported")
			fmt.Printf("Imported %d type(s), %d vehicle(s), %d crew, %d event(s), %d phase(s)\n",
				len(bundle.PhaseTypes), len(bundle.Vehicles), len(bundle.Crew),
				len(bundle.Events), len(bundle.Phases))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and report without writing anything")

	return cmd
}

// persistBundle writes catalog entries before the events that reference
// them. A failure stops mid-bundle; already written entries stay, the
// same tolerance the assignment orchestrator has for partial layouts.
func persistBundle(ctx context.Context, app *App, bundle *importer.Bundle) error {
	for _, pt := range bundle.PhaseTypes {
		if err := app.Types.Create(ctx, pt); err != nil {
			return fmt.Errorf("phase type %q: %w", pt.Name, err)
		}
	}
	for _, v := range bundle.Vehicles {
		if err := app.Vehicles.Create(ctx, v); err != nil {
			return fmt.Errorf("vehicle %q: %w", v.Name, err)
		}
	}
	for _, c := range bundle.Crew {
		if err := app.Crew.Create(ctx, c); err != nil {
			return fmt.Errorf("crew %q: %w", c.FullName(), err)
		}
	}
	for _, e := range bundle.Events {
		if err := app.Events.Create(ctx, e); err != nil {
			return fmt.Errorf("event %q: %w", e.Name, err)
		}
	}
	for _, p := range bundle.Phases {
		if err := app.Phases.Create(ctx, p); err != nil {
			return fmt.Errorf("phase %q: %w", p.Name, err)
		}
	}
	return nil
}
