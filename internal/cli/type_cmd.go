package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/stagehand/internal/cli/formatter"
	"github.com/alexanderramin/stagehand/internal/domain"
)

func newTypeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "type",
		Short: "Manage phase types",
	}

	cmd.AddCommand(
		newTypeInitCmd(app),
		newTypeListCmd(app),
		newTypeAddCmd(app),
	)

	return cmd
}

func newTypeInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Seed the standard phase type catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			seeded, err := app.Types.SeedDefaults(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("Phase type catalog ready (%d types)\n", len(seeded))
			return nil
		},
	}
}

func newTypeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List phase types",
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := app.Types.List(context.Background())
			if err != nil {
				return err
			}
			if len(types) == 0 {
				fmt.Println("No phase types. Run `stagehand type init` to seed the catalog.")
				return nil
			}
			rows := make([][]string, 0, len(types))
			for _, pt := range types {
				rows = append(rows, []string{
					pt.Name, string(pt.Role), fmt.Sprintf("%d", pt.SequencePriority), pt.Color,
				})
			}
			fmt.Print(formatter.RenderTable([]string{"NAME", "ROLE", "PRIORITY", "COLOR"}, rows))
			return nil
		},
	}
}

func newTypeAddCmd(app *App) *cobra.Command {
	var name, role, color string
	var priority int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a custom phase type",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !domain.ValidPhaseRoles[role] {
				return fmt.Errorf("unknown role %q", role)
			}
			pt := &domain.PhaseType{
				Name:             name,
				Role:             domain.PhaseRole(role),
				SequencePriority: priority,
				Color:            color,
			}
			if err := app.Types.Create(context.Background(), pt); err != nil {
				return err
			}
			fmt.Printf("Created phase type %s (%s)\n", pt.Name, pt.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Type name")
	cmd.Flags().StringVar(&role, "role", "generic", "Role (loading|travel_out|event|travel_back|unloading|generic)")
	cmd.Flags().IntVar(&priority, "priority", 100, "Sequence priority (lower sorts first)")
	cmd.Flags().StringVar(&color, "color", "#83a598", "Hex color for the timeline")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
