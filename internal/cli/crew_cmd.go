package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/stagehand/internal/cli/formatter"
	"github.com/alexanderramin/stagehand/internal/domain"
)

func newCrewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crew",
		Short: "Manage crew members",
	}

	cmd.AddCommand(
		newCrewAddCmd(app),
		newCrewListCmd(app),
		newCrewRemoveCmd(app),
	)

	return cmd
}

func newCrewAddCmd(app *App) *cobra.Command {
	var first, last, role string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a crew member",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := &domain.Employee{FirstName: first, LastName: last, Role: role}
			if err := app.Crew.Create(context.Background(), e); err != nil {
				return err
			}
			fmt.Printf("Added %s (%s)\n", e.FullName(), e.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&first, "first", "", "First name")
	cmd.Flags().StringVar(&last, "last", "", "Last name")
	cmd.Flags().StringVar(&role, "role", "stagehand", "Role (driver, technician, ...)")
	_ = cmd.MarkFlagRequired("first")
	_ = cmd.MarkFlagRequired("last")

	return cmd
}

func newCrewListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List crew members",
		RunE: func(cmd *cobra.Command, args []string) error {
			crew, err := app.Crew.List(context.Background())
			if err != nil {
				return err
			}
			if len(crew) == 0 {
				fmt.Println("No crew yet.")
				return nil
			}
			fmt.Print(formatter.FormatEmployeeList(crew))
			return nil
		},
	}
}

func newCrewRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a crew member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Crew.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed crew member %s\n", args[0])
			return nil
		},
	}
}
