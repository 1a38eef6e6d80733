package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/stagehand/internal/cli/formatter"
	"github.com/alexanderramin/stagehand/internal/domain"
)

func newVehicleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vehicle",
		Short: "Manage the vehicle pool",
	}

	cmd.AddCommand(
		newVehicleAddCmd(app),
		newVehicleListCmd(app),
		newVehicleRemoveCmd(app),
	)

	return cmd
}

func newVehicleAddCmd(app *App) *cobra.Command {
	var name, plate, kind, notes string
	var seats int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a vehicle",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !domain.ValidVehicleKinds[kind] {
				return fmt.Errorf("unknown vehicle kind %q", kind)
			}
			v := &domain.Vehicle{
				Name:  name,
				Plate: plate,
				Kind:  domain.VehicleKind(kind),
				Seats: seats,
				Notes: notes,
			}
			if err := app.Vehicles.Create(context.Background(), v); err != nil {
				return err
			}
			fmt.Printf("Added vehicle %s (%s)\n", v.Name, v.Kind)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Vehicle name")
	cmd.Flags().StringVar(&plate, "plate", "", "License plate")
	cmd.Flags().StringVar(&kind, "kind", "van", "Kind (truck|van|trailer|car)")
	cmd.Flags().IntVar(&seats, "seats", 2, "Number of seats")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newVehicleListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List vehicles",
		RunE: func(cmd *cobra.Command, args []string) error {
			vehicles, err := app.Vehicles.List(context.Background())
			if err != nil {
				return err
			}
			if len(vehicles) == 0 {
				fmt.Println("No vehicles yet.")
				return nil
			}
			fmt.Print(formatter.FormatVehicleList(vehicles))
			return nil
		},
	}
}

func newVehicleRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Vehicles.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed vehicle %s\n", args[0])
			return nil
		},
	}
}
