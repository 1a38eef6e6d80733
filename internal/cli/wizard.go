package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/stagehand/internal/cli/formatter"
)

// stagehandHuhTheme returns a custom huh theme on the Gruvbox palette.
func stagehandHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateWindowTime(s string) error {
	if s == "" {
		return fmt.Errorf("required, format YYYY-MM-DD HH:MM")
	}
	if _, err := time.ParseInLocation(windowLayout, s, time.Local); err != nil {
		return fmt.Errorf("use YYYY-MM-DD HH:MM")
	}
	return nil
}

// wizardEventForm collects the fields for a new event.
func wizardEventForm(name, venue, start, end, notes *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Event name").Value(name).Validate(validateRequired("name")),
			huh.NewInput().Title("Venue").Value(venue),
			huh.NewInput().Title("Agenda start").Placeholder("2025-06-01 10:00").Value(start).Validate(validateWindowTime),
			huh.NewInput().Title("Agenda end").Placeholder("2025-06-01 18:00").Value(end).Validate(validateWindowTime),
			huh.NewInput().Title("Notes").Value(notes),
		),
	).WithTheme(stagehandHuhTheme()).WithShowHelp(false)
}

// wizardSelectVehicle builds a select over the vehicle pool, or nil when
// the pool is empty.
func wizardSelectVehicle(ctx context.Context, app *App, result *string) *huh.Form {
	vehicles, err := app.Vehicles.List(ctx)
	if err != nil || len(vehicles) == 0 {
		return nil
	}
	options := make([]huh.Option[string], 0, len(vehicles))
	for _, v := range vehicles {
		label := fmt.Sprintf("%s (%s, %s)", v.Name, v.Kind, v.Plate)
		options = append(options, huh.NewOption(label, v.ID))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Which vehicle?").Options(options...).Value(result),
		),
	).WithTheme(stagehandHuhTheme()).WithShowHelp(false)
}

// wizardSelectDriver builds a select over the crew, with a skip option.
func wizardSelectDriver(ctx context.Context, app *App, result *string) *huh.Form {
	crew, err := app.Crew.List(ctx)
	if err != nil || len(crew) == 0 {
		return nil
	}
	options := make([]huh.Option[string], 0, len(crew)+1)
	options = append(options, huh.NewOption("No driver yet", ""))
	for _, e := range crew {
		options = append(options, huh.NewOption(e.FullName(), e.ID))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Driver?").Options(options...).Value(result),
		),
	).WithTheme(stagehandHuhTheme()).WithShowHelp(false)
}
