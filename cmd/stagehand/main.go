package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/stagehand/internal/cli"
	"github.com/alexanderramin/stagehand/internal/config"
	"github.com/alexanderramin/stagehand/internal/db"
	"github.com/alexanderramin/stagehand/internal/logging"
	"github.com/alexanderramin/stagehand/internal/repository"
	"github.com/alexanderramin/stagehand/internal/service"
	"github.com/alexanderramin/stagehand/internal/timeline"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// --config is parsed ahead of cobra so the whole command tree can be
	// wired from the loaded configuration.
	configPath := config.DefaultPath()
	flags := pflag.NewFlagSet("stagehand", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.StringVar(&configPath, "config", configPath, "Path to config file")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, logCloser, err := logging.Open(cfg.Logging)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	eventRepo := repository.NewSQLiteEventRepo(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	typeRepo := repository.NewSQLitePhaseTypeRepo(database)
	vehicleRepo := repository.NewSQLiteVehicleRepo(database)
	employeeRepo := repository.NewSQLiteEmployeeRepo(database)
	assignRepo := repository.NewSQLiteAssignmentRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Events:       service.NewEventService(eventRepo),
		Phases:       service.NewPhaseService(phaseRepo, uow, log),
		Types:        service.NewPhaseTypeService(typeRepo),
		Vehicles:     service.NewVehicleService(vehicleRepo),
		Crew:         service.NewEmployeeService(employeeRepo),
		Assignments:  service.NewAssignmentService(eventRepo, phaseRepo, typeRepo, assignRepo, log),
		Availability: service.NewAvailabilityService(assignRepo, log),
		Durations:    cfg.Logistics.Durations(),
		DefaultZoom:  timeline.Zoom(cfg.Timeline.DefaultZoom),
		Log:          log,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	rootCmd.PersistentFlags().String("config", configPath, "Path to config file")
	return rootCmd.Execute()
}
