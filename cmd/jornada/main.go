package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dquispe/jornada/internal/cli"
	"github.com/dquispe/jornada/internal/config"
	"github.com/dquispe/jornada/internal/db"
	"github.com/dquispe/jornada/internal/repository"
	"github.com/dquispe/jornada/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	activityRepo := repository.NewSQLiteActivityRepo(database)
	subactivityRepo := repository.NewSQLiteSubactivityRepo(database)
	campaignRepo := repository.NewSQLiteCampaignRepo(database)
	roleRepo := repository.NewSQLiteRoleRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)
	ledgerRepo := repository.NewSQLiteLedgerRepo(database)
	reportRepo := repository.NewSQLiteReportRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogPath != "" {
		logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer logFile.Close()
		observers = append(observers, service.NewLogUseCaseObserver(logFile))
	}

	app := &cli.App{
		Tracker: service.NewTrackerService(ledgerRepo, activityRepo, subactivityRepo, uow, observers...),
		Reports: service.NewReportService(reportRepo),
		Catalog: service.NewCatalogService(activityRepo, subactivityRepo),
		Admin:   service.NewAdminService(campaignRepo, roleRepo, userRepo, uow, observers...),
		Auth:    service.NewAuthService(userRepo, observers...),
		Export:  service.NewExportService(reportRepo),

		Users:     userRepo,
		Campaigns: campaignRepo,
		UoW:       uow,
	}

	// Detect interactive terminal for the tracking loop.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
