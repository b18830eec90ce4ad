package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/milestones/internal/cli"
	"github.com/alexanderramin/milestones/internal/config"
	"github.com/alexanderramin/milestones/internal/db"
	"github.com/alexanderramin/milestones/internal/repository"
	"github.com/alexanderramin/milestones/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", cli.UserMessage(err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.EnsureDBDir(); err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Use-case logging is opt-in; the TUI owns the terminal otherwise.
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogFile != "" {
		logOut, err := openLogFile(cfg.LogFile)
		if err != nil {
			return err
		}
		defer logOut.Close()
		observer = service.NewLogUseCaseObserver(logOut)
	}

	store := service.NewProjectStore(
		repository.NewSQLiteKVRepo(database),
		db.NewSQLiteUnitOfWork(database),
		service.WithObserver(observer),
	)
	if err := store.Open(context.Background()); err != nil {
		return fmt.Errorf("loading projects: %w", err)
	}
	defer store.Close()

	app := &cli.App{
		Store:  store,
		Config: cfg,
	}

	// Detect interactive terminal for the TUI entrypoint and confirmations.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

func openLogFile(path string) (io.WriteCloser, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
