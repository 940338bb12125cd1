package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"

	"phaseboard/internal/api"
	"phaseboard/internal/cli"
	"phaseboard/internal/db"
	"phaseboard/internal/gateway"
	"phaseboard/internal/repository"
	"phaseboard/internal/server"
	"phaseboard/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	// PHASEBOARD_ADDR points the TUI at a running serve instance; without
	// it the board runs entirely in-process against local SQLite.
	if apiURL := os.Getenv("PHASEBOARD_ADDR"); apiURL != "" {
		app.Client = api.NewClient(apiURL)
		return cli.NewRootCmd(app).Execute()
	}

	dbPath := os.Getenv("PHASEBOARD_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".phaseboard", "phaseboard.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	phaseRepo := repository.NewSQLitePhaseRepo(database)
	listRepo := repository.NewSQLiteTaskListRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case logs go to stderr only when asked; the TUI owns the
	// terminal otherwise.
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("PHASEBOARD_LOG") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	phaseSvc := service.NewPhaseService(phaseRepo, uow, observer)
	listSvc := service.NewTaskListService(listRepo, phaseRepo, uow, observer)
	taskSvc := service.NewTaskService(taskRepo, listRepo, uow, observer)
	treeSvc := service.NewTreeService(phaseRepo, listRepo, taskRepo)

	app.Client = gateway.NewLocalBackend(phaseSvc, listSvc, taskSvc, treeSvc)

	gin.SetMode(gin.ReleaseMode)
	app.Router = server.NewRouter(server.Services{
		Phases: phaseSvc,
		Lists:  listSvc,
		Tasks:  taskSvc,
		Tree:   treeSvc,
	})

	return cli.NewRootCmd(app).Execute()
}
