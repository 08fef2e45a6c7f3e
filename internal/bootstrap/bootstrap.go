package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	probleminadapter "revisit/internal/modules/problem/adapter/in"
	problemoutadapter "revisit/internal/modules/problem/adapter/out"
	problemservice "revisit/internal/modules/problem/service"
	problemusecase "revisit/internal/modules/problem/usecase"
	reviewinadapter "revisit/internal/modules/review/adapter/in"
	reviewoutadapter "revisit/internal/modules/review/adapter/out"
	reviewdomain "revisit/internal/modules/review/domain"
	reviewservice "revisit/internal/modules/review/service"
	reviewusecase "revisit/internal/modules/review/usecase"
	"revisit/internal/platform/clock"
	"revisit/internal/platform/config"
	"revisit/internal/platform/database"
	"revisit/internal/platform/leetcode"
	"revisit/internal/platform/tx"
	uiapp "revisit/internal/ui/app"
)

type App struct {
	ReviewCLI  reviewinadapter.CLIHandler
	ProblemCLI probleminadapter.CLIHandler

	db *sql.DB
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	clk := clock.SystemClock{}

	schedule, err := reviewdomain.NewSchedule(cfg.Schedule)
	if err != nil {
		return nil, err
	}
	db, err := database.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	txm := tx.NewSQLManager(db)
	client := leetcode.NewClient(cfg.CatalogURL, cfg.SessionCookie, cfg.CatalogTimeout)

	problemStore, err := problemoutadapter.NewSQLiteProblemStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("new problem store: %w", err)
	}
	problemUC := problemusecase.NewInteractor(problemservice.NewProblemService(
		clk,
		problemStore,
		problemoutadapter.NewLeetCodeCatalog(client),
		logger.With(slog.String("module", "problem")),
		cfg.CatalogConcurrency,
	))

	recordStore, err := reviewoutadapter.NewSQLiteRecordStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("new record store: %w", err)
	}
	reviewUC := reviewusecase.NewInteractor(reviewservice.NewReviewService(
		clk,
		txm,
		recordStore,
		reviewoutadapter.NewProblemDirectoryAdapter(problemUC),
		reviewoutadapter.NewLeetCodeSubmissionFeed(client),
		reviewoutadapter.NewYAMLSeedSource(),
		logger.With(slog.String("module", "review")),
		reviewservice.Options{Schedule: schedule, FetchLimit: cfg.FetchLimit},
	))

	return &App{
		ReviewCLI:  reviewinadapter.NewCLIHandler(reviewUC),
		ProblemCLI: probleminadapter.NewCLIHandler(problemUC),
		db:         db,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.ReviewCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
