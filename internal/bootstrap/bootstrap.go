package bootstrap

import (
	"database/sql"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	sessioninadapter "focusdeck/internal/modules/session/adapter/in"
	sessionoutadapter "focusdeck/internal/modules/session/adapter/out"
	sessionservice "focusdeck/internal/modules/session/service"
	sessionusecase "focusdeck/internal/modules/session/usecase"
	statsinadapter "focusdeck/internal/modules/stats/adapter/in"
	statsoutadapter "focusdeck/internal/modules/stats/adapter/out"
	statsservice "focusdeck/internal/modules/stats/service"
	statsusecase "focusdeck/internal/modules/stats/usecase"
	todoinadapter "focusdeck/internal/modules/todo/adapter/in"
	todooutadapter "focusdeck/internal/modules/todo/adapter/out"
	todoservice "focusdeck/internal/modules/todo/service"
	todousecase "focusdeck/internal/modules/todo/usecase"
	"focusdeck/internal/platform/clock"
	"focusdeck/internal/platform/config"
	"focusdeck/internal/platform/id"
	"focusdeck/internal/platform/sqlite"
	"focusdeck/internal/platform/tx"
	uiapp "focusdeck/internal/ui/app"
)

type App struct {
	Config config.Config

	SessionCLI sessioninadapter.CLIHandler
	TodoCLI    todoinadapter.CLIHandler
	StatsCLI   statsinadapter.CLIHandler

	db *sql.DB
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	txm := tx.DBManager{DB: db}

	sessionStore, err := sessionoutadapter.NewSQLiteSessionStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("new session store: %w", err)
	}
	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, id.RandomHex{Prefix: "sess"}, sessionStore),
	)

	todoStore, err := todooutadapter.NewSQLiteTodoStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("new todo store: %w", err)
	}
	todoUC := todousecase.NewInteractor(todoservice.NewTodoService(clk, todoStore, txm))

	statsUC := statsusecase.NewInteractor(
		statsservice.NewStatsService(clk, statsoutadapter.NewSQLiteStatsStore(db)),
	)

	return &App{
		Config:     cfg,
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
		TodoCLI:    todoinadapter.NewCLIHandler(todoUC),
		StatsCLI:   statsinadapter.NewCLIHandler(statsUC),
		db:         db,
	}, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.Config, app.SessionCLI, app.TodoCLI, app.StatsCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
