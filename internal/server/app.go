// Package server initializes and runs the SpendTrack API server: it opens
// the database, applies migrations, wires the services, and serves the HTTP
// API until the process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/spendtrack/spendtrack/internal/logging"
	"github.com/spendtrack/spendtrack/internal/server/config"
	"github.com/spendtrack/spendtrack/internal/server/httpapi"
	"github.com/spendtrack/spendtrack/internal/server/repositories/repomanager"
	"github.com/spendtrack/spendtrack/internal/server/services"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	userService    *services.UserService
	expenseService *services.ExpenseService
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()

	us := services.NewUserService(db, m, cfg, logger)
	es := services.NewExpenseService(db, m, logger)

	return &App{
		config:         cfg,
		logger:         logger,
		db:             db,
		repomanager:    m,
		userService:    us,
		expenseService: es,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	router := httpapi.NewRouter(app.logger, app.userService, app.expenseService)
	srv := httpapi.NewHTTPServer(router)

	app.logger.Info(ctx, "starting HTTP server", "addr", app.config.EndpointAddrHTTP)

	err := srv.Run(ctx, app.config.EndpointAddrHTTP)

	if closeErr := app.db.Close(); closeErr != nil {
		app.logger.Error(ctx, "error closing db", "error", closeErr)
	}

	return err
}
