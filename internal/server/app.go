// Package server initializes and runs the chat backend: it loads the
// configuration, opens the database pool, applies migrations and starts the
// HTTP API, shutting everything down gracefully on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/essabriabdelghani/chatbot-gemini/internal/logging"
	"github.com/essabriabdelghani/chatbot-gemini/internal/server/config"
	"github.com/essabriabdelghani/chatbot-gemini/internal/server/httpapi"
	"github.com/essabriabdelghani/chatbot-gemini/internal/server/migrations"
	"github.com/essabriabdelghani/chatbot-gemini/internal/server/repositories/accounts"
	"github.com/essabriabdelghani/chatbot-gemini/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	service *services.AccountService
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	db.SetMaxOpenConns(c.MaxDBConns)

	if err := runMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	repo := accounts.NewPostgresRepository(db)
	service := services.NewAccountService(repo, c)

	return &App{config: c, logger: logger, db: db, service: service}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.service)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run() {

	ctx, cancelFunc := context.WithCancel(context.Background())

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing database", "error", err)
	}
}
