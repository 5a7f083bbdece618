// Package cli implements the interactive chat REPL: registration and login
// against the backend, the conversation commands, and the stubbed search.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	"github.com/essabriabdelghani/chatbot-gemini/internal/client/api"
	"github.com/essabriabdelghani/chatbot-gemini/internal/client/config"
	"github.com/essabriabdelghani/chatbot-gemini/internal/client/conversations"
	"github.com/essabriabdelghani/chatbot-gemini/internal/client/repositories/metadata"
	"github.com/essabriabdelghani/chatbot-gemini/internal/client/session"
	"github.com/essabriabdelghani/chatbot-gemini/internal/client/storage"
	"github.com/essabriabdelghani/chatbot-gemini/internal/logging"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	apiClient *api.Client
	assistant api.Assistant
	session   *session.Manager
	store     *conversations.Store
	reader    *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()
	logger := logging.NewTextLogger(os.Stderr)

	db, err := storage.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	repo := metadata.NewSQLiteRepository(db)
	apiClient := api.NewClient(c.ServerURL, c.RequestTimeout)

	var assistant api.Assistant = api.CannedAssistant{}
	if c.AssistantURL != "" {
		assistant = api.NewHTTPAssistant(c.AssistantURL, c.AssistantKey, c.RequestTimeout)
	}

	return &App{
		config:    c,
		logger:    logger,
		db:        db,
		apiClient: apiClient,
		assistant: assistant,
		session:   session.NewManager(repo, apiClient),
		store:     conversations.NewStore(repo),
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores persisted state and drives the REPL until the user exits
// or ctx is cancelled. Restore is awaited before any command is served.
func (a *App) Run(ctx context.Context) {

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	persisterDone := make(chan struct{})
	go func() {
		defer close(persisterDone)
		a.store.Run(ctx)
	}()

	if err := a.session.Restore(ctx); err != nil {
		a.logger.Warn(ctx, "no session restored", "reason", err)
	}
	if err := a.store.Load(ctx); err != nil {
		a.logger.Warn(ctx, "conversation history reset", "reason", err)
	}

	a.Root(ctx)

	// Stop the persister and wait for its final flush before closing the db.
	cancel()
	<-persisterDone

	if err := a.db.Close(); err != nil {
		a.logger.Error(ctx, "error closing database", "error", err)
	}
}

func (a *App) isAuthenticated() bool {
	return a.session.State() == session.StateAuthenticated
}
