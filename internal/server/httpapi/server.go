// Package httpapi exposes the account service over the JSON HTTP surface
// consumed by the chat client.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/essabriabdelghani/chatbot-gemini/internal/logging"
	"github.com/essabriabdelghani/chatbot-gemini/internal/server/services"
	"github.com/gin-gonic/gin"
)

type Server struct {
	address string
	service *services.AccountService
	logger  logging.Logger
}

func NewServer(address string, l logging.Logger, service *services.AccountService) *Server {
	return &Server{
		address: address,
		service: service,
		logger:  l.With("module", "httpapi"),
	}
}

// Router assembles the gin engine with the public and protected routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/health", s.health)
	api.POST("/register", s.register)
	api.POST("/login", s.login)

	protected := api.Group("")
	protected.Use(s.RequireAuth())
	protected.GET("/profile", s.profile)

	return r
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		_ = srv.Shutdown(context.Background())
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
