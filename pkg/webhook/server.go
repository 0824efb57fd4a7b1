// Package webhook receives order, appeal and freeze events from the platform
package webhook

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/raykavin/orderalert/pkg/core"
	"github.com/raykavin/orderalert/pkg/logger"
	"github.com/raykavin/orderalert/pkg/notification"
)

// Config holds the HTTP server settings
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig listens on :8000
func DefaultConfig() Config {
	return Config{
		Addr:         ":8000",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Server routes platform events to the notification dispatcher
type Server struct {
	router     *mux.Router
	httpServer *http.Server
	accounts   core.AccountStorage
	dispatcher *notification.Dispatcher
	log        logger.Logger
}

func NewServer(config Config, accounts core.AccountStorage, dispatcher *notification.Dispatcher, log logger.Logger) *Server {
	s := &Server{
		router:     mux.NewRouter(),
		accounts:   accounts,
		dispatcher: dispatcher,
		log:        log,
	}

	s.router.Use(s.recovery)
	s.router.Use(s.logging)
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         config.Addr,
		Handler:      s.router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	s.router.HandleFunc("/new_order", s.handleNewOrder).Methods(http.MethodPost)
	s.router.HandleFunc("/auth_status", s.handleAuthStatus).Methods(http.MethodPost)
}

// Handler exposes the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.log.Infof("webhook server listening on %s", s.httpServer.Addr)

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down webhook server")
	return s.httpServer.Shutdown(ctx)
}
