package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"github.com/sirupsen/logrus"
)

const (
	ReadHeaderTimeout = 5 * time.Second
	ShutdownTimeout   = 10 * time.Second
)

type Server struct {
	Router *gin.Engine

	logger logrus.FieldLogger
	server http.Server

	mu    sync.RWMutex
	error error
}

func NewServer(injector *do.Injector, component string, port int) (*Server, error) {
	logger, err := do.Invoke[logrus.FieldLogger](injector)
	if err != nil {
		return nil, err
	}

	logger = logger.WithField("component", component)

	gin.SetMode(gin.ReleaseMode)

	router := NewRouter(logger)

	logger.Debug("Server created.")

	return &Server{
		Router: router,
		logger: logger,
		server: http.Server{
			Addr:              fmt.Sprintf("0.0.0.0:%d", port),
			Handler:           router,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}, nil
}

func (s *Server) HealthCheck() error {
	s.logger.Debug("Server health check.")

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.error
}

func (s *Server) Shutdown() error {
	s.logger.Info("Server shutting down...")
	defer s.logger.Info("Server shot down.")

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	return s.server.Shutdown(ctx) //nolint:wrapcheck
}

// Run starts the HTTP server. Returns http.ErrServerClosed after Shutdown.
func (s *Server) Run() error {
	s.logger.Infof("Starting server at: %s", s.server.Addr)

	err := s.server.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		s.mu.Lock()
		s.error = err
		s.mu.Unlock()
	}

	return err //nolint:wrapcheck
}
