package cmd

import (
	"context"
	"fmt"
	"time"

	"sentiment-trading/internal/delivery/http"
	"sentiment-trading/pkg/logger"
)

type HTTPServer struct {
	ctx     context.Context
	appDep  *AppDependency
	handler *http.HttpAPIHandler
}

func NewHTTPServer(ctx context.Context, appDep *AppDependency, handler *http.HttpAPIHandler) *HTTPServer {
	return &HTTPServer{
		ctx:     ctx,
		appDep:  appDep,
		handler: handler,
	}
}

func (s *HTTPServer) Start() error {
	s.appDep.log.Info("starting HTTP server", logger.IntField("port", s.appDep.cfg.API.Port))
	s.handler.SetupRoutes()
	return s.appDep.echo.Start(fmt.Sprintf(":%d", s.appDep.cfg.API.Port))
}

// Stop shuts the server down, giving in-flight requests ten seconds.
func (s *HTTPServer) Stop() error {
	s.appDep.log.Info("shutting down HTTP server")

	// s.ctx is already cancelled at this point
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.appDep.echo.Shutdown(ctx); err != nil {
		s.appDep.log.Warn("forced HTTP server shutdown", logger.ErrorField(err))
		return err
	}
	s.appDep.log.Info("HTTP server stopped")
	return nil
}
