package cmd

import (
	"context"
	httpNet "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sentiment-trading/internal/delivery/http"
	"sentiment-trading/pkg/logger"
	"sentiment-trading/pkg/utils"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the HTTP API and the optional daily schedule",
	RunE:  Start,
}

func Start(cmd *cobra.Command, args []string) error {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		return err
	}

	services, err := appDep.Services()
	if err != nil {
		return err
	}

	httpHandler := http.NewHttpAPIHandler(ctx, appDep.cfg.API, appDep.echo, appDep.validator, services, appDep.metrics, appDep.log)
	apiServer := NewHTTPServer(ctx, appDep, httpHandler)

	serverErr := make(chan error, 1)
	utils.GoSafe(appDep.log, func() {
		if err := apiServer.Start(); err != nil && err != httpNet.ErrServerClosed {
			serverErr <- err
		}
	})

	if err := services.SchedulerService.Start(ctx); err != nil {
		appDep.log.Error("failed to start scheduler", logger.ErrorField(err))
		stop()
	}

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		appDep.log.Error("HTTP server failed", logger.ErrorField(err))
	}
	appDep.log.Info("shutting down gracefully")

	services.SchedulerService.Stop()
	if err := apiServer.Stop(); err != nil {
		appDep.log.Error("failed to stop HTTP server", logger.ErrorField(err))
	}
	return appDep.Close()
}
