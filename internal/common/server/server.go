package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kariua-parish/parish-site/internal/common/constants"
	"github.com/kariua-parish/parish-site/internal/common/logger"
)

type ShutdownHook func(ctx context.Context) error

// StartWithGracefulShutdownAndHooks serves until SIGINT or SIGTERM, drains
// in-flight requests and then runs hooks in order. Hooks release resources
// handlers depend on, so they only run once the server has stopped.
func StartWithGracefulShutdownAndHooks(
	server *http.Server,
	log *logger.Logger,
	serviceName string,
	hooks []ShutdownHook,
) {
	serveErr := make(chan error, 1)
	go func() {
		log.Infof("%s service listening on %s", serviceName, server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case err := <-serveErr:
		log.Errorf("failed to start %s service: %v", serviceName, err)
		runHooks(log, serviceName, hooks)
		os.Exit(1)
	}

	log.Infof("shutting down %s service...", serviceName)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer shutdownCancel()

	log.Infof("%s service: stopping accepting new connections (drain period: %v)", serviceName, constants.DrainTimeout)
	server.SetKeepAlivesEnabled(false)

	drainCtx, drainCancel := context.WithTimeout(shutdownCtx, constants.DrainTimeout)
	defer drainCancel()

	if err := server.Shutdown(drainCtx); err != nil {
		log.Errorf("%s service forced to shutdown: %v", serviceName, err)
		_ = server.Close()
	} else {
		log.Infof("%s service stopped gracefully", serviceName)
	}

	runHooks(log, serviceName, hooks)
}

func runHooks(log *logger.Logger, serviceName string, hooks []ShutdownHook) {
	if len(hooks) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DrainTimeout)
	defer cancel()

	log.Infof("%s service: executing shutdown hooks", serviceName)
	for i, hook := range hooks {
		if err := hook(ctx); err != nil {
			log.Errorf("%s service: shutdown hook %d failed: %v", serviceName, i, err)
		}
	}
}
