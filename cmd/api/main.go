package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	chathttp "github.com/kariua-parish/parish-site/internal/chat/http"
	"github.com/kariua-parish/parish-site/internal/chat/openai"
	chatservice "github.com/kariua-parish/parish-site/internal/chat/service"
	"github.com/kariua-parish/parish-site/internal/common/bootstrap"
	"github.com/kariua-parish/parish-site/internal/common/constants"
	commonhttp "github.com/kariua-parish/parish-site/internal/common/http"
	srv "github.com/kariua-parish/parish-site/internal/common/server"
	"github.com/kariua-parish/parish-site/internal/common/validation"
	intentionhttp "github.com/kariua-parish/parish-site/internal/intention/http"
	intentionservice "github.com/kariua-parish/parish-site/internal/intention/service"
	"github.com/kariua-parish/parish-site/internal/notify"
)

const serviceName = "parish-api"

func main() {
	app, err := bootstrap.NewApp(context.Background(), serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start %s: %v\n", serviceName, err)
		os.Exit(1)
	}
	log := app.Log
	cfg := app.Config

	validator := validation.New()

	relay := notify.NewTelegramRelay(cfg.Telegram, nil, app.NewCircuitBreaker("telegram", cfg.Telegram.Timeout, nil))
	if !relay.Configured() {
		log.Warn("telegram credentials not configured: prayer intentions will be saved without notification")
	}
	intentionSvc := intentionservice.NewIntentionService(app.Intentions, relay, validator, cfg.Telegram.Location, log)

	generator := openai.NewClient(cfg.OpenAI, nil, app.NewCircuitBreaker("openai", cfg.OpenAI.Timeout, isUpstreamFailure))
	if cfg.OpenAI.APIKey == "" {
		log.Warn("openai api key not configured: chat requests will fail")
	}
	chatSvc := chatservice.NewChatService(generator, validator, log)

	mux := http.NewServeMux()
	mux.HandleFunc(constants.RouteHealth, commonhttp.HealthHandler(app.Clock))
	mux.Handle(constants.RoutePrayerIntentions, intentionhttp.NewHandler(intentionSvc, cfg.RequestTimeout, log))
	mux.Handle(constants.RouteChat, chathttp.NewHandler(chatSvc, cfg.OpenAI.Timeout, log))
	mux.Handle(constants.RouteMetrics, promhttp.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		commonhttp.WriteErrorEnvelope(w, http.StatusNotFound, commonhttp.CodeNotFound, "not found", nil, commonhttp.TraceIDFromContext(r.Context()))
	})

	rateLimiter := commonhttp.NewPathRateLimiter()
	rateLimiter.StartPruning(constants.RateLimitCleanupInterval, app.Done())

	finalHandler := commonhttp.BuildBaseHandler(serviceName, log, mux, commonhttp.BaseHandlerOptions{
		RateLimiter: rateLimiter,
	})

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort, cfg.RequestTimeout, cfg.OpenAI.Timeout), finalHandler)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			app.Close()
			return nil
		},
	}

	srv.StartWithGracefulShutdownAndHooks(server, log, serviceName, shutdownHooks)
}

// isUpstreamFailure keeps a missing api key or a cancelled request from
// opening the breaker.
func isUpstreamFailure(err error) bool {
	return err != nil && !errors.Is(err, openai.ErrAPIKeyMissing) && !errors.Is(err, context.Canceled)
}
