package db

import (
	"context"
	"fmt"
	"time"

	"github.com/kariua-parish/parish-site/internal/common/constants"
	"github.com/kariua-parish/parish-site/internal/common/logger"
)

// BackoffConfig controls how long startup waits for the database to accept
// connections. Request-path queries are never retried.
type BackoffConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

var DefaultBackoffConfig = BackoffConfig{
	MaxAttempts:  constants.DBPoolMaxAttempts,
	InitialDelay: constants.DBPoolRetryDelay,
	MaxDelay:     5 * time.Second,
	Multiplier:   2.0,
}

func WaitWithBackoff(ctx context.Context, log *logger.Logger, config BackoffConfig, operation func(context.Context) error) error {
	var lastErr error
	delay := config.InitialDelay

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		err := operation(ctx)
		if err == nil {
			if attempt > 1 {
				log.Infof("database reachable after %d attempts", attempt)
			}
			return nil
		}

		lastErr = err

		if attempt == config.MaxAttempts {
			break
		}

		log.Warnf("database not reachable (attempt %d/%d): %v, retrying in %v", attempt, config.MaxAttempts, err, delay)

		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled while waiting for database: %w", ctx.Err())
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * config.Multiplier)
		if delay > config.MaxDelay {
			delay = config.MaxDelay
		}
	}

	return fmt.Errorf("database not reachable after %d attempts: %w", config.MaxAttempts, lastErr)
}
