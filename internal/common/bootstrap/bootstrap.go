package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/kariua-parish/parish-site/internal/common/clock"
	"github.com/kariua-parish/parish-site/internal/common/config"
	"github.com/kariua-parish/parish-site/internal/common/constants"
	commoncrypto "github.com/kariua-parish/parish-site/internal/common/crypto"
	"github.com/kariua-parish/parish-site/internal/common/db"
	"github.com/kariua-parish/parish-site/internal/common/logger"
	"github.com/kariua-parish/parish-site/internal/common/resilience"
	intentionrepo "github.com/kariua-parish/parish-site/internal/intention/repository"
	userrepo "github.com/kariua-parish/parish-site/internal/user/repository"
)

// App holds the process-wide dependencies shared by every handler.
type App struct {
	Log         *logger.Logger
	Config      config.Config
	Clock       clock.Clock
	IDGenerator commoncrypto.IDGenerator
	Pool        *pgxpool.Pool
	Intentions  intentionrepo.Repository
	Users       userrepo.Repository

	stop     chan struct{}
	stopOnce sync.Once
}

func NewApp(ctx context.Context, serviceName string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogDir, serviceName, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return NewAppWithConfig(ctx, cfg, log)
}

// NewAppWithConfig selects the store backend named by cfg. The durable
// backend connects, migrates and starts publishing pool metrics before
// returning.
func NewAppWithConfig(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	app := &App{
		Log:         log,
		Config:      cfg,
		Clock:       clock.NewRealClock(),
		IDGenerator: commoncrypto.NewUUIDGenerator(),
		stop:        make(chan struct{}),
	}

	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		log.Warn("using in-memory store: prayer intentions are lost on restart")
		app.Intentions = intentionrepo.NewMemoryRepository(app.IDGenerator, app.Clock)
		app.Users = userrepo.NewMemoryRepository(app.IDGenerator)
	case config.StoreBackendPostgres:
		if err := app.initPostgres(ctx); err != nil {
			return nil, err
		}
	default:
		return nil, config.ErrInvalidStoreBackend
	}

	log.Infof("store backend: %s", cfg.StoreBackend)
	return app, nil
}

func (a *App) initPostgres(ctx context.Context) error {
	pool, err := db.NewPool(ctx, a.Log, a.Config.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database pool: %w", err)
	}

	if err := db.RunMigrations(ctx, a.Log, pool); err != nil {
		pool.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	db.StartPoolMetrics(pool, constants.DBPoolMetricsInterval, a.stop)

	breaker := a.NewCircuitBreaker("postgres", a.Config.CircuitBreakerTimeout, isStoreFailure)
	a.Pool = pool
	a.Intentions = intentionrepo.NewPgRepository(pool, a.IDGenerator, breaker)
	a.Users = userrepo.NewPgRepository(pool, a.IDGenerator)
	return nil
}

// NewCircuitBreaker builds a breaker from the configured thresholds. Each
// guarded call is bounded by callTimeout when it is positive.
func (a *App) NewCircuitBreaker(name string, callTimeout time.Duration, isFailure func(error) bool) *resilience.CircuitBreaker {
	return resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Threshold:  a.Config.CircuitBreakerThreshold,
		Timeout:    callTimeout,
		ResetAfter: a.Config.CircuitBreakerReset,
		Name:       name,
		Logger:     a.Log,
		IsFailure:  isFailure,
	})
}

// Done is closed when Close is called.
func (a *App) Done() <-chan struct{} {
	return a.stop
}

func (a *App) Close() {
	a.stopOnce.Do(func() {
		close(a.stop)
		if a.Pool != nil {
			a.Pool.Close()
			a.Log.Info("database connection pool closed")
		}
	})
}

// isStoreFailure excludes outcomes that say nothing about store health.
func isStoreFailure(err error) bool {
	if err == nil {
		return false
	}
	if db.IsConstraintViolation(err) {
		return false
	}
	return !errors.Is(err, context.Canceled)
}
