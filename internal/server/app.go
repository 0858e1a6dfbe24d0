// Package server wires the authkeeper server together: user store, token
// cache, hashing, token codec, the auth service and its HTTP transport. It
// also handles OS signals and graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/tokens"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"

	hs "github.com/dmitrijs2005/authkeeper/internal/server/http"
)

const connectTimeout = 10 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	metrics     *metrics.Metrics
	authService *services.AuthService
	closers     []io.Closer
}

// NewApp validates c, connects the stores and builds the service. Resources
// opened before a failure are released again.
func NewApp(ctx context.Context, c *config.Config) (app *App, err error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger, err := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	app = &App{config: c, logger: logger, metrics: metrics.New()}
	defer func() {
		if err != nil {
			app.close()
		}
	}()

	rm, err := repomanager.New(c.StoreDriver)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	if driver := rm.DriverName(); driver != "" {
		db, err = dbx.Open(ctx, driver, c.DatabaseDSN, connectTimeout)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		app.closers = append(app.closers, db)

		if err := rm.RunMigrations(ctx, db); err != nil {
			return nil, fmt.Errorf("db migration error: %w", err)
		}
	}

	cache, err := app.newCache(ctx)
	if err != nil {
		return nil, fmt.Errorf("cache init error: %w", err)
	}

	hasher, err := auth.NewHasher(c.PasswordScheme)
	if err != nil {
		return nil, err
	}

	codec, err := auth.NewCodec([]byte(c.SecretKey), c.Algorithm, c.TokenValidityDuration)
	if err != nil {
		return nil, err
	}

	app.authService = services.NewAuthService(rm.Users(db), cache, hasher, codec, logger,
		services.WithMetrics(app.metrics))

	logger.Info(ctx, "App initialized",
		"store", c.StoreDriver, "cache", c.CacheDriver,
		"algorithm", c.Algorithm, "token_validity", c.TokenValidityDuration.String(),
		"password_scheme", c.PasswordScheme)

	return app, nil
}

func (app *App) newCache(ctx context.Context) (tokens.Cache, error) {
	ttl := app.config.CacheExpiry()

	if app.config.CacheDriver == config.CacheMemory {
		return tokens.NewMemoryCache(ttl, nil), nil
	}

	rc, err := tokens.DialRedis(ctx, app.config.RedisURL, ttl)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, rc)
	return rc, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := hs.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.authService, app.metrics)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases the stores.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close()
	app.logger.Info(context.Background(), "App stopped")
}

func (app *App) close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i].Close(); err != nil {
			app.logger.Warn(context.Background(), "close failed", "error", err)
		}
	}
	app.closers = nil
}
