package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/passvault/internal/api"
	"github.com/dmitrijs2005/passvault/internal/config"
	"github.com/dmitrijs2005/passvault/internal/grpcapi"
	"github.com/dmitrijs2005/passvault/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger
	core   *Core
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogLevel, c.LogFormat, os.Stdout)

	core, err := NewCore(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	return &App{config: c, logger: logger, core: core}, nil
}

// runner is a server that blocks until its context is cancelled.
type runner interface {
	Run(ctx context.Context) error
}

func (app *App) servers() map[string]runner {
	c := app.core
	return map[string]runner{
		"http": api.NewServer(api.Options{
			Addr:               app.config.HTTPAddr,
			AllowedOrigins:     app.config.AllowedOrigins,
			LoginRatePerMinute: app.config.LoginRatePerMinute,
			LoginBurst:         app.config.LoginBurst,
			TrustProxyHeaders:  app.config.TrustProxyHeaders,
		}, c.Auth, c.Records, c.Backup, c.Tokens, c.Session, app.logger),
		"grpc": grpcapi.NewGRPCServer(app.config.GRPCAddr, c.Auth, c.Records, c.Tokens, c.Session, app.logger),
	}
}

// Run starts the HTTP and gRPC servers and blocks until a termination
// signal arrives, ctx is cancelled or one of the servers fails. The
// database is closed before returning.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for name, srv := range app.servers() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Run(ctx); err != nil {
				app.logger.Error(ctx, "server failed", "server", name, "error", err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				cancelFunc()
			}
		}()
	}

	wg.Wait()

	if err := app.core.Close(); err != nil {
		errs = append(errs, err)
	}

	app.logger.Info(context.Background(), "App stopped")
	return errors.Join(errs...)
}
