// Package server wires the user service together: storage, token service,
// account logic, and the HTTP and gRPC endpoints, with graceful shutdown on
// SIGINT/SIGTERM.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/placeholder/internal/cryptox"
	"github.com/dmitrijs2005/placeholder/internal/logging"
	"github.com/dmitrijs2005/placeholder/internal/server/auth"
	"github.com/dmitrijs2005/placeholder/internal/server/config"
	"github.com/dmitrijs2005/placeholder/internal/server/httpapi"
	"github.com/dmitrijs2005/placeholder/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/placeholder/internal/server/services"

	gs "github.com/dmitrijs2005/placeholder/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	tokens      *auth.Service
	userService *services.UserService
}

// openRepoManager is a seam for tests.
var openRepoManager = func(ctx context.Context, dsn string) (repomanager.RepositoryManager, error) {
	return repomanager.OpenPostgres(ctx, dsn)
}

// NewApp builds an App from c. Log lines go to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	logger := logging.NewJSONLogger(w, c.LogLevel)

	if c.UsesDefaultSecret() {
		logger.Warn(ctx, "using the built-in development secret key, set -s or secret_key before exposing this server")
	}

	tokens, err := auth.NewService(auth.Settings{Secret: []byte(c.SecretKey), TTL: c.TokenTTL})
	if err != nil {
		return nil, fmt.Errorf("token service init error: %w", err)
	}

	var rm repomanager.RepositoryManager
	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "no database DSN configured, using in-memory storage")
		rm = repomanager.NewInMemoryRepositoryManager()
	} else {
		rm, err = openRepoManager(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	us := services.NewUserService(rm, cryptox.NewBcryptHasher(c.BcryptCost), tokens, logger)

	return &App{config: c, logger: logger, repomanager: rm, tokens: tokens, userService: us}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.tokens)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.tokens)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives, or a server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
