// Package server wires configuration, storage, services and transports into a
// runnable application and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/logging"
	"github.com/dmitrijs2005/jobtracker/internal/server/api"
	"github.com/dmitrijs2005/jobtracker/internal/server/auth"
	"github.com/dmitrijs2005/jobtracker/internal/server/config"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobtracker/internal/server/services"
	"github.com/gin-gonic/gin"

	gs "github.com/dmitrijs2005/jobtracker/internal/server/grpc"
)

const pingTimeout = 5 * time.Second

// Test seams.
var (
	openDB               = openPostgres
	newRepositoryManager = func() repomanager.RepositoryManager { return repomanager.NewPostgresRepositoryManager() }
	logOutput            io.Writer = os.Stdout
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	tokens      *auth.TokenService
	userService *services.UserService
	jobService  *services.JobService
}

// openPostgres opens the pgx pool, applies the pool limits and checks that
// the database answers.
func openPostgres(ctx context.Context, c *config.Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	db.SetMaxOpenConns(c.DBMaxOpenConns)
	db.SetMaxIdleConns(c.DBMaxOpenConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return db, nil
}

// NewApp validates c, connects to the database, runs migrations and builds
// the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger := logging.New(logging.Format(c.LogFormat), logOutput)
	if c.WeakSecret() {
		logger.Warn(ctx, "token secret is shorter than recommended", "min_bytes", config.MinSecretKeyBytes)
	}

	db, err := openDB(ctx, c)
	if err != nil {
		return nil, err
	}

	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	tokens := auth.NewTokenService(c.SecretKey)

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		tokens:      tokens,
		userService: services.NewUserService(db, rm, tokens, logger.With("module", "users")),
		jobService:  services.NewJobService(db, rm, logger.With("module", "jobs")),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case sig := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", sig.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	router, err := api.NewRouter(api.Deps{
		Users:          app.userService,
		Jobs:           app.jobService,
		Tokens:         app.tokens,
		DB:             app.db,
		Logger:         app.logger,
		AllowedOrigins: app.config.AllowedOrigins,
	})
	if err != nil {
		cancelFunc()
		return err
	}

	s := api.NewHTTPServer(app.config.EndpointAddrHTTP, router, app.logger, app.config.ShutdownTimeout)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "HTTP server failed", "error", err)
		cancelFunc()
		return err
	}
	return nil
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := gs.NewHealthServer(app.config.EndpointAddrGRPC, app.logger, app.db)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "gRPC server failed", "error", err)
		cancelFunc()
		return err
	}
	return nil
}

// Run starts the HTTP API and, when configured, the gRPC health probe. It
// returns after both have stopped, which happens on a termination signal,
// when ctx is cancelled or when either server fails. The pool is closed last.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	gin.SetMode(gin.ReleaseMode)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	collect := func(err error) {
		if err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		collect(app.startHTTPServer(ctx, cancelFunc))
	}()

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			collect(app.startGRPCServer(ctx, cancelFunc))
		}()
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")

	return errors.Join(errs...)
}
