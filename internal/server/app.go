// Package server wires configuration, storage, services and the HTTP API
// together and runs them until the process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/alumniauth/internal/logging"
	"github.com/dmitrijs2005/alumniauth/internal/server/auth"
	"github.com/dmitrijs2005/alumniauth/internal/server/config"
	"github.com/dmitrijs2005/alumniauth/internal/server/httpapi"
	"github.com/dmitrijs2005/alumniauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/alumniauth/internal/server/services"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	userService   *services.UserService
	statusService *services.StatusService
	issuer        *auth.Issuer
}

// NewApp validates c, opens the store, applies migrations and builds the
// services. Close releases the database handle.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(c.Env).With("app", "alumniauth")

	rm, db, err := openStorage(ctx, c)
	if err != nil {
		return nil, err
	}

	issuer, err := auth.NewIssuer(auth.IssuerConfig{
		AccessSecret:    []byte(c.AccessSecret),
		RefreshSecret:   []byte(c.RefreshSecret),
		AccessTokenTTL:  c.AccessTokenTTL,
		RefreshTokenTTL: c.RefreshTokenTTL,
	})
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	us, err := services.NewUserService(db, rm, auth.NewBcryptHasher(c.BcryptCost), issuer)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("user service: %w", err)
	}

	logger.Info(ctx, "Storage ready", "driver", c.StorageDriver)

	return &App{
		config:        c,
		logger:        logger,
		db:            db,
		userService:   us,
		statusService: services.NewStatusService(db, rm),
		issuer:        issuer,
	}, nil
}

func openStorage(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, *sql.DB, error) {
	if c.StorageDriver == config.StorageMemory {
		return repomanager.NewInMemoryRepositoryManager(), nil, nil
	}

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		closeDB(db)
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}

	return rm, db, nil
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}

// Close releases the database handle, if any.
func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	return app.db.Close()
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
	s := httpapi.NewServer(httpapi.Config{
		Address:         app.config.Addr(),
		RoutePrefix:     app.config.RoutePrefix,
		ShutdownTimeout: app.config.ShutdownTimeout,
	}, app.logger, app.userService, app.statusService, app.issuer)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves HTTP until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(ctx, "App stopped")
}
