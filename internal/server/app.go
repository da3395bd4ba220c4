// Package server wires the LoveLab server together: PostgreSQL storage and
// migrations, the notification listener and hub, services, and the gRPC
// endpoint, all stopped together on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/logging"
	"github.com/dmitrijs2005/lovelab/internal/server/config"
	gs "github.com/dmitrijs2005/lovelab/internal/server/grpc"
	"github.com/dmitrijs2005/lovelab/internal/server/notify"
	"github.com/dmitrijs2005/lovelab/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/lovelab/internal/server/services"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	hub      *notify.Hub
	server   *gs.GRPCServer
	listener *notify.Listener
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout)

	db, err := sqlOpen("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	hasher := services.NewDeviceHasher(c.SecretKey)
	hub := notify.NewHub()

	srv := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, hub, gs.Services{
		Confessions: services.NewConfessionService(db, rm, services.NewRateLimiter(c.SubmitRatePerMinute, time.Minute), hasher),
		Devices:     services.NewDeviceService(c),
		Practice:    services.NewPracticeService(db, rm, hasher, c.PracticeGate),
		Share:       services.NewShareService(c),
	})

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		hub:      hub,
		server:   srv,
		listener: notify.NewListener(c.DatabaseDSN, hub, notify.PgxConnect, logger),
	}, nil
}

// Run serves until a termination signal arrives or one of the components
// fails, then stops the others and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "practice_gate", app.config.PracticeGate)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.listener.Run(ctx) })
	g.Go(func() error { return app.server.Run(ctx) })

	err := g.Wait()
	app.hub.Close()
	if cerr := app.db.Close(); cerr != nil && err == nil {
		err = cerr
	}
	app.logger.Info(context.Background(), "App stopped")
	return err
}
