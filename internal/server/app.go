// Package server initializes and runs the EventHub API server. It wires the
// database, repositories, services, banner storage and the HTTP boundary,
// and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/eventhub/internal/filex"
	"github.com/dmitrijs2005/eventhub/internal/logging"
	"github.com/dmitrijs2005/eventhub/internal/server/banners"
	"github.com/dmitrijs2005/eventhub/internal/server/config"
	"github.com/dmitrijs2005/eventhub/internal/server/httpapi"
	"github.com/dmitrijs2005/eventhub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/eventhub/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	store, err := newBannerStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("banner store init error: %w", err)
	}

	us := services.NewUserService(db, rm, cfg)
	es := services.NewEventService(db, rm)

	srv := httpapi.NewServer(cfg, logger, us, es, store, db)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func newBannerStore(cfg *config.Config) (banners.Store, error) {
	switch cfg.BannerStorage {
	case config.BannerStorageS3:
		return banners.NewS3Store(cfg), nil
	case config.BannerStorageLocal:
		dir := cfg.UploadDir
		if !filepath.IsAbs(dir) {
			// Relative upload dirs are resolved under the working directory.
			d, err := filex.EnsureSubdDir(dir)
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return banners.NewLocalStore(dir)
	default:
		return nil, fmt.Errorf("unknown banner storage %q", cfg.BannerStorage)
	}
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

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err.Error())
	}
}
