// Package daemon wires the database, the model provider and the web service together
// and runs them until the process is asked to stop.
package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/brandalign/brandalign/internal/config"
	"github.com/brandalign/brandalign/internal/db"
	"github.com/brandalign/brandalign/internal/db/controller/brand"
	"github.com/brandalign/brandalign/internal/db/controller/history"
	"github.com/brandalign/brandalign/internal/db/controller/user"
	"github.com/brandalign/brandalign/internal/db/dsn"
	"github.com/brandalign/brandalign/internal/genai"
	"github.com/brandalign/brandalign/internal/web"
	"github.com/brandalign/brandalign/internal/web/session"
)

// SessionTable is the table of the persistent session storage.
const SessionTable = "sessions"

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
}

// New opens the database, seeds the sample data and prepares the web service.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err = seed(gdb); err != nil {
		return nil, err
	}

	// the engine reports a broken provider on every call, the web ui stays usable to fix it
	if err = genai.Open(ctx, gdb, &cfg.Model); err != nil {
		log.Error().Err(err).Msg("model provider not ready")
	}

	session.Init(SessionStorage(cfg))

	webService, err := web.New(cfg, gdb)
	if err != nil {
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		db:         gdb,
		webService: webService,
	}, nil
}

// seed fills an empty database with the default guidelines, sample history and users.
func seed(gdb *gorm.DB) error {
	seeds := []struct {
		name string
		fn   func(*gorm.DB) error
	}{
		{"brand settings", brand.Seed},
		{"history", history.Seed},
		{"users", user.Seed},
	}

	for _, s := range seeds {
		if err := s.fn(gdb); err != nil {
			return errors.Wrapf(err, "failed to seed %s", s.name)
		}
	}

	return nil
}

// SessionStorage keeps sessions next to the data on server databases.
// sqlite deployments use the in-memory store.
func SessionStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.MySQL(cfg),
			Table:         SessionTable,
		})
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.PostgresURL(cfg),
			Table:         SessionTable,
		})
	default:
		return nil
	}
}

// Run serves until ctx is cancelled, then shuts the web service down gracefully.
func (d *Daemon) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), d.shutdownTimeout())
		defer cancel()

		return d.webService.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	return d.close()
}

// SetFastShutdown skips the load balancer grace period.
func (d *Daemon) SetFastShutdown(fast bool) {
	d.webService.SetFastShutdown(fast)
}

func (d *Daemon) shutdownTimeout() time.Duration {
	const serverStop = 10 * time.Second

	return time.Duration(d.cfg.Webserver.ShutDownTime)*time.Second + serverStop
}

func (d *Daemon) close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
