package web

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/brandalign/brandalign/internal/config"
	"github.com/brandalign/brandalign/internal/governance"
	fiberlogger "github.com/brandalign/brandalign/internal/logger/adapter/fiber"
	"github.com/brandalign/brandalign/internal/web/handler"
	"github.com/brandalign/brandalign/internal/web/handler/admin/analytics"
	"github.com/brandalign/brandalign/internal/web/handler/admin/brand"
	"github.com/brandalign/brandalign/internal/web/handler/admin/provider"
	"github.com/brandalign/brandalign/internal/web/handler/admin/user"
	"github.com/brandalign/brandalign/internal/web/handler/api"
	"github.com/brandalign/brandalign/internal/web/handler/history"
	"github.com/brandalign/brandalign/internal/web/handler/results"
	"github.com/brandalign/brandalign/internal/web/handler/upload"
	"github.com/brandalign/brandalign/internal/web/middleware/role"
	"github.com/brandalign/brandalign/internal/web/session"
)

const (
	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = "/checkalive"
	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"
	// RolePath switches the view mode.
	RolePath = "/role"

	bodyLimitSlack = 1 << 20
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
}

// Start serves HTTP on addr until Shutdown is called.
func (s *Service) Start(addr string) error {
	s.alive.Store(true)

	if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("fiber listen error: %w", err)
	}

	return nil
}

// Shutdown stops the web service. Unless fast shutdown is set the check alive
// endpoint reports failure for the configured time first, so load balancers
// can take this instance out of rotation.
func (s *Service) Shutdown(ctx context.Context) error {
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)

		select {
		case <-time.After(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second):
		case <-ctx.Done():
		}
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.ShutdownWithContext(ctx); err != nil {
		return err
	}

	log.Info().Msg("http server was stopped ... good bye...")

	return nil
}

// SetFastShutdown skips the check alive grace period on shutdown.
func (s *Service) SetFastShutdown(fast bool) {
	s.fastShutDown = fast
}

// checkAlive reports 503 while shutting down.
func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// templateFuncs are the helpers available in every template.
func templateFuncs() map[string]interface{} {
	return map[string]interface{}{
		"iterate": func(count int) []int {
			result := make([]int, count)
			for i := range result {
				result[i] = i
			}

			return result
		},
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"round": func(v float64) int {
			return int(math.Round(v))
		},
		"statusClass": func(status governance.HistoryStatus) string {
			switch status {
			case governance.StatusPass:
				return "pass"
			case governance.StatusNeedsReview:
				return "review"
			default:
				return "critical"
			}
		},
		"scoreClass": func(score float64) string {
			return strings.ToLower(strings.ReplaceAll(string(governance.StatusForScore(score)), " ", "-"))
		},
		"severityClass": func(s governance.Severity) string {
			return strings.ToLower(string(s))
		},
		"isAdmin": func(r interface{}) bool {
			v, ok := r.(governance.UserRole)
			return ok && v == governance.RoleAdmin
		},
		"messages": func(v interface{}) []string {
			switch m := v.(type) {
			case string:
				return []string{m}
			case []string:
				return m
			default:
				return nil
			}
		},
		"date": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
	}
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if db == nil {
		return nil, errors.New("db cannot be nil")
	}

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	templateEngine.AddFuncMap(templateFuncs())

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
			BodyLimit:      int(cfg.Upload.MaxFileSize) + bodyLimitSlack,

			// exposes the session role to the layout
			PassLocalsToViews: true,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:         cfg.Log,
		CheckAliveURI:  CheckAlivePath,
		RequestIDLocal: "requestid",
	}))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	service := &Service{
		cfg: cfg,
		App: app,
		db:  db,
	}

	app.Get(CheckAlivePath, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// the JSON API is stateless, everything registered after this line has a session
	if err := api.Handler.Init(app, cfg, db); err != nil {
		return nil, err
	}

	app.Use(session.Middleware(cfg.Webserver.Session.ExpiryTime))

	app.Post(RolePath, role.Switch)

	// init handlers (they register their own routes)
	for _, h := range []handler.Service{
		&upload.Handler,
		&results.Handler,
		&history.Handler,
		&analytics.Handler,
		&brand.Handler,
		&provider.Handler,
		&user.Handler,
	} {
		if err := h.Init(app, cfg, db); err != nil {
			return nil, err
		}
	}

	// the landing page depends on the view mode
	app.Get("/", func(c *fiber.Ctx) error {
		if session.From(c).IsAdmin() {
			return c.Redirect(analytics.Path)
		}

		return c.Redirect(upload.Path)
	})

	return service, nil
}
