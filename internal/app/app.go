package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lcalzada-xor/towermap/internal/adapters/backend"
	"github.com/lcalzada-xor/towermap/internal/adapters/reporting"
	"github.com/lcalzada-xor/towermap/internal/adapters/web"
	webserver "github.com/lcalzada-xor/towermap/internal/adapters/web/server"
	"github.com/lcalzada-xor/towermap/internal/config"
	"github.com/lcalzada-xor/towermap/internal/core/domain"
	"github.com/lcalzada-xor/towermap/internal/core/services/overlay"
	"github.com/lcalzada-xor/towermap/internal/core/services/progress"
	"github.com/lcalzada-xor/towermap/internal/core/services/session"
	"github.com/lcalzada-xor/towermap/internal/geo"
	"github.com/lcalzada-xor/towermap/internal/mock"
	"github.com/lcalzada-xor/towermap/internal/telemetry"
)

// shutdownTimeout bounds how long the mock backend may take to drain.
const shutdownTimeout = 5 * time.Second

// Application holds the core components of the application.
// It acts as the Facade for the entire system, orchestrating services and infrastructure.
type Application struct {
	Config          *config.Config
	Session         *session.Session
	Hub             *web.Hub
	WebServer       *webserver.Server
	MockIntegration *mock.Integration
}

// New creates a new Application instance and bootstraps its components.
func New(cfg *config.Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		Config: cfg,
	}

	if err := app.bootstrap(); err != nil {
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}

	return app, nil
}

// bootstrap orchestrates the initialization sequence.
func (app *Application) bootstrap() error {
	// 1. Foundation
	telemetry.InitMetrics()

	// 2. Tower backend
	baseURL, err := app.initBackendURL()
	if err != nil {
		return err
	}
	client, err := backend.NewClient(backend.Config{
		BaseURL: baseURL,
		Timeout: app.Config.BackendTimeout,
	})
	if err != nil {
		app.stopMock()
		return fmt.Errorf("failed to init backend client: %w", err)
	}

	// 3. Map session
	app.Hub = web.NewHub(app.Config.AllowedOrigins)
	app.Session = session.New(
		client,
		app.Hub,
		overlay.NewRegistry(app.Hub),
		progress.NewSimulator(app.Hub, app.Config.ProgressStep, app.Config.ProgressInterval),
		session.WithLogger(slog.Default().With("component", "session")),
		session.WithInitialView(domain.MapView{
			Center: domain.Coordinate{Lat: app.Config.Latitude, Lon: app.Config.Longitude},
			Zoom:   domain.ZoomDefault,
		}),
	)

	// 4. Web server
	app.WebServer = webserver.NewServer(webserver.Options{
		Addr:        app.Config.Addr,
		StaticDir:   app.Config.StaticDir,
		Carriers:    app.Config.Carriers,
		Fallback:    geo.NewStaticProvider(app.Config.Latitude, app.Config.Longitude),
		LocateLimit: app.Config.LocateLimit,
	}, app.Session, app.Hub, reporting.NewPDFExporter())

	return nil
}

// initBackendURL returns the configured backend, or starts the mock one.
func (app *Application) initBackendURL() (string, error) {
	if !app.Config.MockMode {
		return app.Config.BackendURL, nil
	}

	app.MockIntegration = mock.NewIntegration(app.Config.MockScenario, app.Config.Carriers, app.Config.MockLatency)
	url, err := app.MockIntegration.Start()
	if err != nil {
		return "", fmt.Errorf("failed to start mock backend: %w", err)
	}
	log.Println("Mock Mode Active: Serving generated towers")
	return url, nil
}

func (app *Application) stopMock() {
	if app.MockIntegration == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.MockIntegration.Stop(ctx); err != nil {
		log.Printf("Mock backend shutdown error: %v", err)
	}
}

// Run starts the session loop and web server and blocks until ctx is
// cancelled or one of them fails.
func (app *Application) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.Session.Run(ctx)
	})

	g.Go(func() error {
		log.Printf("Starting Web Server on %s", app.Config.Addr)
		if err := app.WebServer.Run(ctx); err != nil {
			return fmt.Errorf("web server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		app.stopMock()
		return nil
	})

	return g.Wait()
}
