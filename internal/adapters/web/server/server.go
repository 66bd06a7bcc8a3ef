package server

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/lcalzada-xor/towermap/internal/adapters/reporting"
	"github.com/lcalzada-xor/towermap/internal/adapters/web/handlers"
	"github.com/lcalzada-xor/towermap/internal/adapters/web/websocket"
	"github.com/lcalzada-xor/towermap/internal/core/ports"
	"github.com/lcalzada-xor/towermap/internal/geo"
)

// Options configures a Server.
type Options struct {
	Addr      string
	StaticDir string
	Carriers  []string
	// Fallback answers geolocation requests that carry no browser report.
	Fallback geo.Provider
	// LocateLimit is the number of geocode requests a client may make per minute.
	LocateLimit int
}

// Server handles HTTP and WebSocket connections.
type Server struct {
	Addr      string
	StaticDir string
	Service   ports.SessionService
	Hub       *websocket.Hub

	MapHandler    *handlers.MapHandler
	SearchHandler *handlers.SearchHandler
	ExportHandler *handlers.ExportHandler

	locateLimit int
	srv         *http.Server
}

// NewServer creates a new web server. The hub must be the view the session
// renders into.
func NewServer(opts Options, service ports.SessionService, hub *websocket.Hub, pdfExporter *reporting.PDFExporter) *Server {
	hub.Session = service
	limit := opts.LocateLimit
	if limit <= 0 {
		limit = 30
	}
	return &Server{
		Addr:          opts.Addr,
		StaticDir:     opts.StaticDir,
		Service:       service,
		Hub:           hub,
		MapHandler:    handlers.NewMapHandler(service, opts.Carriers, opts.Fallback),
		SearchHandler: handlers.NewSearchHandler(service),
		ExportHandler: handlers.NewExportHandler(service, pdfExporter),
		locateLimit:   limit,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	handler := SetupRoutes(ctx, s)

	// "towermap-server" is the name of the operation (span)
	instrumentedHandler := otelhttp.NewHandler(handler, "towermap-server")

	s.srv = &http.Server{
		Handler:           instrumentedHandler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		log.Println("Web Server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Web Server shutdown error: %v", err)
		}
	}()

	log.Printf("Web server listening on %s", ln.Addr())
	if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
