package mock

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"
)

// Integration runs a mock Backend on its own loopback listener so the app
// can talk to it exactly like a remote service.
type Integration struct {
	backend  *Backend
	scenario string
	server   *http.Server
	listener net.Listener
}

// NewIntegration creates a mock integration for scenario.
func NewIntegration(scenario string, carriers []string, latency time.Duration) *Integration {
	if scenario == "" {
		scenario = "basic"
	}
	log.Printf("Initializing mock backend with scenario: %s", scenario)
	b := NewBackend(scenario, carriers, latency)
	return &Integration{
		backend:  b,
		scenario: scenario,
		server:   &http.Server{Handler: b, ReadHeaderTimeout: 5 * time.Second},
	}
}

// Start begins serving and returns the base URL of the mock backend.
func (m *Integration) Start() (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("mock backend listen: %w", err)
	}
	m.listener = ln
	go func() {
		if err := m.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Mock backend stopped: %v", err)
		}
	}()
	url := "http://" + ln.Addr().String()
	log.Printf("Mock backend listening on %s", url)
	return url, nil
}

// Stop shuts the mock backend down.
func (m *Integration) Stop(ctx context.Context) error {
	if m.listener == nil {
		return nil
	}
	log.Printf("Mock backend stopped")
	return m.server.Shutdown(ctx)
}

// Handler returns the backend handler, for mounting in tests.
func (m *Integration) Handler() http.Handler {
	return m.backend
}

// Scenario returns the current scenario.
func (m *Integration) Scenario() string {
	return m.scenario
}
