package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/lcalzada-xor/towermap/internal/core/domain"
)

// Backend endpoint paths.
const (
	PathGeocode   = "/geocode-location"
	PathFilter    = "/filter-towers"
	PathBroadArea = "/broad-area-search"
)

// maxBody bounds how much of a response is read.
const maxBody = 8 << 20

// Config holds the backend client settings.
type Config struct {
	BaseURL string
	// Timeout of 0 means requests are only bounded by their context.
	Timeout time.Duration
	// Transport overrides the base round tripper, mostly for tests.
	Transport http.RoundTripper
}

// Client implements ports.TowerBackend over the JSON HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client. Outbound requests are traced with otelhttp.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("backend base URL is required")
	}
	rt := cfg.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(rt),
		},
	}, nil
}

type geocodeRequest struct {
	Location string `json:"location"`
}

type searchRequest struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Carrier string  `json:"carrier,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Geocode resolves a place name. A response carrying an "error" field is
// returned as *domain.GeocodeError, whatever its status.
func (c *Client) Geocode(ctx context.Context, location string) (domain.Coordinate, error) {
	status, body, err := c.post(ctx, PathGeocode, geocodeRequest{Location: location})
	if err != nil {
		return domain.Coordinate{}, err
	}

	var payload struct {
		Lat   *float64 `json:"lat"`
		Lon   *float64 `json:"lon"`
		Error string   `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		if status/100 != 2 {
			return domain.Coordinate{}, &domain.BackendError{Status: status, Message: http.StatusText(status)}
		}
		return domain.Coordinate{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if payload.Error != "" {
		return domain.Coordinate{}, &domain.GeocodeError{Message: payload.Error}
	}
	if status/100 != 2 {
		return domain.Coordinate{}, &domain.BackendError{Status: status, Message: http.StatusText(status)}
	}
	if payload.Lat == nil || payload.Lon == nil {
		return domain.Coordinate{}, errors.New("decode geocode response: missing lat/lon")
	}
	return domain.Coordinate{Lat: *payload.Lat, Lon: *payload.Lon}, nil
}

// FilterTowers asks for the closest tower of each type for a carrier.
func (c *Client) FilterTowers(ctx context.Context, at domain.Coordinate, carrier string) ([]domain.Tower, error) {
	return c.towers(ctx, PathFilter, searchRequest{Lat: at.Lat, Lon: at.Lon, Carrier: carrier})
}

// BroadAreaSearch asks for every tower covering the coordinate.
func (c *Client) BroadAreaSearch(ctx context.Context, at domain.Coordinate) ([]domain.Tower, error) {
	return c.towers(ctx, PathBroadArea, searchRequest{Lat: at.Lat, Lon: at.Lon})
}

func (c *Client) towers(ctx context.Context, path string, req searchRequest) ([]domain.Tower, error) {
	status, body, err := c.post(ctx, path, req)
	if err != nil {
		return nil, err
	}
	if status/100 != 2 {
		return nil, backendError(status, body)
	}

	var towers []domain.Tower
	if err := json.Unmarshal(body, &towers); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	return towers, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) (int, []byte, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return 0, nil, fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read %s response: %w", path, err)
	}
	return resp.StatusCode, body, nil
}

func backendError(status int, body []byte) error {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return &domain.BackendError{Status: status, Message: e.Error}
	}
	return &domain.BackendError{Status: status, Message: http.StatusText(status)}
}
