package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Addr             string
	BackendURL       string
	BackendTimeout   time.Duration // 0 disables the client timeout
	Latitude         float64
	Longitude        float64
	MockMode         bool
	MockScenario     string
	MockLatency      time.Duration
	StaticDir        string
	Carriers         []string
	ProgressStep     int
	ProgressInterval time.Duration
	AllowedOrigins   []string
	LocateLimit      int // geocode requests per client per minute
	Debug            bool
}

// Load reads an optional .env file, then parses command line flags and
// environment variables to populate Config.
// Flags take precedence over environment variables.
func Load() *Config {
	loadEnvFile(getEnv("TOWERMAP_ENV_FILE", ".env"))
	return LoadFrom(flag.CommandLine, os.Args[1:])
}

// loadEnvFile imports variables from path without overriding ones already set.
func loadEnvFile(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("Warning: Could not load %s: %v", path, err)
	}
}

// LoadFrom is Load on an explicit flag set and argument list.
func LoadFrom(fs *flag.FlagSet, args []string) *Config {
	cfg := &Config{}

	// Defaults and Environment Variables
	cfg.Addr = getEnv("TOWERMAP_ADDR", ":8080")
	cfg.BackendURL = getEnv("TOWERMAP_BACKEND_URL", "")
	cfg.Latitude = getEnvFloat("TOWERMAP_LAT", 40.730610)
	cfg.Longitude = getEnvFloat("TOWERMAP_LNG", -73.935242)
	cfg.MockMode = getEnvBool("TOWERMAP_MOCK", false)
	cfg.MockScenario = getEnv("TOWERMAP_MOCK_SCENARIO", "basic")
	cfg.StaticDir = getEnv("TOWERMAP_STATIC_DIR", "")
	carriersStr := getEnv("TOWERMAP_CARRIERS", "AT&T,T-Mobile,Verizon")
	originsStr := getEnv("TOWERMAP_ALLOWED_ORIGINS", "")
	cfg.ProgressStep = getEnvInt("TOWERMAP_PROGRESS_STEP", 5)
	progressMS := getEnvInt("TOWERMAP_PROGRESS_INTERVAL_MS", 100)
	timeoutMS := getEnvInt("TOWERMAP_BACKEND_TIMEOUT_MS", 0)
	latencyMS := getEnvInt("TOWERMAP_MOCK_LATENCY_MS", 800)
	cfg.LocateLimit = getEnvInt("TOWERMAP_LOCATE_LIMIT", 30)

	// Command Line Flags (Override Env)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP server address")
	fs.StringVar(&cfg.BackendURL, "backend", cfg.BackendURL, "Tower search backend base URL")
	fs.IntVar(&timeoutMS, "backend-timeout", timeoutMS, "Backend request timeout in milliseconds (0 = none)")
	fs.Float64Var(&cfg.Latitude, "lat", cfg.Latitude, "Initial map latitude and fallback current location")
	fs.Float64Var(&cfg.Longitude, "lng", cfg.Longitude, "Initial map longitude and fallback current location")
	fs.BoolVar(&cfg.MockMode, "mock", cfg.MockMode, "Serve generated towers from an in-process mock backend")
	fs.StringVar(&cfg.MockScenario, "mock-scenario", cfg.MockScenario, "Mock data scenario: basic, dense or empty")
	fs.IntVar(&latencyMS, "mock-latency", latencyMS, "Mock backend response delay in milliseconds")
	fs.StringVar(&cfg.StaticDir, "static", cfg.StaticDir, "Directory of static web assets (empty to disable)")
	fs.StringVar(&carriersStr, "carriers", carriersStr, "Carriers offered for carrier searches (comma separated)")
	fs.IntVar(&cfg.ProgressStep, "progress-step", cfg.ProgressStep, "Loading indicator step in percent")
	fs.IntVar(&progressMS, "progress-interval", progressMS, "Loading indicator tick in milliseconds")
	fs.StringVar(&originsStr, "origins", originsStr, "Extra allowed WebSocket origins (comma separated)")
	fs.IntVar(&cfg.LocateLimit, "locate-limit", cfg.LocateLimit, "Geocode requests allowed per client per minute")
	fs.BoolVar(&cfg.Debug, "debug", false, "Enable verbose debug logging")

	fs.Parse(args)

	cfg.Carriers = parseList(carriersStr)
	cfg.AllowedOrigins = parseList(originsStr)
	cfg.ProgressInterval = time.Duration(progressMS) * time.Millisecond
	cfg.BackendTimeout = time.Duration(timeoutMS) * time.Millisecond
	cfg.MockLatency = time.Duration(latencyMS) * time.Millisecond

	return cfg
}

// Validate reports settings the application cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if !c.MockMode && strings.TrimSpace(c.BackendURL) == "" {
		errs = append(errs, errors.New("backend URL is required unless mock mode is enabled"))
	}
	if c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180 {
		errs = append(errs, fmt.Errorf("invalid location %f,%f", c.Latitude, c.Longitude))
	}
	if c.ProgressStep <= 0 || c.ProgressStep > 100 {
		errs = append(errs, fmt.Errorf("progress step must be in 1..100, got %d", c.ProgressStep))
	}
	if c.ProgressInterval <= 0 {
		errs = append(errs, errors.New("progress interval must be positive"))
	}
	if c.BackendTimeout < 0 {
		errs = append(errs, errors.New("backend timeout must not be negative"))
	}
	if len(c.Carriers) == 0 {
		errs = append(errs, errors.New("at least one carrier is required"))
	}
	return errors.Join(errs...)
}

func parseList(s string) []string {
	var items []string
	if s == "" {
		return items
	}
	parts := strings.Split(s, ",")
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
