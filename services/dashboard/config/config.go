package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds environment-driven settings for the dashboard.
type Config struct {
	Port      int    `toml:"port"`
	Env       string `toml:"env"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	DataSource  string `toml:"data_source"`
	Path2019    string `toml:"path_2019"`
	Path2022    string `toml:"path_2022"`
	DatabaseURL string `toml:"database_url"`

	BearerToken string `toml:"bearer_token"`

	RedisURL       string   `toml:"redis_url"`
	RenderCacheTTL Duration `toml:"render_cache_ttl"`
	RenderRate     float64  `toml:"render_rate"`
	RenderBurst    int      `toml:"render_burst"`

	// Chart size in inches.
	ChartWidth  float64 `toml:"chart_width"`
	ChartHeight float64 `toml:"chart_height"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Port:           8080,
		Env:            "development",
		LogLevel:       "info",
		LogFormat:      "json",
		DataSource:     SourceCSV,
		Path2019:       "Global Food Security Index 2019.csv",
		Path2022:       "Global Food Security Index 2022.csv",
		RenderCacheTTL: Duration{10 * time.Minute},
		RenderRate:     20,
		RenderBurst:    40,
		ChartWidth:     10,
		ChartHeight:    7,
	}
}

// Load reads configuration from an optional TOML file, then environment
// variables (optionally .env). Environment wins over the file.
func Load(configFile string) (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Default()

	if configFile == "" {
		configFile = strings.TrimSpace(os.Getenv("GFSI_CONFIG"))
	}
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", configFile, err)
		}
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	setString(&cfg.Env, "ENV")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFormat, "LOG_FORMAT")
	setString(&cfg.DataSource, "DATA_SOURCE")
	setString(&cfg.Path2019, "GFSI_2019_PATH")
	setString(&cfg.Path2022, "GFSI_2022_PATH")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.BearerToken, "API_BEARER_TOKEN")
	setString(&cfg.RedisURL, "REDIS_URL")

	if v := strings.TrimSpace(os.Getenv("RENDER_CACHE_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return cfg, fmt.Errorf("invalid RENDER_CACHE_TTL: %s", v)
		}
		cfg.RenderCacheTTL = Duration{d}
	}

	if v := strings.TrimSpace(os.Getenv("RENDER_RATE")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return cfg, fmt.Errorf("invalid RENDER_RATE: %s", v)
		}
		cfg.RenderRate = f
	}

	if v := strings.TrimSpace(os.Getenv("RENDER_BURST")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid RENDER_BURST: %s", v)
		}
		cfg.RenderBurst = n
	}

	if err := setInches(&cfg.ChartWidth, "CHART_WIDTH"); err != nil {
		return cfg, err
	}
	if err := setInches(&cfg.ChartHeight, "CHART_HEIGHT"); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.DataSource {
	case SourceCSV:
		if c.Path2019 == "" || c.Path2022 == "" {
			return errors.New("GFSI_2019_PATH and GFSI_2022_PATH are required for the csv source")
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres source")
		}
	default:
		return fmt.Errorf("invalid DATA_SOURCE: %s", c.DataSource)
	}
	if c.Port <= 0 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	return nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Duration lets TOML files spell durations as strings ("10m").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInches(dst *float64, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return fmt.Errorf("invalid %s: %s", key, v)
	}
	*dst = f
	return nil
}
