package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config 应用配置
type Config struct {
	Port       string
	APIBaseURL string // students API, without the /api/students path

	UpstreamTimeout time.Duration // 0 keeps the transport default (none)
	UpstreamRetries int           // 0 disables retries

	NavSecret string        // HMAC key for the navigation token
	NavTTL    time.Duration // navigation token lifetime

	LabelsFile string // optional YAML label overrides
	LogLevel   string
	LogFile    string

	RateLimit  int           // requests per RateWindow per client IP, 0 disables
	RateWindow time.Duration
}

// Defaults
const (
	DefaultPort       = ":8080"
	DefaultAPIBaseURL = "https://mbbs-server.onrender.com"
	DefaultNavTTL     = 30 * time.Minute
	DefaultRateLimit  = 60
	DefaultRateWindow = time.Minute
)

// LoadDotEnv loads .env files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Load 加载配置
func Load() (*Config, error) {
	cfg := &Config{
		Port:       getEnv("PORT", DefaultPort),
		APIBaseURL: getEnv("API_BASE_URL", DefaultAPIBaseURL),
		NavSecret:  os.Getenv("NAV_SECRET"),
		LabelsFile: os.Getenv("LABELS_FILE"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFile:    os.Getenv("LOG_FILE"),
	}

	var err error
	if cfg.UpstreamTimeout, err = getDuration("UPSTREAM_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.UpstreamRetries, err = getInt("UPSTREAM_RETRIES", 0); err != nil {
		return nil, err
	}
	if cfg.NavTTL, err = getDuration("NAV_TTL", DefaultNavTTL); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = getInt("RATE_LIMIT", DefaultRateLimit); err != nil {
		return nil, err
	}
	if cfg.RateWindow, err = getDuration("RATE_WINDOW", DefaultRateWindow); err != nil {
		return nil, err
	}

	cfg.Port = ListenAddr(cfg.Port)
	return cfg, nil
}

// ListenAddr turns a bare port number into a listen address
func ListenAddr(port string) string {
	if _, err := strconv.Atoi(port); err == nil {
		return ":" + port
	}
	return port
}

// Validate checks the configuration before anything is started
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute http(s) URL, got %q", c.APIBaseURL)
	}
	if c.UpstreamTimeout < 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must not be negative")
	}
	if c.UpstreamRetries < 0 {
		return fmt.Errorf("UPSTREAM_RETRIES must not be negative")
	}
	if c.NavTTL <= 0 {
		return fmt.Errorf("NAV_TTL must be positive")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("RATE_LIMIT must not be negative")
	}
	if c.RateLimit > 0 && c.RateWindow <= 0 {
		return fmt.Errorf("RATE_WINDOW must be positive when RATE_LIMIT is set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
