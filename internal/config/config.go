package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults used by DefaultConfig and Normalize.
const (
	DefaultListen  = "127.0.0.1:8080"
	DefaultBaseURL = "https://punktual.co"

	defaultLogLevel         = "info"
	defaultShortLinkTimeout = 10
	defaultImportTimeout    = 15
	defaultImportMaxBytes   = 1 << 20
	defaultCaptureWidth     = 640
	defaultCaptureHeight    = 360
	defaultCaptureTimeout   = 20
)

// Environment variables that override file values.
const (
	EnvBaseURL           = "NEXT_PUBLIC_BASE_URL"
	EnvListen            = "PUNKTUAL_LISTEN"
	EnvLogLevel          = "LOG_LEVEL"
	EnvShortLinkEndpoint = "SHORT_LINK_ENDPOINT"
)

// BasicAuthConfig holds HTTP Basic Auth credentials for the API.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// ShortLinkConfig points at the tracked-link service.
type ShortLinkConfig struct {
	// Endpoint is the POST URL of the short-link service. Empty disables
	// shortening.
	Endpoint       string `yaml:"endpoint" json:"endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
}

// ImportConfig bounds remote ICS imports.
type ImportConfig struct {
	TimeoutSeconds int   `yaml:"timeout_seconds" json:"timeout_seconds"`
	MaxBytes       int64 `yaml:"max_bytes" json:"max_bytes"`
	// AllowPrivate lets {url} imports reach loopback and private hosts.
	AllowPrivate bool `yaml:"allow_private" json:"allow_private"`
}

// CaptureConfig sets the preview viewport.
type CaptureConfig struct {
	Width          int `yaml:"width" json:"width"`
	Height         int `yaml:"height" json:"height"`
	TimeoutSeconds int `yaml:"timeout_seconds" json:"timeout_seconds"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the API.
	Listen string `yaml:"listen" json:"listen"`

	// BaseURL prefixes tracked redirect links and the attribution link.
	BaseURL string `yaml:"base_url" json:"base_url"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	ShortLink ShortLinkConfig `yaml:"short_link" json:"short_link"`
	Import    ImportConfig    `yaml:"import" json:"import"`
	Capture   CaptureConfig   `yaml:"capture" json:"capture"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on /api.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	c := &Config{}
	c.Normalize()
	return c
}

// Normalize fills in missing/zero values with defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		c.LogLevel = defaultLogLevel
	}
	if c.ShortLink.TimeoutSeconds <= 0 {
		c.ShortLink.TimeoutSeconds = defaultShortLinkTimeout
	}
	if c.Import.TimeoutSeconds <= 0 {
		c.Import.TimeoutSeconds = defaultImportTimeout
	}
	if c.Import.MaxBytes <= 0 {
		c.Import.MaxBytes = defaultImportMaxBytes
	}
	if c.Capture.Width <= 0 {
		c.Capture.Width = defaultCaptureWidth
	}
	if c.Capture.Height <= 0 {
		c.Capture.Height = defaultCaptureHeight
	}
	if c.Capture.TimeoutSeconds <= 0 {
		c.Capture.TimeoutSeconds = defaultCaptureTimeout
	}
	if c.BasicAuth != nil && c.BasicAuth.Username == "" {
		c.BasicAuth = nil
	}
}

// ShortLinkTimeout is ShortLink.TimeoutSeconds as a Duration.
func (c *Config) ShortLinkTimeout() time.Duration {
	return time.Duration(c.ShortLink.TimeoutSeconds) * time.Second
}

// ImportTimeout is Import.TimeoutSeconds as a Duration.
func (c *Config) ImportTimeout() time.Duration {
	return time.Duration(c.Import.TimeoutSeconds) * time.Second
}

// CaptureTimeout is Capture.TimeoutSeconds as a Duration.
func (c *Config) CaptureTimeout() time.Duration {
	return time.Duration(c.Capture.TimeoutSeconds) * time.Second
}

// LoadDotEnv loads .env style files into the process environment when they
// exist. Variables already set are not overwritten. Missing files are not an
// error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("config: load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides file values from the environment, then re-normalizes.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvListen); v != "" {
		c.Listen = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvShortLinkEndpoint); v != "" {
		c.ShortLink.Endpoint = v
	}
	c.Normalize()
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
//
// Environment overrides are applied in both cases but never written back.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				cfg.ApplyEnv()
				return cfg, err
			}
			cfg.ApplyEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.ApplyEnv()

	return &cfg, nil
}

// Save writes the given configuration to the specified path atomically via
// a temp file and rename, with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".punktual-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Save delegates to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
