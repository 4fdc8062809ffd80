package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"geosearch/internal/eventbus"
)

// Environment variables that override the config file
const (
	EnvAPIURL   = "GEOSEARCH_API_URL"
	EnvAPIHost  = "GEOSEARCH_API_HOST"
	EnvAPIKey   = "GEOSEARCH_API_KEY"
	EnvLogLevel = "GEOSEARCH_LOG_LEVEL"
)

const (
	DefaultAPIURL  = "https://wft-geo-db.p.rapidapi.com/v1/geo/cities"
	DefaultAPIHost = "wft-geo-db.p.rapidapi.com"
)

// Config represents the application configuration
type Config struct {
	Version int          `toml:"version"`
	API     APISettings  `toml:"api"`
	Search  SearchConfig `toml:"search"`
	Log     LogSettings  `toml:"log"`
}

// APISettings locates and authenticates the geo lookup API
type APISettings struct {
	URL     string   `toml:"url"`
	Host    string   `toml:"host"`
	Key     string   `toml:"key,omitempty"`
	Timeout Duration `toml:"timeout"`
}

// SearchConfig holds the values the widget mounts with
type SearchConfig struct {
	Limit   int `toml:"limit"`
	PerPage int `toml:"per_page"`
}

// LogSettings controls the log file
type LogSettings struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Duration is a time.Duration written as a string ("30s") in TOML
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	parsed, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(b), err)
	}
	d.Duration = parsed
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service rooted at the user config dir
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceWithBus creates a config service that publishes load and
// save events. An empty path selects the default location.
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path}
}

// DefaultPath returns the config file location under the user config dir
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "geosearch", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load reads the config file, creating it with defaults when it does not
// exist yet, then applies environment overrides
func (cs *configService) Load() (*Config, error) {
	var cfg *Config

	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
		if err := cs.SaveToPath(cfg, cs.filePath); err != nil {
			return nil, err
		}
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	ApplyEnv(cfg)

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save writes the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Missing fields keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may hold an API key
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			URL:     DefaultAPIURL,
			Host:    DefaultAPIHost,
			Timeout: Duration{30 * time.Second},
		},
		Search: SearchConfig{
			Limit:   5,
			PerPage: 3,
		},
		Log: LogSettings{
			Level: "info",
			File:  defaultLogFile(),
		},
	}
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "geosearch.log"
	}
	return filepath.Join(dir, "geosearch", "geosearch.log")
}

// LoadDotEnv loads .env and .env.local from the working directory if they
// exist. Variables already set in the process take precedence. A file that
// fails to parse is reported; the others are still loaded.
func LoadDotEnv() ([]string, error) {
	var (
		loaded []string
		errs   []error
	)
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			errs = append(errs, fmt.Errorf("failed to load %s: %w", file, err))
			continue
		}
		loaded = append(loaded, file)
	}
	return loaded, errors.Join(errs...)
}

// ApplyEnv overrides file values with environment variables
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.API.URL = v
	}
	if v := os.Getenv(EnvAPIHost); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.API.Key = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

// Validate checks the values the rest of the program relies on
func (c *Config) Validate() error {
	var errs []error

	if c.API.URL == "" {
		errs = append(errs, errors.New("api.url must be set"))
	} else if u, err := url.Parse(c.API.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.url %q is not an absolute URL", c.API.URL))
	}
	if c.API.Timeout.Duration < 0 {
		errs = append(errs, errors.New("api.timeout must not be negative"))
	}
	if c.Search.Limit < 1 || c.Search.Limit > 10 {
		errs = append(errs, fmt.Errorf("search.limit must be between 1 and 10, got %d", c.Search.Limit))
	}
	if c.Search.PerPage < 1 || c.Search.PerPage > 10 {
		errs = append(errs, fmt.Errorf("search.per_page must be between 1 and 10, got %d", c.Search.PerPage))
	}

	return errors.Join(errs...)
}
