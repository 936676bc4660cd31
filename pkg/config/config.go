package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNilConfig is returned when a nil config is passed to a function.
	ErrNilConfig = errors.New("nil config")

	// ErrInvalidAPIURL is returned when the API URL is not an absolute
	// http(s) URL.
	ErrInvalidAPIURL = errors.New("invalid api url")
)

// APIConfig is the configuration of the remote project API client.
type APIConfig struct {
	// URL is the base URL of the project API.
	URL string `env:"URL" yaml:"url"`

	// Token is sent as a bearer token when set.
	Token string `env:"TOKEN" yaml:"token"`

	// Timeout is the maximum number of seconds a request can take.
	// A value of 0 means no timeout.
	Timeout int `env:"TIMEOUT" yaml:"timeout"`
}

// HTTPConfig is the configuration of the snapshot project API server.
type HTTPConfig struct {
	// ListenAddr is the address on which the HTTP server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`

	// DataPath is the directory holding the project snapshots.
	DataPath string `env:"DATA_PATH" yaml:"data_path"`
}

// StatsConfig is the configuration for the stats server.
type StatsConfig struct {
	// ListenAddr is the address on which the stats server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`
}

// LogConfig is the logger configuration.
type LogConfig struct {
	// Format is the format of the logs.
	// Valid values are "json", "logfmt", and "text".
	Format string `env:"FORMAT" yaml:"format"`

	// Time format for the log `ts` field.
	// Format must be described in Golang's time format.
	TimeFormat string `env:"TIME_FORMAT" yaml:"time_format"`

	// Path to a file to write logs to.
	// If not set, logs will be written to stderr.
	Path string `env:"PATH" yaml:"path"`
}

// Config is the configuration for pview.
type Config struct {
	// API is the configuration of the project API client.
	API APIConfig `envPrefix:"API_" yaml:"api"`

	// HTTP is the configuration of the snapshot server.
	HTTP HTTPConfig `envPrefix:"HTTP_" yaml:"http"`

	// Stats is the configuration for the stats server.
	Stats StatsConfig `envPrefix:"STATS_" yaml:"stats"`

	// Log is the logger configuration.
	Log LogConfig `envPrefix:"LOG_" yaml:"log"`

	// DataPath is the directory holding config.yaml.
	DataPath string `env:"DATA_PATH" yaml:"-"`
}

// Environ returns the config as a list of environment variables.
func (c *Config) Environ() []string {
	if c == nil {
		return nil
	}

	return []string{
		fmt.Sprintf("PVIEW_DATA_PATH=%s", c.DataPath),
		fmt.Sprintf("PVIEW_API_URL=%s", c.API.URL),
		fmt.Sprintf("PVIEW_API_TOKEN=%s", c.API.Token),
		fmt.Sprintf("PVIEW_API_TIMEOUT=%d", c.API.Timeout),
		fmt.Sprintf("PVIEW_HTTP_LISTEN_ADDR=%s", c.HTTP.ListenAddr),
		fmt.Sprintf("PVIEW_HTTP_DATA_PATH=%s", c.HTTP.DataPath),
		fmt.Sprintf("PVIEW_STATS_LISTEN_ADDR=%s", c.Stats.ListenAddr),
		fmt.Sprintf("PVIEW_LOG_FORMAT=%s", c.Log.Format),
		fmt.Sprintf("PVIEW_LOG_TIME_FORMAT=%s", c.Log.TimeFormat),
		fmt.Sprintf("PVIEW_LOG_PATH=%s", c.Log.Path),
	}
}

// IsDebug returns true if pview is running in debug mode.
func IsDebug() bool {
	debug, _ := strconv.ParseBool(os.Getenv("PVIEW_DEBUG"))
	return debug
}

// IsVerbose returns true if pview is running in verbose mode.
// Verbose mode is only enabled if debug mode is enabled.
func IsVerbose() bool {
	verbose, _ := strconv.ParseBool(os.Getenv("PVIEW_VERBOSE"))
	return IsDebug() && verbose
}

// parseFile parses the given file as a configuration file.
// The file must be in YAML format.
func parseFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	defer f.Close() // nolint: errcheck
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return cfg.Validate()
}

// ParseFile parses the config from the default file path.
// This also calls Validate() on the config.
func (c *Config) ParseFile() error {
	return parseFile(c, c.ConfigPath())
}

// ParseConfig parses the config from the given file path.
// This also calls Validate() on the config.
func ParseConfig(cfg *Config, path string) error {
	if cfg == nil {
		return ErrNilConfig
	}
	return parseFile(cfg, path)
}

// parseEnv parses the environment variables as a configuration file.
func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix: "PVIEW_",
	}); err != nil {
		return fmt.Errorf("parse environment variables: %w", err)
	}

	return cfg.Validate()
}

// ParseEnv parses the config from the environment variables.
// This also calls Validate() on the config.
func (c *Config) ParseEnv() error {
	return parseEnv(c)
}

// Parse parses the config from the default file path and environment variables.
// A missing config file is not an error.
// This also calls Validate() on the config.
func (c *Config) Parse() error {
	if c.Exist() {
		if err := c.ParseFile(); err != nil {
			return err
		}
	}

	return c.ParseEnv()
}

// writeConfig writes the configuration to the given file.
func writeConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(newConfigFile(cfg)), 0o600) // nolint: errcheck, gosec
}

// WriteConfig writes the configuration to the default file.
func (c *Config) WriteConfig() error {
	return writeConfig(c, c.ConfigPath())
}

// DefaultDataPath returns the path to the data directory.
// It uses the PVIEW_DATA_PATH environment variable if set, otherwise it
// uses the user configuration directory.
func DefaultDataPath() string {
	if dp := os.Getenv("PVIEW_DATA_PATH"); dp != "" {
		return dp
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "data"
	}

	return filepath.Join(dir, "pview")
}

// ConfigPath returns the path to the config file.
func (c *Config) ConfigPath() string { // nolint:revive
	return filepath.Join(c.DataPath, "config.yaml")
}

func exist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Exist returns true if the config file exists.
func (c *Config) Exist() bool {
	return exist(c.ConfigPath())
}

// DefaultConfig returns the default Config. All the path values are relative
// to the data directory.
// Use Validate() to validate the config and ensure absolute paths.
func DefaultConfig() *Config {
	return &Config{
		DataPath: DefaultDataPath(),
		API: APIConfig{
			URL:     "http://localhost:17246/v1",
			Timeout: 30,
		},
		HTTP: HTTPConfig{
			ListenAddr: "localhost:17246",
			DataPath:   "snapshots",
		},
		Stats: StatsConfig{
			ListenAddr: "localhost:17247",
		},
		Log: LogConfig{
			Format:     "text",
			TimeFormat: time.DateTime,
		},
	}
}

// Validate validates the configuration.
// It updates the configuration with absolute paths.
func (c *Config) Validate() error {
	// Use absolute paths
	if !filepath.IsAbs(c.DataPath) {
		dp, err := filepath.Abs(c.DataPath)
		if err != nil {
			return err
		}
		c.DataPath = dp
	}

	if c.HTTP.DataPath != "" && !filepath.IsAbs(c.HTTP.DataPath) {
		c.HTTP.DataPath = filepath.Join(c.DataPath, c.HTTP.DataPath)
	}

	c.API.URL = strings.TrimSuffix(c.API.URL, "/")
	u, err := url.Parse(c.API.URL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAPIURL, err)
	}

	switch u.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAPIURL, c.API.URL)
	}

	if c.API.Timeout < 0 {
		c.API.Timeout = 0
	}

	return nil
}
