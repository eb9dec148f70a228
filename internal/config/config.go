package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vango-dev/mount/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "mount.json"

	// DefaultPort is the default preview server port.
	DefaultPort = 3000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultContainer is the default container selector.
	DefaultContainer = "#root"

	// DefaultNamespace is the default metrics namespace and tracer name.
	DefaultNamespace = "mount"

	// DefaultRegion is the default publish region.
	DefaultRegion = "us-east-1"
)

// Config represents the complete mount.json configuration.
type Config struct {
	// Document is the HTML document to mount into. Empty means a blank
	// document with a <div id="root">.
	Document string `json:"document,omitempty"`

	// Container is the selector of the mount point.
	Container string `json:"container,omitempty"`

	// ContentMode is "markup" (default) or "text".
	ContentMode string `json:"contentMode,omitempty"`

	// Server contains preview server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// Publish contains S3 publishing configuration.
	Publish PublishConfig `json:"publish,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains preview server settings.
type ServerConfig struct {
	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled controls whether mount metrics are collected and served.
	Enabled bool `json:"enabled,omitempty"`

	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// TracerName is the tracer name.
	TracerName string `json:"tracerName,omitempty"`

	// IncludeContent records mounted content on spans.
	IncludeContent bool `json:"includeContent,omitempty"`
}

// PublishConfig contains S3 publishing settings.
type PublishConfig struct {
	// Bucket is the destination bucket. Empty disables publishing.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is prepended to every object key.
	Prefix string `json:"prefix,omitempty"`

	// Region is the bucket region.
	Region string `json:"region,omitempty"`

	// Endpoint overrides the S3 endpoint (e.g. for MinIO).
	Endpoint string `json:"endpoint,omitempty"`

	// PathStyle forces path-style addressing.
	PathStyle bool `json:"pathStyle,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Container:   DefaultContainer,
		ContentMode: "markup",
		Server: ServerConfig{
			Port: DefaultPort,
			Host: DefaultHost,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultNamespace,
		},
		Publish: PublishConfig{
			Region: DefaultRegion,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for mount.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigNotFound).
				WithDetail("No mount.json found in " + filepath.Dir(path))
		}
		return nil, errors.New(errors.CodeConfigInvalid).Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(errors.CodeConfigInvalid).
			WithDetail("Failed to parse mount.json: " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// LoadOrDefault loads mount.json from dir, falling back to defaults when
// the file does not exist.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if errors.Code(err) == errors.CodeConfigNotFound {
		return New(), nil
	}
	return cfg, err
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New(errors.CodeConfigInvalid).Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.CodeConfigInvalid).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Container == "" {
		c.Container = DefaultContainer
	}
	if c.ContentMode == "" {
		c.ContentMode = "markup"
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultNamespace
	}
	if c.Publish.Region == "" {
		c.Publish.Region = DefaultRegion
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// ApplyEnv overrides fields from MOUNT_* environment variables looked up
// with getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("MOUNT_DOCUMENT"); v != "" {
		c.Document = v
	}
	if v := getenv("MOUNT_CONTAINER"); v != "" {
		c.Container = v
	}
	if v := getenv("MOUNT_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := getenv("MOUNT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := getenv("MOUNT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("MOUNT_PUBLISH_BUCKET"); v != "" {
		c.Publish.Bucket = v
	}
	if v := getenv("MOUNT_PUBLISH_ENDPOINT"); v != "" {
		c.Publish.Endpoint = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New(errors.CodeConfigRange).
			WithDetail("Port must be between 0 and 65535")
	}
	switch c.ContentMode {
	case "", "markup", "text":
	default:
		return errors.New(errors.CodeConfigRange).
			WithDetailf("contentMode must be \"markup\" or \"text\", got %q", c.ContentMode)
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New(errors.CodeConfigRange).
			WithDetailf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if strings.TrimSpace(c.Container) == "" {
		return errors.New(errors.CodeConfigRange).WithDetail("container selector is empty")
	}
	return nil
}

// Address returns the address string for the preview server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// URL returns the full URL for the preview server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// DocumentPath returns the document path resolved against the config
// directory, or "" when no document is configured.
func (c *Config) DocumentPath() string {
	if c.Document == "" || filepath.IsAbs(c.Document) {
		return c.Document
	}
	return filepath.Join(c.Dir(), c.Document)
}

// PublishEnabled returns true if a publish bucket is configured.
func (c *Config) PublishEnabled() bool {
	return c.Publish.Bucket != ""
}

// LogLevel returns the configured slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
