package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/sabledocs/pkg/observability"
	"github.com/platinummonkey/sabledocs/pkg/repourl"
)

// DefaultFile is the configuration file read when no path is given
const DefaultFile = "sabledocs.toml"

// ErrInvalidConfig is returned when a configuration value is out of range
var ErrInvalidConfig = errors.New("invalid configuration")

// MemberOrdering controls how declarations are ordered in the generated model
type MemberOrdering string

const (
	Alphabetical     MemberOrdering = "alphabetical"
	PreserveOriginal MemberOrdering = "preserve-original"
)

// Config holds all sabledocs configuration
type Config struct {
	ModuleTitle         string
	InputDescriptorFile string
	OutputDir           string
	Template            string
	FooterContent       string
	MainPageContentFile string

	RepositoryURL    string
	RepositoryBranch string
	RepositoryDir    string
	RepositoryType   repourl.Type

	EnableLunrSearch bool
	MemberOrdering   MemberOrdering

	IgnoreCommentsAfter          []string
	IgnoreCommentLinesContaining []string
	HiddenPackages               []string
	CommentsParser               string

	LogLevel  string
	LogFormat string

	S3        S3Config
	Telemetry TelemetryConfig
}

// S3Config holds the publish target
type S3Config struct {
	Bucket       string `toml:"bucket"`
	Region       string `toml:"region"`
	Endpoint     string `toml:"endpoint"`
	Prefix       string `toml:"prefix"`
	UsePathStyle bool   `toml:"use-path-style"`
}

// TelemetryConfig holds OpenTelemetry trace export settings
type TelemetryConfig struct {
	OTLPEndpoint string `toml:"otlp-endpoint"`
	Insecure     bool   `toml:"insecure"`
	ServiceName  string `toml:"service-name"`
}

// fileConfig mirrors the TOML document
type fileConfig struct {
	ModuleTitle                  string          `toml:"module-title"`
	InputDescriptorFile          string          `toml:"input-descriptor-file"`
	OutputDir                    string          `toml:"output-dir"`
	Template                     string          `toml:"template"`
	FooterContent                string          `toml:"footer-content"`
	MainPageContentFile          string          `toml:"main-page-content-file"`
	RepositoryURL                string          `toml:"repository-url"`
	RepositoryBranch             string          `toml:"repository-branch"`
	RepositoryDir                string          `toml:"repository-dir"`
	RepositoryType               string          `toml:"repository-type"`
	EnableLunrSearch             bool            `toml:"enable-lunr-search"`
	MemberOrdering               string          `toml:"member-ordering"`
	IgnoreCommentsAfter          []string        `toml:"ignore-comments-after"`
	IgnoreCommentLinesContaining []string        `toml:"ignore-comment-lines-containing"`
	HiddenPackages               []string        `toml:"hidden-packages"`
	CommentsParser               string          `toml:"comments-parser"`
	LogLevel                     string          `toml:"log-level"`
	LogFormat                    string          `toml:"log-format"`
	S3                           S3Config        `toml:"s3"`
	Telemetry                    TelemetryConfig `toml:"telemetry"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		ModuleTitle:         "Module",
		InputDescriptorFile: "descriptor.pb",
		OutputDir:           "sabledocs_output",
		Template:            "_default",
		RepositoryType:      repourl.GitHub,
		MemberOrdering:      Alphabetical,
		CommentsParser:      "default",
		LogLevel:            "info",
		LogFormat:           "text",
		Telemetry: TelemetryConfig{
			ServiceName: "sabledocs",
		},
	}
}

// Load reads the TOML file at path over the defaults, applies environment
// overrides and validates the result. A missing file is not an error.
func Load(path string, logger *logrus.Logger) (*Config, error) {
	if logger == nil {
		logger = logrus.New()
	}
	if path == "" {
		path = DefaultFile
	}

	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if err := cfg.decodeFile(path, logger); err != nil {
			return nil, err
		}
		logger.WithField("path", path).Info("Configuration loaded")
	} else if errors.Is(err, os.ErrNotExist) {
		logger.WithField("path", path).Info("Configuration file not found, using defaults")
	} else {
		return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) decodeFile(path string, logger *logrus.Logger) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	for _, key := range meta.Undecoded() {
		logger.WithField("key", key.String()).Debug("Ignoring unknown configuration key")
	}

	if meta.IsDefined("module-title") {
		c.ModuleTitle = raw.ModuleTitle
	}
	if meta.IsDefined("input-descriptor-file") {
		c.InputDescriptorFile = raw.InputDescriptorFile
	}
	if meta.IsDefined("output-dir") {
		c.OutputDir = strings.TrimRight(raw.OutputDir, `/\`)
	}
	if meta.IsDefined("template") {
		c.Template = strings.TrimRight(raw.Template, `/\`)
	}
	if meta.IsDefined("footer-content") {
		c.FooterContent = raw.FooterContent
	}
	if meta.IsDefined("main-page-content-file") {
		c.MainPageContentFile = raw.MainPageContentFile
	}
	if meta.IsDefined("repository-url") {
		c.RepositoryURL = raw.RepositoryURL
	}
	if meta.IsDefined("repository-branch") {
		c.RepositoryBranch = raw.RepositoryBranch
	}
	if meta.IsDefined("repository-dir") {
		c.RepositoryDir = raw.RepositoryDir
	}
	if meta.IsDefined("repository-type") {
		c.RepositoryType = repourl.Type(strings.ToLower(raw.RepositoryType))
	}
	if meta.IsDefined("enable-lunr-search") {
		c.EnableLunrSearch = raw.EnableLunrSearch
	}
	if meta.IsDefined("member-ordering") {
		c.MemberOrdering = MemberOrdering(strings.ToLower(raw.MemberOrdering))
	}
	if meta.IsDefined("ignore-comments-after") {
		c.IgnoreCommentsAfter = raw.IgnoreCommentsAfter
	}
	if meta.IsDefined("ignore-comment-lines-containing") {
		c.IgnoreCommentLinesContaining = raw.IgnoreCommentLinesContaining
	}
	if meta.IsDefined("hidden-packages") {
		c.HiddenPackages = raw.HiddenPackages
	}
	if meta.IsDefined("comments-parser") {
		c.CommentsParser = raw.CommentsParser
	}
	if meta.IsDefined("log-level") {
		c.LogLevel = raw.LogLevel
	}
	if meta.IsDefined("log-format") {
		c.LogFormat = raw.LogFormat
	}
	if meta.IsDefined("s3") {
		c.S3 = raw.S3
	}
	if meta.IsDefined("telemetry") {
		serviceName := c.Telemetry.ServiceName
		c.Telemetry = raw.Telemetry
		if !meta.IsDefined("telemetry", "service-name") {
			c.Telemetry.ServiceName = serviceName
		}
	}

	return nil
}

// applyEnv applies SABLEDOCS_* environment overrides
func (c *Config) applyEnv() {
	c.InputDescriptorFile = getEnv("SABLEDOCS_INPUT", c.InputDescriptorFile)
	c.OutputDir = strings.TrimRight(getEnv("SABLEDOCS_OUTPUT_DIR", c.OutputDir), `/\`)
	c.LogLevel = getEnv("SABLEDOCS_LOG_LEVEL", c.LogLevel)
	c.S3.Bucket = getEnv("SABLEDOCS_S3_BUCKET", c.S3.Bucket)
	c.Telemetry.OTLPEndpoint = getEnv("SABLEDOCS_OTLP_ENDPOINT", c.Telemetry.OTLPEndpoint)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.InputDescriptorFile == "" {
		return fmt.Errorf("%w: input descriptor file is required", ErrInvalidConfig)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output dir is required", ErrInvalidConfig)
	}

	switch c.MemberOrdering {
	case Alphabetical, PreserveOriginal:
	default:
		return fmt.Errorf("%w: invalid member ordering: %s (must be alphabetical or preserve-original)", ErrInvalidConfig, c.MemberOrdering)
	}

	t, err := repourl.ParseType(string(c.RepositoryType))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	c.RepositoryType = t

	if _, err := observability.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	switch observability.LogFormat(strings.ToLower(c.LogFormat)) {
	case observability.TextFormat, observability.JSONFormat:
	default:
		return fmt.Errorf("%w: invalid log format: %s (must be text or json)", ErrInvalidConfig, c.LogFormat)
	}

	return nil
}

// IsAlphabetical reports whether declarations are sorted by name
func (c *Config) IsAlphabetical() bool {
	return c.MemberOrdering != PreserveOriginal
}

// IsPackageHidden reports whether a package is excluded from the rendered output.
// Entries ending in "*" match any package with that prefix.
func (c *Config) IsPackageHidden(name string) bool {
	for _, hidden := range c.HiddenPackages {
		if prefix, ok := strings.CutSuffix(hidden, "*"); ok {
			if strings.HasPrefix(name, prefix) {
				return true
			}
		} else if name == hidden {
			return true
		}
	}
	return false
}

// Logger builds the process logger from the log-level and log-format settings
func (c *Config) Logger() *logrus.Logger {
	level, err := observability.ParseLogLevel(c.LogLevel)
	if err != nil {
		level = observability.InfoLevel
	}
	return observability.NewLogger(level, os.Stderr, observability.LogFormat(strings.ToLower(c.LogFormat)))
}

// Tracing converts the telemetry settings for observability.InitTracing
func (c *Config) Tracing(version string) observability.TracingConfig {
	return observability.TracingConfig{
		Endpoint:       c.Telemetry.OTLPEndpoint,
		ServiceName:    c.Telemetry.ServiceName,
		ServiceVersion: version,
		Insecure:       c.Telemetry.Insecure,
	}
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
