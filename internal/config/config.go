package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/configa/pkg/configa"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
	defaultLogLevel       = "info"
)

// Config holds the settings of the configa server. Fields are populated from
// an INI file and exposed through read-only accessors.
type Config struct {
	source *configa.Config

	port                 string
	shutdownGracePeriod  time.Duration
	readHeaderTimeout    time.Duration
	writeTimeout         time.Duration
	idleTimeout          time.Duration
	enableRequestLogging bool
	rateLimitRPS         float64
	rateLimitBurst       int
	logLevel             string
	allowedOrigins       []string
	inspectFile          string
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	InspectFile    *string
	Port           *string
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// Load builds the server configuration with precedence:
// CLI flags > INI settings file > Defaults.
// A missing required setting is returned as configa.ErrRequired.
func Load(overrides *CLIOverrides, logger *zap.Logger) (*Config, error) {
	cfg := Default()

	if overrides != nil && overrides.ConfigFile != "" {
		cfg.source = configa.New(overrides.ConfigFile, configa.WithLogger(logger))
		if err := cfg.source.ParseErr(); err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		if err := cfg.populate(); err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
	}

	if overrides != nil {
		cfg.applyCLIOverrides(overrides)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		port:                 defaultPort,
		shutdownGracePeriod:  10 * time.Second,
		readHeaderTimeout:    5 * time.Second,
		writeTimeout:         15 * time.Second,
		idleTimeout:          60 * time.Second,
		enableRequestLogging: true,
		rateLimitRPS:         defaultRateLimitRPS,
		rateLimitBurst:       defaultRateLimitBurst,
		logLevel:             defaultLogLevel,
		allowedOrigins:       []string{"*"},
	}
}

func (c *Config) Port() string                       { return c.port }
func (c *Config) ShutdownGracePeriod() time.Duration { return c.shutdownGracePeriod }
func (c *Config) ReadHeaderTimeout() time.Duration   { return c.readHeaderTimeout }
func (c *Config) WriteTimeout() time.Duration        { return c.writeTimeout }
func (c *Config) IdleTimeout() time.Duration         { return c.idleTimeout }
func (c *Config) EnableRequestLogging() bool         { return c.enableRequestLogging }
func (c *Config) RateLimitRPS() float64              { return c.rateLimitRPS }
func (c *Config) RateLimitBurst() int                { return c.rateLimitBurst }
func (c *Config) LogLevel() string                   { return c.logLevel }

// InspectFile is the INI file served by the inspection API.
func (c *Config) InspectFile() string { return c.inspectFile }

// AllowedOrigins returns a copy of the CORS origins.
func (c *Config) AllowedOrigins() []string {
	out := make([]string, len(c.allowedOrigins))
	copy(out, c.allowedOrigins)
	return out
}

// populate projects the parsed settings file onto the typed fields.
func (c *Config) populate() error {
	src := c.source

	// [server] port is required.
	if err := src.SetString(&c.port, "server", "port", true); err != nil {
		return err
	}
	if err := src.SetString(&c.inspectFile, "server", "inspect_file", false); err != nil {
		return err
	}

	durations := []struct {
		option string
		dst    *time.Duration
	}{
		{"shutdown_grace_period", &c.shutdownGracePeriod},
		{"read_header_timeout", &c.readHeaderTimeout},
		{"write_timeout", &c.writeTimeout},
		{"idle_timeout", &c.idleTimeout},
	}
	for _, d := range durations {
		if err := setDuration(src, d.dst, "server", d.option); err != nil {
			return err
		}
	}

	var logging string
	if err := src.SetString(&logging, "server", "enable_request_logging", false); err != nil {
		return err
	}
	if logging != "" {
		enabled, err := strconv.ParseBool(strings.TrimSpace(logging))
		if err != nil {
			return fmt.Errorf("server.enable_request_logging: %w", err)
		}
		c.enableRequestLogging = enabled
	}

	var rps string
	if err := src.SetString(&rps, "rate_limit", "rps", false); err != nil {
		return err
	}
	if rps != "" {
		value, err := strconv.ParseFloat(strings.TrimSpace(rps), 64)
		if err != nil {
			return fmt.Errorf("rate_limit.rps: %w", err)
		}
		c.rateLimitRPS = value
	}
	if err := src.SetInt(&c.rateLimitBurst, "rate_limit", "burst", false); err != nil {
		return err
	}

	if err := src.SetString(&c.logLevel, "logging", "level", false); err != nil {
		return err
	}
	return src.SetList(&c.allowedOrigins, "cors", "allowed_origins", false)
}

func setDuration(src *configa.Config, dst *time.Duration, section, option string) error {
	var raw string
	if err := src.SetString(&raw, section, option, false); err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%s.%s: %w", section, option, err)
	}
	*dst = d
	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func (c *Config) applyCLIOverrides(overrides *CLIOverrides) {
	if overrides.InspectFile != nil && *overrides.InspectFile != "" {
		c.inspectFile = *overrides.InspectFile
	}

	if overrides.Port != nil && *overrides.Port != "" {
		c.port = *overrides.Port
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		c.rateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		c.rateLimitBurst = *overrides.RateLimitBurst
	}
}

var errNoInspectFile = errors.New("no file to inspect: set server.inspect_file or --file")

// validate validates the final configuration.
func (c *Config) validate() error {
	if c.rateLimitRPS < 0 {
		return fmt.Errorf("rate_limit.rps must be >= 0")
	}
	if c.rateLimitBurst < 0 {
		return fmt.Errorf("rate_limit.burst must be >= 0")
	}
	if strings.TrimSpace(c.port) == "" {
		return fmt.Errorf("server.port cannot be empty")
	}
	if c.inspectFile == "" {
		return errNoInspectFile
	}
	return nil
}
