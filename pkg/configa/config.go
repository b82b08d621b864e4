package configa

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/ini.v1"
)

// Table maps section name to option name to raw value.
type Table map[string]map[string]string

// Config holds a configuration file path and, after a successful Parse, the
// parsed table. A Config is not safe for a Parse concurrent with readers.
type Config struct {
	path   string
	table  Table
	order  map[string][]string
	err    error
	logger *zap.Logger
}

// Option configures a Config.
type Option func(*Config)

// WithLogger attaches a logger for parse diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a Config for path. An empty path is allowed and can be set later.
func New(path string, opts ...Option) *Config {
	c := &Config{
		path:   path,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetConfigFile replaces the configuration file path. The current table is
// kept until the next Parse.
func (c *Config) SetConfigFile(path string) {
	c.path = path
}

// ConfigFile returns the configured path.
func (c *Config) ConfigFile() string {
	return c.path
}

// Parse loads the configured file and reports whether it succeeded. A missing
// path or an unreadable file yields false; the reason is available from Err.
func (c *Config) Parse() bool {
	return c.ParseErr() == nil
}

// ParseErr is Parse with the failure reason. On failure the previous table is
// left untouched.
func (c *Config) ParseErr() error {
	if c.path == "" {
		c.err = ErrNoConfigFile
		c.logger.Warn("configuration parse skipped", zap.Error(c.err))
		return c.err
	}

	table, order, err := load(c.path)
	if err != nil {
		c.err = fmt.Errorf("parse %s: %w", c.path, err)
		c.logger.Warn("configuration parse failed", zap.String("path", c.path), zap.Error(err))
		return c.err
	}

	c.table = table
	c.order = order
	c.err = nil
	c.logger.Debug("configuration parsed",
		zap.String("path", c.path),
		zap.Int("sections", len(table)),
	)
	return nil
}

// Err returns the error from the last Parse, if any.
func (c *Config) Err() error {
	return c.err
}

// Parsed reports whether a table is available.
func (c *Config) Parsed() bool {
	return c.table != nil
}

// Sections returns the section names in sorted order.
func (c *Config) Sections() []string {
	names := make([]string, 0, len(c.table))
	for name := range c.table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasSection reports whether section exists.
func (c *Config) HasSection(section string) bool {
	_, ok := c.table[section]
	return ok
}

// HasOption reports whether option exists within section.
func (c *Config) HasOption(section, option string) bool {
	_, ok := c.raw(section, option)
	return ok
}

// Section returns a copy of the raw options of section.
func (c *Config) Section(section string) (map[string]string, bool) {
	opts, ok := c.table[section]
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(opts))
	for k, v := range opts {
		out[k] = v
	}
	return out, true
}

func (c *Config) raw(section, option string) (string, bool) {
	opts, ok := c.table[section]
	if !ok {
		return "", false
	}
	value, ok := opts[option]
	return value, ok
}

func load(path string) (Table, map[string][]string, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		IgnoreContinuation:      true,
		PreserveSurroundedQuote: true,
		KeyValueDelimiters:      "=:",
	}, path)
	if err != nil {
		return nil, nil, err
	}

	table := make(Table)
	order := make(map[string][]string)
	for _, section := range file.Sections() {
		keys := section.Keys()
		if section.Name() == ini.DefaultSection && len(keys) == 0 {
			continue
		}
		opts := make(map[string]string, len(keys))
		names := make([]string, 0, len(keys))
		for _, key := range keys {
			if _, seen := opts[key.Name()]; !seen {
				names = append(names, key.Name())
			}
			opts[key.Name()] = key.String()
		}
		table[section.Name()] = opts
		order[section.Name()] = names
	}
	return table, order, nil
}
