package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/textkernel/internal/config/loader"
	"github.com/dshills/textkernel/internal/engine/buffer"
	"github.com/dshills/textkernel/internal/logging"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "TEXTKERNEL_"

// Default setting values.
const (
	DefaultMaxUndoEntries = 1000
	DefaultLineCapacity   = 64
	DefaultJournalSize    = 10000
	DefaultDebounceMs     = 100
)

// Config holds all settings.
type Config struct {
	Engine  Engine  `toml:"engine"`
	Logging Logging `toml:"logging"`
	Journal Journal `toml:"journal"`
	Watch   Watch   `toml:"watch"`
}

// Engine holds document settings.
type Engine struct {
	// ReadOnly opens documents read-only.
	ReadOnly bool `toml:"readOnly"`

	// Newline names the newline of new last lines: lf, cr, crlf, nel,
	// ls or ps.
	Newline string `toml:"newline"`

	// MaxUndoEntries limits the undo stack. Zero means unlimited.
	MaxUndoEntries int `toml:"maxUndoEntries"`

	// LineCapacity is the initial capacity of the line store.
	LineCapacity int `toml:"lineCapacity"`
}

// Logging holds logger settings.
type Logging struct {
	Level  string `toml:"level"`
	Prefix string `toml:"prefix"`
}

// Journal holds change journal settings.
type Journal struct {
	// Size is the number of changes kept.
	Size int `toml:"size"`
}

// Watch holds file watcher settings.
type Watch struct {
	// DebounceMs is how long a watched file must stay unchanged before
	// a change is reported, in milliseconds.
	DebounceMs int `toml:"debounceMs"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Engine: Engine{
			Newline:        "lf",
			MaxUndoEntries: DefaultMaxUndoEntries,
			LineCapacity:   DefaultLineCapacity,
		},
		Logging: Logging{
			Level:  "info",
			Prefix: "textkernel",
		},
		Journal: Journal{Size: DefaultJournalSize},
		Watch:   Watch{DebounceMs: DefaultDebounceMs},
	}
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	fs        loader.FileSystem
	path      string
	envPrefix string
	env       bool
}

// WithFile loads settings from path. A missing file is not an error.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		o.path = path
	}
}

// WithFileSystem reads files from fs instead of the OS file system.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(o *loadOptions) {
		o.fs = fs
	}
}

// WithEnvPrefix changes the prefix of environment variables.
func WithEnvPrefix(prefix string) Option {
	return func(o *loadOptions) {
		o.envPrefix = prefix
	}
}

// WithoutEnv ignores environment variables.
func WithoutEnv() Option {
	return func(o *loadOptions) {
		o.env = false
	}
}

// Load builds the settings from the defaults, the config file and the
// environment, and validates them.
func Load(opts ...Option) (*Config, error) {
	o := loadOptions{
		fs:        loader.DefaultFS(),
		envPrefix: EnvPrefix,
		env:       true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var merged map[string]any
	if o.path != "" {
		l, err := loader.ForFile(o.fs, o.path)
		if err != nil {
			return nil, err
		}
		file, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, file)
	}
	if o.env {
		env, err := loader.NewEnvLoader(o.envPrefix).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, env)
	}

	cfg := Default()
	if err := decode(merged, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode applies the settings in m on top of cfg. Unknown settings are
// errors.
func decode(m map[string]any, cfg *Config) error {
	if len(m) == 0 {
		return nil
	}
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown settings: %w", err)
		}
		return fmt.Errorf("decode settings: %w", err)
	}
	return nil
}

// Validate checks every setting and reports all failures.
func (c *Config) Validate() error {
	var errs []error
	if _, err := buffer.ParseNewline(c.Engine.Newline); err != nil {
		errs = append(errs, &ValidationError{Path: "engine.newline", Message: "unknown newline", Value: c.Engine.Newline})
	}
	if c.Engine.MaxUndoEntries < 0 {
		errs = append(errs, &ValidationError{Path: "engine.maxUndoEntries", Message: "must not be negative", Value: c.Engine.MaxUndoEntries})
	}
	if c.Engine.LineCapacity < 0 {
		errs = append(errs, &ValidationError{Path: "engine.lineCapacity", Message: "must not be negative", Value: c.Engine.LineCapacity})
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, &ValidationError{Path: "logging.level", Message: "unknown level", Value: c.Logging.Level})
	}
	if c.Journal.Size < 1 {
		errs = append(errs, &ValidationError{Path: "journal.size", Message: "must be positive", Value: c.Journal.Size})
	}
	if c.Watch.DebounceMs < 0 {
		errs = append(errs, &ValidationError{Path: "watch.debounceMs", Message: "must not be negative", Value: c.Watch.DebounceMs})
	}
	return errors.Join(errs...)
}

// NewlineKind returns the configured newline. Call Validate first.
func (e Engine) NewlineKind() buffer.Newline {
	nl, err := buffer.ParseNewline(e.Newline)
	if err != nil {
		return buffer.DefaultNewline
	}
	return nl
}

// LoggerConfig returns a logger configuration writing to out.
// out defaults to os.Stderr.
func (l Logging) LoggerConfig(out io.Writer) logging.Config {
	cfg := logging.DefaultConfig()
	if level, err := logging.ParseLevel(l.Level); err == nil {
		cfg.Level = level
	}
	if l.Prefix != "" {
		cfg.Prefix = l.Prefix
	}
	if out == nil {
		out = os.Stderr
	}
	cfg.Output = out
	return cfg
}
