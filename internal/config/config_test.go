package config

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/dshills/textkernel/internal/config/loader"
	"github.com/dshills/textkernel/internal/engine/buffer"
	"github.com/dshills/textkernel/internal/logging"
)

// memFS is an in-memory file system for testing.
type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func (m memFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m[path]; ok {
		return memFileInfo(path), nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo string

func (f memFileInfo) Name() string       { return string(f) }
func (f memFileInfo) Size() int64        { return 0 }
func (f memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f memFileInfo) ModTime() time.Time { return time.Time{} }
func (f memFileInfo) IsDir() bool        { return false }
func (f memFileInfo) Sys() any           { return nil }

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(WithoutEnv())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
	if cfg.Engine.NewlineKind() != buffer.NewlineLF {
		t.Errorf("NewlineKind() = %v", cfg.Engine.NewlineKind())
	}
}

func TestLoad_Files(t *testing.T) {
	files := memFS{
		"/cfg.toml": `
[engine]
readOnly = true
newline = "crlf"

[journal]
size = 25
`,
		"/cfg.yaml": `
engine:
  readOnly: true
  newline: crlf
journal:
  size: 25
`,
	}

	for _, path := range []string{"/cfg.toml", "/cfg.yaml"} {
		t.Run(path, func(t *testing.T) {
			cfg, err := Load(WithFileSystem(files), WithFile(path), WithoutEnv())
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !cfg.Engine.ReadOnly || cfg.Engine.NewlineKind() != buffer.NewlineCRLF {
				t.Errorf("engine = %+v", cfg.Engine)
			}
			if cfg.Journal.Size != 25 {
				t.Errorf("journal.size = %d, want 25", cfg.Journal.Size)
			}
			if cfg.Engine.MaxUndoEntries != DefaultMaxUndoEntries {
				t.Errorf("engine.maxUndoEntries = %d, want default", cfg.Engine.MaxUndoEntries)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(WithFileSystem(memFS{}), WithFile("/none.toml"), WithoutEnv())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Journal.Size != DefaultJournalSize {
		t.Errorf("journal.size = %d", cfg.Journal.Size)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	files := memFS{"/cfg.toml": "[logging]\nlevel = \"warn\"\n[engine]\nmaxUndoEntries = 5\n"}
	t.Setenv("TKTEST_LOG_LEVEL", "debug")
	t.Setenv("TKTEST_ENGINE_MAX_UNDO_ENTRIES", "7")

	cfg, err := Load(WithFileSystem(files), WithFile("/cfg.toml"), WithEnvPrefix("TKTEST_"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Engine.MaxUndoEntries != 7 {
		t.Errorf("engine.maxUndoEntries = %d, want 7", cfg.Engine.MaxUndoEntries)
	}
}

func TestLoad_Errors(t *testing.T) {
	files := memFS{
		"/unknown.toml": "[engine]\ntabSize = 4\n",
		"/broken.toml":  "[engine\n",
		"/invalid.toml": "[engine]\nnewline = \"crlf2\"\n[journal]\nsize = 0\n",
		"/cfg.ini":      "",
	}

	t.Run("unknown setting", func(t *testing.T) {
		_, err := Load(WithFileSystem(files), WithFile("/unknown.toml"), WithoutEnv())
		if err == nil || !strings.Contains(err.Error(), "unknown settings") {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := Load(WithFileSystem(files), WithFile("/broken.toml"), WithoutEnv())
		var perr *loader.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("error = %v, want *loader.ParseError", err)
		}
	})

	t.Run("validation", func(t *testing.T) {
		_, err := Load(WithFileSystem(files), WithFile("/invalid.toml"), WithoutEnv())
		if !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("error = %v, want ErrValidationFailed", err)
		}
		for _, path := range []string{"engine.newline", "journal.size"} {
			if !strings.Contains(err.Error(), path) {
				t.Errorf("error %q does not name %s", err, path)
			}
		}
	})

	t.Run("format", func(t *testing.T) {
		_, err := Load(WithFileSystem(files), WithFile("/cfg.ini"), WithoutEnv())
		if !errors.Is(err, loader.ErrUnsupportedFormat) {
			t.Errorf("error = %v, want ErrUnsupportedFormat", err)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		path   string
	}{
		{"level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"undo entries", func(c *Config) { c.Engine.MaxUndoEntries = -1 }, "engine.maxUndoEntries"},
		{"line capacity", func(c *Config) { c.Engine.LineCapacity = -1 }, "engine.lineCapacity"},
		{"debounce", func(c *Config) { c.Watch.DebounceMs = -5 }, "watch.debounceMs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Path != tt.path {
				t.Errorf("Validate() = %v, want error for %s", err, tt.path)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoggerConfig(t *testing.T) {
	var sb strings.Builder
	cfg := Logging{Level: "warn", Prefix: "tk"}.LoggerConfig(&sb)
	if cfg.Level != logging.LevelWarn || cfg.Prefix != "tk" || cfg.Output != &sb {
		t.Errorf("LoggerConfig() = %+v", cfg)
	}
}
