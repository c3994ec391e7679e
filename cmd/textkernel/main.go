// Package main is the entry point for the textkernel command.
//
// textkernel loads a file into an engine, applies an edit script to it
// and prints the result.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dshills/textkernel/internal/config"
	"github.com/dshills/textkernel/internal/config/watcher"
	"github.com/dshills/textkernel/internal/engine"
	"github.com/dshills/textkernel/internal/engine/tracking"
	"github.com/dshills/textkernel/internal/logging"
	"github.com/dshills/textkernel/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errUnsupportedScript is returned for script files that are neither Lua
// nor JSON.
var errUnsupportedScript = errors.New("unsupported script type (want .lua or .json)")

type options struct {
	ConfigPath  string
	ScriptPath  string
	InputPath   string
	JSON        bool
	LogLevel    string
	ReadOnly    bool
	Watch       bool
	ShowVersion bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.ShowVersion {
		fmt.Fprintf(stdout, "textkernel %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger := logging.New(cfg.Logging.LoggerConfig(stderr))

	var input []byte
	if opts.InputPath != "" {
		if input, err = os.ReadFile(opts.InputPath); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := &processor{cfg: cfg, opts: opts, input: input, stdout: stdout, logger: logger}
	if err := p.process(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if !opts.Watch {
			return 1
		}
	}

	if opts.Watch {
		if err := p.watch(ctx); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("textkernel", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&opts.ScriptPath, "script", "", "Edit script to run (.lua or .json)")
	fs.BoolVar(&opts.JSON, "json", false, "Print a JSON snapshot instead of the text")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.ReadOnly, "read-only", false, "Open the document read-only")
	fs.BoolVar(&opts.Watch, "watch", false, "Re-run the script whenever it changes")
	fs.BoolVar(&opts.ShowVersion, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "textkernel - scriptable text storage engine\n\n")
		fmt.Fprintf(stderr, "Usage: textkernel [options] [file]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  textkernel -script edit.lua notes.txt        Apply a Lua script\n")
		fmt.Fprintf(stderr, "  textkernel -script ops.json -json notes.txt  Print a snapshot\n")
		fmt.Fprintf(stderr, "  textkernel -watch -script edit.lua notes.txt Re-run on change\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 1 {
		fmt.Fprintf(stderr, "Error: at most one input file\n")
		return opts, errors.New("too many arguments")
	}
	opts.InputPath = fs.Arg(0)

	if opts.Watch && opts.ScriptPath == "" {
		fmt.Fprintf(stderr, "Error: -watch requires -script\n")
		return opts, errors.New("-watch requires -script")
	}
	return opts, nil
}

// loadConfig loads the configuration and applies flag overrides.
func loadConfig(opts options) (*config.Config, error) {
	var loadOpts []config.Option
	if opts.ConfigPath != "" {
		loadOpts = append(loadOpts, config.WithFile(opts.ConfigPath))
	}
	cfg, err := config.Load(loadOpts...)
	if err != nil {
		return nil, err
	}

	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.ReadOnly {
		cfg.Engine.ReadOnly = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// processor runs the script against a fresh copy of the input.
type processor struct {
	cfg    *config.Config
	opts   options
	input  []byte
	stdout io.Writer
	logger *logging.Logger
}

func (p *processor) process(ctx context.Context) error {
	eng, err := engine.NewFromReader(bytes.NewReader(p.input),
		engine.FromConfig(p.cfg.Engine),
		engine.WithJournalSize(p.cfg.Journal.Size),
		engine.WithLogger(p.logger),
	)
	if err != nil {
		return err
	}

	if p.opts.ScriptPath != "" {
		if err := p.runScript(ctx, eng); err != nil {
			return err
		}
	}

	summary := tracking.Summarize(eng.LatestChanges(p.cfg.Journal.Size))
	p.logger.Info("%s: %s, revision %d", p.name(), summary, eng.Revision())

	if p.opts.JSON {
		snap, err := script.Snapshot(eng)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(p.stdout, "%s\n", snap)
		return err
	}
	_, err = io.WriteString(p.stdout, eng.Text())
	return err
}

func (p *processor) runScript(ctx context.Context, eng *engine.Engine) error {
	switch strings.ToLower(filepath.Ext(p.opts.ScriptPath)) {
	case ".lua":
		r := script.NewLua(eng, script.WithOutput(p.stdout), script.WithLogger(p.logger))
		defer r.Close()
		return r.RunFile(ctx, p.opts.ScriptPath)
	case ".json":
		data, err := os.ReadFile(p.opts.ScriptPath)
		if err != nil {
			return err
		}
		return script.RunJSON(eng, filepath.Base(p.opts.ScriptPath), data)
	default:
		return fmt.Errorf("%s: %w", p.opts.ScriptPath, errUnsupportedScript)
	}
}

func (p *processor) name() string {
	if p.opts.InputPath == "" {
		return "(empty)"
	}
	return filepath.Base(p.opts.InputPath)
}

// watch re-runs process whenever the script changes, until ctx is done.
func (p *processor) watch(ctx context.Context) error {
	w, err := watcher.New(
		watcher.WithDebounce(time.Duration(p.cfg.Watch.DebounceMs)*time.Millisecond),
		watcher.WithLogger(p.logger),
	)
	if err != nil {
		return err
	}
	defer w.Close()

	changed := make(chan struct{}, 1)
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove {
			return
		}
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err := w.Watch(p.opts.ScriptPath); err != nil {
		return err
	}
	w.Start()
	p.logger.Info("watching %s", p.opts.ScriptPath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changed:
			if err := p.process(ctx); err != nil {
				p.logger.Error("%v", err)
			}
		}
	}
}
