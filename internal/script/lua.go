package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textkernel/internal/engine"
	"github.com/dshills/textkernel/internal/logging"
)

// Lua runs Lua scripts against an engine.
//
// gopher-lua states are not goroutine-safe. Runs are serialized by the
// runner's mutex.
type Lua struct {
	mu sync.Mutex

	eng *engine.Engine
	L   *lua.LState

	timeout time.Duration
	out     io.Writer
	logger  *logging.Logger

	// lastErr is the engine error behind the latest raised Lua error.
	lastErr error
	closed  bool
}

// NewLua creates a sandboxed Lua runner editing eng.
func NewLua(eng *engine.Engine, opts ...Option) *Lua {
	r := &Lua{
		eng:     eng,
		timeout: DefaultTimeout,
		out:     os.Stdout,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("script")

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(r.L)
	r.installSandbox()
	r.L.SetGlobal("doc", r.docModule())
	return r
}

// openSafeLibraries opens only the libraries without host access.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	L.SetTop(0)
}

// installSandbox removes functions that load code from outside the
// script and redirects print to the runner's output.
func (r *Lua) installSandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		r.L.SetGlobal(name, lua.LNil)
	}

	r.L.SetGlobal("print", r.L.NewFunction(func(L *lua.LState) int {
		top := L.GetTop()
		parts := make([]string, top)
		for i := 1; i <= top; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		fmt.Fprintln(r.out, strings.Join(parts, "\t"))
		return 0
	}))
}

// Run executes code under name.
func (r *Lua) Run(ctx context.Context, name, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	r.lastErr = nil
	start := time.Now()
	err := r.doWithRecovery(func() error {
		fn, err := r.L.Load(strings.NewReader(code), name)
		if err != nil {
			return err
		}
		r.L.Push(fn)
		return r.L.PCall(0, lua.MultRet, nil)
	})
	r.L.SetTop(0)

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s", ErrTimeout, r.timeout)
		}
		r.logger.Debug("%s failed: %v", name, err)
		return &Error{Script: name, Err: err, Cause: r.lastErr}
	}
	r.logger.Debug("%s finished in %s", name, time.Since(start))
	return nil
}

// RunFile executes the Lua file at path.
func (r *Lua) RunFile(ctx context.Context, path string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return r.Run(ctx, filepath.Base(path), string(code))
}

// Close releases the Lua state.
func (r *Lua) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	r.L.Close()
}

// doWithRecovery executes a function with panic recovery.
func (r *Lua) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("lua panic: %v", p)
		}
	}()
	return fn()
}
