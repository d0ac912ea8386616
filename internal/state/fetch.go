// Package state provides the client-side state containers shared by every
// view: Fetch tracks one asynchronous operation, Form tracks editable fields.
package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/danielolaszy/boardctl/internal/logging"
)

// DefaultErrorMessage is recorded when a failure carries no server message.
const DefaultErrorMessage = "An error occurred"

// Operation produces the value a Fetch tracks.
type Operation[T any] func(ctx context.Context, args ...any) (T, error)

// Snapshot is a consistent copy of a Fetch's state.
type Snapshot[T any] struct {
	Data    T
	HasData bool
	Loading bool
	// Error is "" when there is no error.
	Error string
}

type fetchConfig struct {
	immediate bool
	deps      []any
}

// FetchOption configures NewFetch.
type FetchOption func(*fetchConfig)

// Immediate runs the operation once on creation and again whenever
// SetDeps is called with a different dependency set.
func Immediate(deps ...any) FetchOption {
	return func(c *fetchConfig) {
		c.immediate = true
		c.deps = deps
	}
}

// Fetch tracks data, loading and error for an operation.
//
// Overlapping Execute calls are not de-duplicated: each one writes its
// outcome when it finishes and the last writer wins. Reset does not cancel
// calls in flight. After Dispose, outcomes of calls still in flight are
// dropped.
type Fetch[T any] struct {
	op  Operation[T]
	ctx context.Context

	mu        sync.Mutex
	data      T
	hasData   bool
	loading   bool
	err       string
	immediate bool
	deps      []any
	disposed  bool
	wg        sync.WaitGroup
}

// NewFetch creates a container for op. ctx is used for immediate runs.
func NewFetch[T any](ctx context.Context, op Operation[T], opts ...FetchOption) *Fetch[T] {
	var cfg fetchConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	f := &Fetch[T]{
		op:        op,
		ctx:       ctx,
		immediate: cfg.immediate,
		deps:      cfg.deps,
		loading:   cfg.immediate,
	}
	if f.immediate {
		f.runAsync()
	}
	return f
}

// Execute runs the operation and records its outcome. It returns the result
// and true on success, or the zero value and false on failure.
//
// After Dispose the operation still runs and its result is returned, but the
// container state is left untouched.
func (f *Fetch[T]) Execute(ctx context.Context, args ...any) (result T, ok bool) {
	f.mu.Lock()
	if f.disposed {
		f.mu.Unlock()
		data, err := f.call(ctx, args)
		if err != nil {
			var zero T
			return zero, false
		}
		return data, true
	}
	f.loading = true
	f.err = ""
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if !f.disposed {
			f.loading = false
		}
	}()

	data, err := f.call(ctx, args)
	if err != nil {
		msg := ErrorMessage(err)
		logging.Debug("fetch failed", "error", err, "message", msg)

		f.mu.Lock()
		if !f.disposed {
			f.err = msg
		}
		f.mu.Unlock()

		var zero T
		return zero, false
	}

	f.mu.Lock()
	if !f.disposed {
		f.data = data
		f.hasData = true
	}
	f.mu.Unlock()

	return data, true
}

// call runs op, turning a panic into an error so loading is always cleared.
func (f *Fetch[T]) call(ctx context.Context, args []any) (data T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("operation panicked: %v", r)
		}
	}()
	return f.op(ctx, args...)
}

func (f *Fetch[T]) runAsync() {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		f.Execute(f.ctx)
	}()
}

// SetDeps records a new dependency set. For immediate containers a change
// triggers a new run in the background.
func (f *Fetch[T]) SetDeps(deps ...any) {
	f.mu.Lock()
	changed := !cmp.Equal(f.deps, deps, cmpopts.EquateEmpty())
	f.deps = deps
	rerun := changed && f.immediate && !f.disposed
	if rerun {
		f.loading = true
	}
	f.mu.Unlock()

	if rerun {
		f.runAsync()
	}
}

// Wait blocks until every background run started by the container finished.
func (f *Fetch[T]) Wait() {
	f.wg.Wait()
}

// Reset clears data, loading and error. Calls in flight keep running and
// may write again when they finish.
func (f *Fetch[T]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero T
	f.data = zero
	f.hasData = false
	f.loading = false
	f.err = ""
}

// Dispose detaches the container from its owner. Later outcomes are ignored.
func (f *Fetch[T]) Dispose() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disposed = true
}

// Data returns the last successful result, if any.
func (f *Fetch[T]) Data() (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data, f.hasData
}

// Loading reports whether a call currently owns the state.
func (f *Fetch[T]) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Err returns the recorded error message, "" when none.
func (f *Fetch[T]) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// State returns data, loading and error in one consistent read.
func (f *Fetch[T]) State() Snapshot[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot[T]{Data: f.data, HasData: f.hasData, Loading: f.loading, Error: f.err}
}

// ServerMessager is implemented by errors that carry a message written by
// the server for humans, such as *api.HTTPError.
type ServerMessager interface {
	ServerMessage() string
}

// ErrorMessage prefers the server-provided message in err's chain and falls
// back to DefaultErrorMessage.
func ErrorMessage(err error) string {
	var sm ServerMessager
	if errors.As(err, &sm) {
		if msg := sm.ServerMessage(); msg != "" {
			return msg
		}
	}
	return DefaultErrorMessage
}
