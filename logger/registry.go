package logger

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/hlog-framework/hlog/core"
	"github.com/hlog-framework/hlog/handler"
)

// Registry owns the logger tree: the root logger, the full-name arena,
// the clock collaborator and the fatal-abort hook. It is created once
// and never torn down; loggers live for the process's duration.
type Registry struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
	root    *Logger
	deflt   *Logger
	clock   core.Clock
	abort   func(core.Record)
}

// Option configures a Registry at construction time
type Option func(*Registry)

// WithClock sets the clock that stamps records (default: WallClock)
func WithClock(c core.Clock) Option {
	return func(r *Registry) { r.clock = c }
}

// WithHandlers sets the root logger's attached handlers, replacing the
// default console handler.
func WithHandlers(hs ...*handler.Handler) Option {
	return func(r *Registry) {
		r.root.handlers = append([]*handler.Handler(nil), hs...)
		r.root.hasHandlers = true
	}
}

// WithAbortHook replaces the process abort performed when a log call
// reaches a logger's stop level. The hook must not return control to
// the dispatch path expecting the run to continue; panicking is the
// usual choice for test harnesses.
func WithAbortHook(fn func(core.Record)) Option {
	return func(r *Registry) { r.abort = fn }
}

// NewRegistry creates a registry with a root logger and a "default"
// child, both present before any user call.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{loggers: make(map[string]*Logger)}
	r.root = &Logger{registry: r, stopLevel: core.AboveAllLevel}
	r.loggers[""] = r.root

	for _, o := range opts {
		o(r)
	}

	if r.clock == nil {
		r.clock = core.NewWallClock()
	}
	if !r.root.hasHandlers {
		display := handler.New(handler.Config{
			Name: "display",
			Sink: handler.NewConsoleSink(handler.ConsoleConfig{}),
		})
		r.root.handlers = []*handler.Handler{display}
		r.root.hasHandlers = true
	}

	r.deflt = r.getLogger(r.root, "default")
	return r
}

// Root returns the root logger
func (r *Registry) Root() *Logger {
	return r.root
}

// DefaultLogger returns the pre-created "default" logger
func (r *Registry) DefaultLogger() *Logger {
	return r.deflt
}

// Clock returns the registry's clock collaborator
func (r *Registry) Clock() core.Clock {
	return r.clock
}

// GetLogger returns the logger at the ":"-separated path under the
// root, creating any missing nodes. Repeated calls with the same name
// return the same identity.
func (r *Registry) GetLogger(name string) *Logger {
	return r.getLogger(r.root, name)
}

// SetLogLevel sets the enabled-level threshold for h on every logger
// that carries no explicit threshold of its own.
func (r *Registry) SetLogLevel(h *handler.Handler, level core.Level) {
	r.root.SetLogLevel(h, level)
}

// SetBlockFilter sets the block filter for h on every logger that
// carries no explicit filter of its own.
func (r *Registry) SetBlockFilter(h *handler.Handler, block core.LevelSet) {
	r.root.SetBlockFilter(h, block)
}

// EnableAll lowers the threshold for h to pass every level, registry-wide
func (r *Registry) EnableAll(h *handler.Handler) {
	r.root.EnableAll(h)
}

// DisableAll raises the threshold for h above every level, registry-wide
func (r *Registry) DisableAll(h *handler.Handler) {
	r.root.DisableAll(h)
}

// FinalCheck verifies that the registry is clean at the end of a run:
// no logger is still mocked or holds unconsumed mock records, and no
// error- or failure-level calls were logged. All offending loggers are
// reported, not just the first.
func (r *Registry) FinalCheck() error {
	r.mu.RLock()
	loggers := make([]*Logger, 0, len(r.loggers))
	for _, l := range r.loggers {
		loggers = append(loggers, l)
	}
	r.mu.RUnlock()

	sort.Slice(loggers, func(i, j int) bool { return loggers[i].fullName < loggers[j].fullName })

	var err error
	for _, l := range loggers {
		l.mu.Lock()
		mocked := l.mocked
		pending := len(l.mockQueue)
		errCount := l.counts[core.ErrorLevel] + l.counts[core.FailureLevel]
		l.mu.Unlock()

		if mocked || pending > 0 {
			err = multierr.Append(err, errors.Wrap(
				&UncheckedLogsError{Logger: l.fullName, Pending: pending},
				"logger left mocked"))
		}
		if errCount > 0 {
			err = multierr.Append(err,
				errors.Errorf("logger %q logged %d error/failure call(s)", l.fullName, errCount))
		}
	}
	return err
}

// getLogger walks or creates the ":"-separated path under parent
func (r *Registry) getLogger(parent *Logger, name string) *Logger {
	if name == "" {
		return parent
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	node := parent
	for _, seg := range strings.Split(name, ":") {
		if seg == "" {
			panic(fmt.Sprintf("hlog: invalid logger name %q: empty segment", name))
		}
		node = r.childLocked(node, seg)
	}
	return node
}

// childLocked returns parent's child with the given local name,
// creating and registering it on first use. Caller holds r.mu.
func (r *Registry) childLocked(parent *Logger, name string) *Logger {
	full := name
	if parent.fullName != "" {
		full = parent.fullName + ":" + name
	}
	if l, ok := r.loggers[full]; ok {
		return l
	}
	l := &Logger{
		registry:  r,
		name:      name,
		fullName:  full,
		parent:    parent,
		stopLevel: core.AboveAllLevel,
	}
	parent.children = append(parent.children, l)
	r.loggers[full] = l
	return l
}
