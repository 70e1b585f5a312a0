package logger

import (
	"sync"

	"github.com/hlog-framework/hlog/core"
	"github.com/hlog-framework/hlog/handler"
)

// Logger is a named node in the logger tree. It owns per-handler
// threshold and block-filter overrides, its attached-handler list, log
// counts, the stop level, and the mock state used by the verification
// protocol. Loggers are created through a Registry and live for the
// process's duration.
type Logger struct {
	registry *Registry
	name     string
	fullName string
	parent   *Logger

	// Tree structure, per-handler overrides and the attached-handler
	// list are guarded by registry.mu so ancestor walks see a
	// consistent view.
	children    []*Logger
	settings    map[*handler.Handler]*override
	handlers    []*handler.Handler
	hasHandlers bool

	// mu guards counts, stop level and mock state
	mu         sync.Mutex
	counts     [core.NumLevels]uint64
	stopLevel  core.Level
	mocked     bool
	mockQueue  []core.Record
	mockCounts [core.NumLevels]uint64
}

// override is one explicit per-(logger,handler) setting. Each field is
// optional; an unset field is resolved by walking ancestors and falling
// back to the handler's defaults.
type override struct {
	level    core.Level
	hasLevel bool
	block    core.LevelSet
	hasBlock bool
}

// Name returns the local name segment
func (l *Logger) Name() string {
	return l.name
}

// FullName returns the ancestry-qualified name, segments joined by ":"
func (l *Logger) FullName() string {
	return l.fullName
}

// Parent returns the parent logger, or nil for the root
func (l *Logger) Parent() *Logger {
	return l.parent
}

// NumChildren returns the number of child loggers
func (l *Logger) NumChildren() int {
	l.registry.mu.RLock()
	defer l.registry.mu.RUnlock()
	return len(l.children)
}

// Child returns the idx'th child logger in creation order
func (l *Logger) Child(idx int) (*Logger, error) {
	l.registry.mu.RLock()
	defer l.registry.mu.RUnlock()
	if idx < 0 || idx >= len(l.children) {
		return nil, &IndexError{Op: "child of " + l.fullName, Index: idx, Len: len(l.children)}
	}
	return l.children[idx], nil
}

// GetLogger returns the descendant at the ":"-separated path under this
// logger, creating any missing nodes. The returned identity is stable:
// repeated calls with the same path return the same Logger.
func (l *Logger) GetLogger(name string) *Logger {
	return l.registry.getLogger(l, name)
}

// SetLogLevel sets the enabled-level threshold for handler h on this
// logger and, through inheritance, on every descendant that has no
// explicit threshold of its own.
func (l *Logger) SetLogLevel(h *handler.Handler, level core.Level) {
	l.registry.mu.Lock()
	ov := l.overrideLocked(h)
	ov.level = level
	ov.hasLevel = true
	l.registry.mu.Unlock()
}

// SetBlockFilter sets the block-filter set for handler h on this logger
// and, through inheritance, on every descendant without its own filter.
// A level passes only if it meets the threshold and is not blocked.
func (l *Logger) SetBlockFilter(h *handler.Handler, block core.LevelSet) {
	l.registry.mu.Lock()
	ov := l.overrideLocked(h)
	ov.block = block
	ov.hasBlock = true
	l.registry.mu.Unlock()
}

// EnableAll lowers the threshold for h to pass every level
func (l *Logger) EnableAll(h *handler.Handler) {
	l.SetLogLevel(h, core.TraceLevel)
}

// DisableAll raises the threshold for h above every level
func (l *Logger) DisableAll(h *handler.Handler) {
	l.SetLogLevel(h, core.AboveAllLevel)
}

// LogLevel returns the effective threshold for h: the nearest ancestor
// (including l) with an explicit threshold, else h's default.
func (l *Logger) LogLevel(h *handler.Handler) core.Level {
	l.registry.mu.RLock()
	defer l.registry.mu.RUnlock()
	return l.levelLocked(h)
}

// BlockFilter returns the effective block-filter set for h
func (l *Logger) BlockFilter(h *handler.Handler) core.LevelSet {
	l.registry.mu.RLock()
	defer l.registry.mu.RUnlock()
	return l.blockLocked(h)
}

// SetHandlers replaces this logger's attached-handler list. Descendants
// without their own list inherit it.
func (l *Logger) SetHandlers(hs ...*handler.Handler) {
	l.registry.mu.Lock()
	l.handlers = append([]*handler.Handler(nil), hs...)
	l.hasHandlers = true
	l.registry.mu.Unlock()
}

// AddHandler appends h to this logger's effective handler list, making
// the list explicit on this logger if it was inherited.
func (l *Logger) AddHandler(h *handler.Handler) {
	l.registry.mu.Lock()
	effective := l.handlersLocked()
	l.handlers = append(append([]*handler.Handler(nil), effective...), h)
	l.hasHandlers = true
	l.registry.mu.Unlock()
}

// Handlers returns a copy of the effective attached-handler list
func (l *Logger) Handlers() []*handler.Handler {
	l.registry.mu.RLock()
	defer l.registry.mu.RUnlock()
	return append([]*handler.Handler(nil), l.handlersLocked()...)
}

// Handler returns the idx'th effective attached handler
func (l *Logger) Handler(idx int) (*handler.Handler, error) {
	l.registry.mu.RLock()
	defer l.registry.mu.RUnlock()
	hs := l.handlersLocked()
	if idx < 0 || idx >= len(hs) {
		return nil, &IndexError{Op: "handler of " + l.fullName, Index: idx, Len: len(hs)}
	}
	return hs[idx], nil
}

// overrideLocked returns this logger's explicit override entry for h,
// creating it if absent. Caller holds registry.mu.
func (l *Logger) overrideLocked(h *handler.Handler) *override {
	if l.settings == nil {
		l.settings = make(map[*handler.Handler]*override)
	}
	ov, ok := l.settings[h]
	if !ok {
		ov = &override{}
		l.settings[h] = ov
	}
	return ov
}

// levelLocked resolves the effective threshold for h by walking from l
// to the root. Caller holds registry.mu.
func (l *Logger) levelLocked(h *handler.Handler) core.Level {
	for n := l; n != nil; n = n.parent {
		if ov, ok := n.settings[h]; ok && ov.hasLevel {
			return ov.level
		}
	}
	return h.DefaultLevel()
}

// blockLocked resolves the effective block filter for h. Caller holds
// registry.mu.
func (l *Logger) blockLocked(h *handler.Handler) core.LevelSet {
	for n := l; n != nil; n = n.parent {
		if ov, ok := n.settings[h]; ok && ov.hasBlock {
			return ov.block
		}
	}
	return h.DefaultBlockFilter()
}

// handlersLocked resolves the effective attached-handler list: the
// nearest ancestor (including l) with an explicit list. The root always
// has one. Caller holds registry.mu.
func (l *Logger) handlersLocked() []*handler.Handler {
	for n := l; n != nil; n = n.parent {
		if n.hasHandlers {
			return n.handlers
		}
	}
	return nil
}
