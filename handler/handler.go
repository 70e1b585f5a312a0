package handler

import (
	"sync"

	"github.com/hlog-framework/hlog/core"
	"github.com/hlog-framework/hlog/formatter"
)

// Sink receives formatted log lines for one handler. It is the external
// write collaborator: a console stream, a file, or a bridge into another
// logging backend. Write failures are the sink's concern and never
// affect logger state.
type Sink interface {
	// Write delivers one formatted line. The record is passed alongside
	// so sinks that re-emit into structured backends can use the raw
	// fields instead of the rendered line.
	Write(rec core.Record, line []byte) error

	// Close flushes and releases the sink
	Close() error
}

// Handler is a named sink identity. It carries the default enabled-level
// threshold and the default block-filter set that apply to every logger
// which has no explicit override for this handler, plus the formatter
// used to render records before they reach the sink.
type Handler struct {
	name string
	sink Sink

	mu        sync.Mutex
	formatter formatter.Formatter
	level     core.Level
	block     core.LevelSet
}

// Config holds configuration for a Handler
type Config struct {
	// Name identifies the handler (default: "handler")
	Name string
	// Sink receives formatted lines (required)
	Sink Sink
	// Formatter renders records (default: TextFormatter)
	Formatter formatter.Formatter
	// Level is the default enabled threshold (default: TraceLevel, everything)
	Level core.Level
	// Block is the default block-filter set (default: empty)
	Block core.LevelSet
}

// New creates a new Handler
func New(cfg Config) *Handler {
	if cfg.Name == "" {
		cfg.Name = "handler"
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{IncludeLocation: true})
	}
	if cfg.Level == core.BelowAllLevel {
		cfg.Level = core.TraceLevel
	}
	return &Handler{
		name:      cfg.Name,
		sink:      cfg.Sink,
		formatter: cfg.Formatter,
		level:     cfg.Level,
		block:     cfg.Block,
	}
}

// Name returns the handler's identity
func (h *Handler) Name() string {
	return h.name
}

// DefaultLevel returns the default enabled-level threshold
func (h *Handler) DefaultLevel() core.Level {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.level
}

// SetDefaultLevel replaces the default enabled-level threshold
func (h *Handler) SetDefaultLevel(level core.Level) {
	h.mu.Lock()
	h.level = level
	h.mu.Unlock()
}

// DefaultBlockFilter returns the default block-filter set
func (h *Handler) DefaultBlockFilter() core.LevelSet {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.block
}

// SetDefaultBlockFilter replaces the default block-filter set
func (h *Handler) SetDefaultBlockFilter(block core.LevelSet) {
	h.mu.Lock()
	h.block = block
	h.mu.Unlock()
}

// SetFormatter replaces the formatter used for subsequent records
func (h *Handler) SetFormatter(f formatter.Formatter) {
	h.mu.Lock()
	h.formatter = f
	h.mu.Unlock()
}

// Emit formats the record and hands it to the sink
func (h *Handler) Emit(rec core.Record) error {
	h.mu.Lock()
	f := h.formatter
	h.mu.Unlock()
	return h.sink.Write(rec, f.Format(rec))
}

// Close closes the underlying sink
func (h *Handler) Close() error {
	if h.sink == nil {
		return nil
	}
	return h.sink.Close()
}
