package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hlog-framework/hlog/core"
)

// SlogHandler adapts a Logger to slog.Handler, so code written against
// the standard library's structured logger can feed the hierarchical
// tree (and be verified through the mock protocol like any other
// caller). Attributes are rendered into the message text: records
// carry a flat message, not structured fields.
type SlogHandler struct {
	logger *Logger
	level  core.Level
	attrs  string
}

// NewSlogHandler wraps l in a slog.Handler that drops records below the
// given level before they reach the tree.
func NewSlogHandler(l *Logger, level core.Level) *SlogHandler {
	return &SlogHandler{logger: l, level: level}
}

// Enabled reports whether the handler handles records at the given level
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return slogToLevel(level) >= s.level
}

// Handle forwards a slog.Record into the wrapped logger
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	var b strings.Builder
	b.WriteString(record.Message)
	b.WriteString(s.attrs)
	record.Attrs(func(a slog.Attr) bool {
		b.WriteByte(' ')
		b.WriteString(a.String())
		return true
	})

	file, line := "", 0
	if record.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{record.PC}).Next()
		file = filepath.Base(frame.File)
		line = frame.Line
	}

	s.logger.LogAt(slogToLevel(record.Level), b.String(), file, line)
	return nil
}

// WithAttrs returns a new SlogHandler carrying the additional attributes
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var b strings.Builder
	b.WriteString(s.attrs)
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.String())
	}
	return &SlogHandler{logger: s.logger, level: s.level, attrs: b.String()}
}

// WithGroup returns the handler unchanged; groups are flattened
func (s *SlogHandler) WithGroup(string) slog.Handler {
	return s
}

func slogToLevel(l slog.Level) core.Level {
	switch {
	case l < slog.LevelDebug:
		return core.TraceLevel
	case l < slog.LevelInfo:
		return core.DebugLevel
	case l < slog.LevelWarn:
		return core.InfoLevel
	case l < slog.LevelError:
		return core.WarningLevel
	default:
		return core.ErrorLevel
	}
}
