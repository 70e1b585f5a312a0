package logger

import (
	"fmt"
	"os"

	"github.com/hlog-framework/hlog/core"
	"github.com/hlog-framework/hlog/handler"
)

// osExit is a variable to allow overriding os.Exit in tests
var osExit = os.Exit

// Log dispatches one call at the given level, capturing the caller's
// file and line. When the logger is mocked the call is recorded instead
// of written; otherwise it is written to every enabled handler and, at
// or above the stop level, aborts the run.
func (l *Logger) Log(level core.Level, msg string) {
	file, line := core.GetCaller(2)
	l.dispatch(level, msg, file, line)
}

// LogAt is Log with an explicit source location, for callers that relay
// records on behalf of someone else.
func (l *Logger) LogAt(level core.Level, msg, file string, line int) {
	l.dispatch(level, msg, file, line)
}

// IsEnabled reports whether a call at the given level would reach at
// least one attached handler. It builds no record, so callers can gate
// expensive message formatting on it.
func (l *Logger) IsEnabled(level core.Level) bool {
	r := l.registry
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range l.handlersLocked() {
		if l.enabledLocked(h, level) {
			return true
		}
	}
	return false
}

// LogCount returns the number of non-mocked log calls at the given
// levels, or across all levels when none are given.
func (l *Logger) LogCount(levels ...core.Level) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return sumCounts(&l.counts, levels)
}

// ResetLogCount zeroes the log counts for the given levels, or for all
// levels when none are given.
func (l *Logger) ResetLogCount(levels ...core.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(levels) == 0 {
		l.counts = [core.NumLevels]uint64{}
		return
	}
	for _, lv := range levels {
		l.counts[lv] = 0
	}
}

// SetStopLevel sets the level at or above which a non-mocked log call
// aborts the run.
func (l *Logger) SetStopLevel(level core.Level) {
	l.mu.Lock()
	l.stopLevel = level
	l.mu.Unlock()
}

// StopLevel returns the current stop level
func (l *Logger) StopLevel() core.Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stopLevel
}

// DisableStop raises the stop level above every level
func (l *Logger) DisableStop() {
	l.SetStopLevel(core.AboveAllLevel)
}

// dispatch is the single path every log call goes through
func (l *Logger) dispatch(level core.Level, msg, file string, line int) {
	if !level.Valid() {
		panic(fmt.Sprintf("hlog: %s is a threshold sentinel, not a record level", level))
	}

	r := l.registry
	rec := core.Record{
		Logger:  l.fullName,
		Level:   level,
		Message: msg,
		File:    file,
		Line:    line,
		Time:    r.clock.Now(),
	}

	r.mu.RLock()
	var receive []*handler.Handler
	for _, h := range l.handlersLocked() {
		if l.enabledLocked(h, level) {
			receive = append(receive, h)
		}
	}
	r.mu.RUnlock()

	l.mu.Lock()
	if l.mocked {
		l.mockQueue = append(l.mockQueue, rec)
		l.mockCounts[level]++
		l.mu.Unlock()
		return
	}
	l.counts[level]++
	stop := level >= l.stopLevel
	l.mu.Unlock()

	for _, h := range receive {
		// Sink write failures are the collaborator's concern
		_ = h.Emit(rec)
	}

	if stop {
		if r.abort != nil {
			r.abort(rec)
			return
		}
		osExit(1)
	}
}

// enabledLocked reports whether level passes the effective threshold
// and block filter for h. Caller holds registry.mu.
func (l *Logger) enabledLocked(h *handler.Handler, level core.Level) bool {
	return level >= l.levelLocked(h) && !l.blockLocked(h).Has(level)
}

func sumCounts(counts *[core.NumLevels]uint64, levels []core.Level) uint64 {
	var total uint64
	if len(levels) == 0 {
		for lv := core.TraceLevel; lv <= core.FailureLevel; lv++ {
			total += counts[lv]
		}
		return total
	}
	for _, lv := range levels {
		total += counts[lv]
	}
	return total
}

// Trace logs a trace message
func (l *Logger) Trace(msg string) {
	file, line := core.GetCaller(2)
	l.dispatch(core.TraceLevel, msg, file, line)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string) {
	file, line := core.GetCaller(2)
	l.dispatch(core.DebugLevel, msg, file, line)
}

// Verbose logs a verbose message
func (l *Logger) Verbose(msg string) {
	file, line := core.GetCaller(2)
	l.dispatch(core.VerboseLevel, msg, file, line)
}

// Info logs an info message
func (l *Logger) Info(msg string) {
	file, line := core.GetCaller(2)
	l.dispatch(core.InfoLevel, msg, file, line)
}

// Warning logs a warning message
func (l *Logger) Warning(msg string) {
	file, line := core.GetCaller(2)
	l.dispatch(core.WarningLevel, msg, file, line)
}

// Error logs an error message
func (l *Logger) Error(msg string) {
	file, line := core.GetCaller(2)
	l.dispatch(core.ErrorLevel, msg, file, line)
}

// Failure logs a failure message
func (l *Logger) Failure(msg string) {
	file, line := core.GetCaller(2)
	l.dispatch(core.FailureLevel, msg, file, line)
}

// Tracef logs a trace message with formatting
func (l *Logger) Tracef(format string, args ...interface{}) {
	file, line := core.GetCaller(2)
	l.dispatch(core.TraceLevel, fmt.Sprintf(format, args...), file, line)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	file, line := core.GetCaller(2)
	l.dispatch(core.DebugLevel, fmt.Sprintf(format, args...), file, line)
}

// Verbosef logs a verbose message with formatting
func (l *Logger) Verbosef(format string, args ...interface{}) {
	file, line := core.GetCaller(2)
	l.dispatch(core.VerboseLevel, fmt.Sprintf(format, args...), file, line)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	file, line := core.GetCaller(2)
	l.dispatch(core.InfoLevel, fmt.Sprintf(format, args...), file, line)
}

// Warningf logs a warning message with formatting
func (l *Logger) Warningf(format string, args ...interface{}) {
	file, line := core.GetCaller(2)
	l.dispatch(core.WarningLevel, fmt.Sprintf(format, args...), file, line)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	file, line := core.GetCaller(2)
	l.dispatch(core.ErrorLevel, fmt.Sprintf(format, args...), file, line)
}

// Failuref logs a failure message with formatting
func (l *Logger) Failuref(format string, args ...interface{}) {
	file, line := core.GetCaller(2)
	l.dispatch(core.FailureLevel, fmt.Sprintf(format, args...), file, line)
}
