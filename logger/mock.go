package logger

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/hlog-framework/hlog/core"
)

// Mock diverts this logger's calls into an in-memory FIFO queue for
// verification. Calling Mock on an already-mocked logger is a usage
// error and is rejected; the queue and mock counts of the existing
// cycle are left untouched.
func (l *Logger) Mock() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.mocked {
		return &MockStateError{Logger: l.fullName, Mocked: true}
	}
	l.mocked = true
	l.mockQueue = nil
	l.mockCounts = [core.NumLevels]uint64{}
	return nil
}

// Unmock ends the mock cycle. It fails with an UncheckedLogsError when
// recorded calls remain unconsumed, leaving the logger mocked so the
// leak cannot go unnoticed.
func (l *Logger) Unmock() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.mocked {
		return &MockStateError{Logger: l.fullName, Mocked: false}
	}
	if err := l.checkNoLogLocked(); err != nil {
		return errors.Wrap(err, "unmock")
	}
	l.mocked = false
	return nil
}

// IsMocked reports whether the logger is currently mocked
func (l *Logger) IsMocked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mocked
}

// expectation holds the optional fields of a CheckLog expectation.
// Unset fields are not compared.
type expectation struct {
	time      time.Time
	checkTime bool
	file      string
	line      int
	checkLoc  bool
}

// CheckOption adds an optional field to a CheckLog expectation
type CheckOption func(*expectation)

// WithTime additionally checks the record's timestamp
func WithTime(t time.Time) CheckOption {
	return func(s *expectation) {
		s.time = t
		s.checkTime = true
	}
}

// WithLocation additionally checks the record's file and line
func WithLocation(file string, line int) CheckOption {
	return func(s *expectation) {
		s.file = file
		s.line = line
		s.checkLoc = true
	}
}

// CheckLog pops the oldest recorded call and fails with a MismatchError
// unless its message and level (and any opted-in fields) match. FIFO
// order is the contract: expectations must be checked in the order the
// calls were made.
func (l *Logger) CheckLog(msg string, level core.Level, opts ...CheckOption) error {
	var exp expectation
	for _, o := range opts {
		o(&exp)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.mocked {
		return &MockStateError{Logger: l.fullName, Mocked: false}
	}
	return l.checkLogLocked(msg, level, exp)
}

// CheckOnlyLog is CheckLog plus the assertion that no further calls
// remain queued.
func (l *Logger) CheckOnlyLog(msg string, level core.Level, opts ...CheckOption) error {
	var exp expectation
	for _, o := range opts {
		o(&exp)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.mocked {
		return &MockStateError{Logger: l.fullName, Mocked: false}
	}
	if err := l.checkLogLocked(msg, level, exp); err != nil {
		return err
	}
	return l.checkNoLogLocked()
}

// CheckNoLog fails if any recorded calls remain unconsumed
func (l *Logger) CheckNoLog() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.checkNoLogLocked()
}

// MockLogCount returns the number of calls recorded in the current mock
// cycle at the given levels, or across all levels when none are given.
func (l *Logger) MockLogCount(levels ...core.Level) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return sumCounts(&l.mockCounts, levels)
}

func (l *Logger) checkLogLocked(msg string, level core.Level, exp expectation) error {
	if len(l.mockQueue) == 0 {
		return &MismatchError{
			Logger:   l.fullName,
			Field:    "call",
			Expected: fmt.Sprintf("%s %q", level, msg),
			Actual:   "no recorded calls",
		}
	}
	got := l.mockQueue[0]
	l.mockQueue = l.mockQueue[1:]

	if got.Message != msg {
		return &MismatchError{
			Logger:   l.fullName,
			Field:    "message",
			Expected: strconv.Quote(msg),
			Actual:   strconv.Quote(got.Message),
		}
	}
	if got.Level != level {
		return &MismatchError{
			Logger:   l.fullName,
			Field:    "level",
			Expected: level.String(),
			Actual:   got.Level.String(),
		}
	}
	if exp.checkTime && !got.Time.Equal(exp.time) {
		return &MismatchError{
			Logger:   l.fullName,
			Field:    "time",
			Expected: exp.time.String(),
			Actual:   got.Time.String(),
		}
	}
	if exp.checkLoc && (got.File != exp.file || got.Line != exp.line) {
		return &MismatchError{
			Logger:   l.fullName,
			Field:    "location",
			Expected: exp.file + ":" + strconv.Itoa(exp.line),
			Actual:   got.File + ":" + strconv.Itoa(got.Line),
		}
	}
	return nil
}

func (l *Logger) checkNoLogLocked() error {
	if n := len(l.mockQueue); n > 0 {
		return &UncheckedLogsError{Logger: l.fullName, Pending: n}
	}
	return nil
}
