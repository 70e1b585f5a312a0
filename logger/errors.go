package logger

import "fmt"

// UncheckedLogsError reports that a mocked logger still holds recorded
// calls that no verification consumed. It is returned by Unmock and
// CheckNoLog, and by Registry.FinalCheck for loggers leaked across a
// test boundary.
type UncheckedLogsError struct {
	Logger  string
	Pending int
}

func (e *UncheckedLogsError) Error() string {
	return fmt.Sprintf("logger %q has %d unchecked log call(s)", e.Logger, e.Pending)
}

// MismatchError reports a verification failure: a recorded call did not
// match the expectation, or no call was recorded at all. Field names
// the first differing record field.
type MismatchError struct {
	Logger   string
	Field    string
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("logger %q: %s mismatch: expected %s, got %s",
		e.Logger, e.Field, e.Expected, e.Actual)
}

// MockStateError reports a mock-protocol usage error: Mock on an
// already-mocked logger, or Unmock/check calls on one that is not
// mocked.
type MockStateError struct {
	Logger string
	Mocked bool
}

func (e *MockStateError) Error() string {
	if e.Mocked {
		return fmt.Sprintf("logger %q is already mocked", e.Logger)
	}
	return fmt.Sprintf("logger %q is not mocked", e.Logger)
}

// IndexError reports an out-of-range index passed to a tree or handler
// accessor.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0,%d)", e.Op, e.Index, e.Len)
}
