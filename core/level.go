package core

import (
	"fmt"
	"strings"
)

// Level represents the severity level of a log record
type Level int8

const (
	// BelowAllLevel sorts below every real level. It is a threshold
	// sentinel only and never appears on a record.
	BelowAllLevel Level = iota
	// TraceLevel for the most detailed tracing output
	TraceLevel
	// DebugLevel for detailed debugging information
	DebugLevel
	// VerboseLevel for verbose informational messages
	VerboseLevel
	// InfoLevel for general informational messages (default)
	InfoLevel
	// WarningLevel for warning messages
	WarningLevel
	// ErrorLevel for error messages
	ErrorLevel
	// FailureLevel for unrecoverable failures
	FailureLevel
	// AboveAllLevel sorts above every real level. Threshold sentinel only.
	AboveAllLevel
)

// NumLevels is the number of distinct Level values including sentinels.
const NumLevels = int(AboveAllLevel) + 1

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case BelowAllLevel:
		return "BELOW_ALL"
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case VerboseLevel:
		return "VERBOSE"
	case InfoLevel:
		return "INFO"
	case WarningLevel:
		return "WARNING"
	case ErrorLevel:
		return "ERROR"
	case FailureLevel:
		return "FAILURE"
	case AboveAllLevel:
		return "ABOVE_ALL"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether l is a level a record may carry. The two
// sentinels are valid thresholds but not valid record levels.
func (l Level) Valid() bool {
	return l > BelowAllLevel && l < AboveAllLevel
}

// ParseLevel converts a string to a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(s) {
	case "TRACE":
		return TraceLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "VERBOSE":
		return VerboseLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarningLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "FAILURE", "FATAL":
		return FailureLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// LevelSet is a set of levels, used for block filters.
type LevelSet uint16

// MakeLevelSet builds a LevelSet containing the given levels
func MakeLevelSet(levels ...Level) LevelSet {
	var s LevelSet
	return s.With(levels...)
}

// Has reports whether l is in the set
func (s LevelSet) Has(l Level) bool {
	return s&(1<<uint(l)) != 0
}

// With returns a copy of the set with the given levels added
func (s LevelSet) With(levels ...Level) LevelSet {
	for _, l := range levels {
		s |= 1 << uint(l)
	}
	return s
}

// Without returns a copy of the set with the given levels removed
func (s LevelSet) Without(levels ...Level) LevelSet {
	for _, l := range levels {
		s &^= 1 << uint(l)
	}
	return s
}

// Empty reports whether the set contains no levels
func (s LevelSet) Empty() bool {
	return s == 0
}

// String returns a comma-separated list of the contained levels
func (s LevelSet) String() string {
	if s.Empty() {
		return "{}"
	}
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for l := BelowAllLevel; l <= AboveAllLevel; l++ {
		if !s.Has(l) {
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		b.WriteString(l.String())
		first = false
	}
	b.WriteByte('}')
	return b.String()
}
