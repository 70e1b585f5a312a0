package logger

import "github.com/hlog-framework/hlog/core"

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	BelowAllLevel = core.BelowAllLevel
	TraceLevel    = core.TraceLevel
	DebugLevel    = core.DebugLevel
	VerboseLevel  = core.VerboseLevel
	InfoLevel     = core.InfoLevel
	WarningLevel  = core.WarningLevel
	ErrorLevel    = core.ErrorLevel
	FailureLevel  = core.FailureLevel
	AboveAllLevel = core.AboveAllLevel
)

// LevelSet Re-export for block filter construction
type LevelSet = core.LevelSet

// MakeLevelSet builds a LevelSet containing the given levels
func MakeLevelSet(levels ...Level) LevelSet {
	return core.MakeLevelSet(levels...)
}

// ParseLevel converts a string to a Level
func ParseLevel(s string) (Level, error) {
	return core.ParseLevel(s)
}
