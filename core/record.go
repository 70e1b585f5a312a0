package core

import (
	"path/filepath"
	"runtime"
	"time"
)

// Record represents a single log call with all its metadata. Records are
// plain values: mock queues retain them after the call returns, so they
// are never pooled or recycled.
type Record struct {
	Logger  string
	Level   Level
	Message string
	File    string
	Line    int
	Time    time.Time
}

// GetCaller retrieves the file and line of the caller skip frames up the
// stack. The file is reduced to its base name.
func GetCaller(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "", 0
	}
	return filepath.Base(file), line
}
