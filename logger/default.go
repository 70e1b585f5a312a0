package logger

import (
	"fmt"
	"sync"

	"github.com/hlog-framework/hlog/core"
)

var (
	defaultRegistry *Registry
	defaultMu       sync.RWMutex
)

func init() {
	// Initialize the default registry: root + "default" logger writing
	// to a console handler on stdout
	defaultRegistry = NewRegistry()
}

// Default returns the default registry
func Default() *Registry {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultRegistry
}

// SetDefault sets the default registry
func SetDefault(r *Registry) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultRegistry = r
}

// GetLogger returns a logger from the default registry
func GetLogger(name string) *Logger {
	return Default().GetLogger(name)
}

// Package-level convenience functions using the default registry's
// "default" logger

// Trace logs a trace message using the default logger
func Trace(msg string) {
	file, line := core.GetCaller(2)
	Default().DefaultLogger().LogAt(core.TraceLevel, msg, file, line)
}

// Debug logs a debug message using the default logger
func Debug(msg string) {
	file, line := core.GetCaller(2)
	Default().DefaultLogger().LogAt(core.DebugLevel, msg, file, line)
}

// Verbose logs a verbose message using the default logger
func Verbose(msg string) {
	file, line := core.GetCaller(2)
	Default().DefaultLogger().LogAt(core.VerboseLevel, msg, file, line)
}

// Info logs an info message using the default logger
func Info(msg string) {
	file, line := core.GetCaller(2)
	Default().DefaultLogger().LogAt(core.InfoLevel, msg, file, line)
}

// Warning logs a warning message using the default logger
func Warning(msg string) {
	file, line := core.GetCaller(2)
	Default().DefaultLogger().LogAt(core.WarningLevel, msg, file, line)
}

// Error logs an error message using the default logger
func Error(msg string) {
	file, line := core.GetCaller(2)
	Default().DefaultLogger().LogAt(core.ErrorLevel, msg, file, line)
}

// Failure logs a failure message using the default logger
func Failure(msg string) {
	file, line := core.GetCaller(2)
	Default().DefaultLogger().LogAt(core.FailureLevel, msg, file, line)
}

// Tracef logs a formatted trace message using the default logger
func Tracef(format string, args ...interface{}) {
	file, line := core.GetCaller(2)
	Default().DefaultLogger().LogAt(core.TraceLevel, fmt.Sprintf(format, args...), file, line)
}

// Debugf logs a formatted debug message using the default logger
func Debugf(format string, args ...interface{}) {
	file, line := core.GetCaller(2)
	Default().DefaultLogger().LogAt(core.DebugLevel, fmt.Sprintf(format, args...), file, line)
}

// Verbosef logs a formatted verbose message using the default logger
func Verbosef(format string, args ...interface{}) {
	file, line := core.GetCaller(2)
	Default().DefaultLogger().LogAt(core.VerboseLevel, fmt.Sprintf(format, args...), file, line)
}

// Infof logs a formatted info message using the default logger
func Infof(format string, args ...interface{}) {
	file, line := core.GetCaller(2)
	Default().DefaultLogger().LogAt(core.InfoLevel, fmt.Sprintf(format, args...), file, line)
}

// Warningf logs a formatted warning message using the default logger
func Warningf(format string, args ...interface{}) {
	file, line := core.GetCaller(2)
	Default().DefaultLogger().LogAt(core.WarningLevel, fmt.Sprintf(format, args...), file, line)
}

// Errorf logs a formatted error message using the default logger
func Errorf(format string, args ...interface{}) {
	file, line := core.GetCaller(2)
	Default().DefaultLogger().LogAt(core.ErrorLevel, fmt.Sprintf(format, args...), file, line)
}

// Failuref logs a formatted failure message using the default logger
func Failuref(format string, args ...interface{}) {
	file, line := core.GetCaller(2)
	Default().DefaultLogger().LogAt(core.FailureLevel, fmt.Sprintf(format, args...), file, line)
}
