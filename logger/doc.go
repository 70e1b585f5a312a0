// Package logger is the public API of hlog. Most users only need to
// import this package.
//
// Loggers form a named tree owned by a Registry. A logger's full name
// is its ancestry joined with ":", and GetLogger is idempotent: asking
// for the same path twice returns the same node. Each logger writes to
// the attached handlers of its nearest ancestor that set any, subject
// to per-(logger, handler) level thresholds and block filters that are
// likewise inherited until a logger overrides them:
//
//	reg := logger.NewRegistry(logger.WithHandlers(display))
//	rx := reg.GetLogger("uart:rx")
//	rx.SetLogLevel(display, logger.DebugLevel)
//	rx.Infof("received %d frames", n)
//
// Every logger counts its calls per level, and a per-logger stop level
// turns calls at or above it into a fatal abort of the run.
//
// For testing code that itself logs, a logger can be mocked: calls are
// recorded into a FIFO queue instead of being written, and the
// verification protocol consumes them in order:
//
//	mock := reg.GetLogger("uart:rx")
//	_ = mock.Mock()
//	... exercise the code under test ...
//	err := mock.CheckLog("received 3 frames", logger.InfoLevel)
//	err = mock.Unmock() // fails if any recorded call was not checked
//
// The package initializes a default Registry (console handler on
// stdout) in init(); the package-level functions Info, Errorf, etc.
// delegate to its "default" logger, so simple programs can log without
// any setup.
package logger
