// Package handler provides the named sink identities that loggers write
// to and the Sink implementations behind them.
//
// A Handler pairs a name with the default enabled-level threshold and
// default block-filter set that apply wherever a logger carries no
// explicit override for it, plus the formatter that renders records
// into lines. The filtering decision itself happens in the logger
// package; by the time Emit is called the record has already passed.
//
// Sinks are the external write collaborators:
//
//   - ConsoleSink writes lines to any io.Writer (default: stdout),
//     either synchronously or through a bounded async queue.
//   - FileSink writes lines to a file, truncate or append mode, fsync
//     on Close. Rotation is out of scope.
//   - ZapSink re-emits records into a zapcore.Core so applications
//     already running on zap keep a single output pipeline.
//
// When an async queue is full, ConsoleSink applies a per-level
// OverflowPolicy: DropNewest (default below error), DropOldest, or
// Block with a configurable timeout (default for error and failure).
// Dropped, blocked, and processed counts are tracked in Stats and can
// be queried at runtime.
package handler
