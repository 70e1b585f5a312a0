// Package formatter defines how log records are serialized into bytes.
//
// It exposes two interfaces: Formatter, which returns a []byte, and
// WriterFormatter, which writes directly to an io.Writer. Sinks that
// own a writer check for WriterFormatter and prefer it when available,
// eliminating the intermediate byte slice allocation on the write path.
//
// Three formatters ship with the package: TextFormatter produces the
// human-readable "time - logger - LEVEL - message" layout, CSVFormatter
// produces one machine-readable row per record, and JSONFormatter
// produces one JSON object per record. All three use a pooled
// bytes.Buffer internally and rely on Go's Append-style functions
// (time.AppendFormat, strconv.AppendInt) to avoid per-call allocations.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
