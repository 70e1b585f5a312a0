package formatter

import (
	"bytes"
	"io"
	"strconv"
	"time"

	"github.com/hlog-framework/hlog/core"
)

// TextFormatter formats log records as human-readable text:
//
//	2024-01-02T15:04:05Z - rx:decoder - WARNING - checksum mismatch
//
// with an optional (file:line) suffix when IncludeLocation is set.
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	return &TextFormatter{Config: cfg}
}

// Format formats a record as text
func (f *TextFormatter) Format(rec core.Record) []byte {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(rec, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result
}

// FormatTo formats a record and writes it directly to the writer
func (f *TextFormatter) FormatTo(rec core.Record, w io.Writer) error {
	buf := getBuffer()

	f.formatToBuffer(rec, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// pre-formatted level columns, padded to the widest level name
var levelColumns = [core.NumLevels]string{
	core.BelowAllLevel: "BELOW_ALL",
	core.TraceLevel:    "TRACE   ",
	core.DebugLevel:    "DEBUG   ",
	core.VerboseLevel:  "VERBOSE ",
	core.InfoLevel:     "INFO    ",
	core.WarningLevel:  "WARNING ",
	core.ErrorLevel:    "ERROR   ",
	core.FailureLevel:  "FAILURE ",
	core.AboveAllLevel: "ABOVE_ALL",
}

// formatToBuffer writes the formatted record into the given buffer
func (f *TextFormatter) formatToBuffer(rec core.Record, buf *bytes.Buffer) {
	// Timestamp - use AppendFormat to avoid string allocation
	buf.Write(rec.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))

	buf.WriteString(" - ")
	buf.WriteString(rec.Logger)
	buf.WriteString(" - ")

	if int(rec.Level) < len(levelColumns) && rec.Level >= 0 {
		buf.WriteString(levelColumns[rec.Level])
	} else {
		buf.WriteString("UNKNOWN ")
	}

	buf.WriteString("- ")
	buf.WriteString(rec.Message)

	if f.IncludeLocation && rec.File != "" {
		buf.WriteString(" (")
		buf.WriteString(rec.File)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(rec.Line))
		buf.WriteByte(')')
	}

	buf.WriteByte('\n')
}
