package formatter

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hlog-framework/hlog/core"
)

// CSVFormatter formats log records as one machine-readable CSV row per
// record: time,logger,level,file,line,message. Fields containing a
// comma, quote or newline are quoted.
type CSVFormatter struct {
	Config
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(cfg Config) *CSVFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339Nano
	}
	return &CSVFormatter{Config: cfg}
}

// Format formats a record as a CSV row
func (f *CSVFormatter) Format(rec core.Record) []byte {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(rec, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result
}

// FormatTo formats a record and writes it directly to the writer
func (f *CSVFormatter) FormatTo(rec core.Record, w io.Writer) error {
	buf := getBuffer()

	f.formatToBuffer(rec, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

func (f *CSVFormatter) formatToBuffer(rec core.Record, buf *bytes.Buffer) {
	buf.Write(rec.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
	buf.WriteByte(',')
	appendCSVField(buf, rec.Logger)
	buf.WriteByte(',')
	buf.WriteString(rec.Level.String())
	buf.WriteByte(',')
	appendCSVField(buf, rec.File)
	buf.WriteByte(',')
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(rec.Line), 10))
	buf.WriteByte(',')
	appendCSVField(buf, rec.Message)
	buf.WriteByte('\n')
}

// appendCSVField writes s, quoting it only when it contains a separator,
// quote or line break
func appendCSVField(buf *bytes.Buffer, s string) {
	if !strings.ContainsAny(s, ",\"\r\n") {
		buf.WriteString(s)
		return
	}
	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			buf.WriteString(`""`)
		} else {
			buf.WriteByte(s[i])
		}
	}
	buf.WriteByte('"')
}
