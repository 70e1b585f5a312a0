package handler

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/hlog-framework/hlog/core"
	"github.com/hlog-framework/hlog/formatter"
)

func sampleRecord(level core.Level, msg string) core.Record {
	return core.Record{
		Logger:  "tb",
		Level:   level,
		Message: msg,
		Time:    time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
	}
}

func TestHandler_Defaults(t *testing.T) {
	h := New(Config{Name: "display", Sink: NewConsoleSink(ConsoleConfig{Writer: &bytes.Buffer{}})})

	if h.Name() != "display" {
		t.Errorf("Name() = %q", h.Name())
	}
	if h.DefaultLevel() != core.TraceLevel {
		t.Errorf("DefaultLevel() = %s, want TRACE", h.DefaultLevel())
	}
	if !h.DefaultBlockFilter().Empty() {
		t.Errorf("DefaultBlockFilter() = %s, want empty", h.DefaultBlockFilter())
	}
}

func TestHandler_DefaultFormatterIncludesLocation(t *testing.T) {
	var buf bytes.Buffer
	h := New(Config{Sink: NewConsoleSink(ConsoleConfig{Writer: &buf})})

	rec := sampleRecord(core.InfoLevel, "frame received")
	rec.File = "decoder.go"
	rec.Line = 42
	if err := h.Emit(rec); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(buf.String(), "(decoder.go:42)") {
		t.Errorf("default formatter dropped the location: %q", buf.String())
	}
}

func TestHandler_AdminSetters(t *testing.T) {
	h := New(Config{Sink: NewConsoleSink(ConsoleConfig{Writer: &bytes.Buffer{}})})

	h.SetDefaultLevel(core.WarningLevel)
	if h.DefaultLevel() != core.WarningLevel {
		t.Errorf("DefaultLevel() = %s after SetDefaultLevel", h.DefaultLevel())
	}

	h.SetDefaultBlockFilter(core.MakeLevelSet(core.DebugLevel))
	if !h.DefaultBlockFilter().Has(core.DebugLevel) {
		t.Error("SetDefaultBlockFilter did not take effect")
	}
}

func TestHandler_Emit(t *testing.T) {
	var buf bytes.Buffer
	h := New(Config{
		Sink:      NewConsoleSink(ConsoleConfig{Writer: &buf}),
		Formatter: formatter.NewTextFormatter(formatter.Config{}),
	})

	if err := h.Emit(sampleRecord(core.InfoLevel, "hello")); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("sink did not receive the line: %q", buf.String())
	}
}

func TestFileSink(t *testing.T) {
	path := t.TempDir() + "/run.log"

	s, err := NewFileSink(FileConfig{Filename: path})
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}

	if err := s.Write(sampleRecord(core.InfoLevel, "x"), []byte("first line\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Append mode keeps the earlier contents
	s, err = NewFileSink(FileConfig{Filename: path, Append: true})
	if err != nil {
		t.Fatalf("NewFileSink append: %v", err)
	}
	if err := s.Write(sampleRecord(core.InfoLevel, "y"), []byte("second line\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := readFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if data != "first line\nsecond line\n" {
		t.Errorf("file contents = %q", data)
	}

	if err := s.Write(sampleRecord(core.InfoLevel, "z"), []byte("late\n")); err == nil {
		t.Error("Write after Close should fail")
	}
}

func TestFileSink_RequiresFilename(t *testing.T) {
	if _, err := NewFileSink(FileConfig{}); err == nil {
		t.Error("expected error for missing filename")
	}
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	return string(data), err
}
