package handler

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hlog-framework/hlog/core"
)

// ZapSink re-emits records into a zapcore.Core, letting an application
// that already runs on zap receive hierarchical-logger output through
// its existing encoders and outputs. The rendered line is ignored; the
// record's raw fields feed the zap entry instead.
type ZapSink struct {
	core zapcore.Core
}

// NewZapSink creates a sink backed by the given zap core
func NewZapSink(zc zapcore.Core) *ZapSink {
	return &ZapSink{core: zc}
}

// Write re-emits the record through the zap core
func (s *ZapSink) Write(rec core.Record, _ []byte) error {
	ent := zapcore.Entry{
		Level:      zapLevel(rec.Level),
		Time:       rec.Time,
		LoggerName: rec.Logger,
		Message:    rec.Message,
	}
	ce := s.core.Check(ent, nil)
	if ce == nil {
		return nil
	}
	ce.Write(
		zap.String("file", rec.File),
		zap.Int("line", rec.Line),
	)
	return nil
}

// Close syncs the zap core
func (s *ZapSink) Close() error {
	return s.core.Sync()
}

// zapLevel maps a core.Level onto zap's scale. Failure maps to zap's
// Error, not Fatal: terminating the run is the stop-level policy's job,
// never the sink's.
func zapLevel(l core.Level) zapcore.Level {
	switch l {
	case core.TraceLevel, core.DebugLevel, core.VerboseLevel:
		return zapcore.DebugLevel
	case core.InfoLevel:
		return zapcore.InfoLevel
	case core.WarningLevel:
		return zapcore.WarnLevel
	case core.ErrorLevel, core.FailureLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
