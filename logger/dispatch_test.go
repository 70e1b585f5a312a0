package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlog-framework/hlog/core"
	"github.com/hlog-framework/hlog/handler"
)

func newBufferHandler(name string) (*handler.Handler, *bytes.Buffer) {
	var buf bytes.Buffer
	h := handler.New(handler.Config{
		Name: name,
		Sink: handler.NewConsoleSink(handler.ConsoleConfig{Writer: &buf}),
	})
	return h, &buf
}

func TestDispatch_WritesToHandler(t *testing.T) {
	r, _, buf := newTestRegistry(t)

	r.GetLogger("uart:rx").Info("frame received")

	out := buf.String()
	assert.Contains(t, out, "uart:rx")
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "frame received")
	assert.Contains(t, out, "dispatch_test.go")
}

func TestDispatch_ThresholdInheritance(t *testing.T) {
	r, h, buf := newTestRegistry(t)

	parent := r.GetLogger("axi")
	child := parent.GetLogger("rx")

	// Handler default threshold passes everything
	child.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
	buf.Reset()

	// Ancestor-scoped setting reaches descendants without overrides
	parent.SetLogLevel(h, core.WarningLevel)
	child.Debug("filtered")
	assert.Empty(t, buf.String())
	child.Warning("passes")
	assert.Contains(t, buf.String(), "passes")
	buf.Reset()

	// Effective values resolve through the ancestor walk
	assert.Equal(t, core.WarningLevel, child.LogLevel(h))
}

func TestDispatch_ChildOverrideSurvivesAncestorCall(t *testing.T) {
	r, h, buf := newTestRegistry(t)

	parent := r.GetLogger("axi")
	child := parent.GetLogger("rx")

	child.SetLogLevel(h, core.DebugLevel)

	// A later ancestor-scoped call must not clobber the child's own
	// setting...
	parent.SetLogLevel(h, core.ErrorLevel)
	child.Debug("still visible")
	assert.Contains(t, buf.String(), "still visible")
	buf.Reset()

	// ...but a later call scoped directly at the child replaces it
	child.SetLogLevel(h, core.ErrorLevel)
	child.Debug("now filtered")
	assert.Empty(t, buf.String())
}

func TestDispatch_BlockFilterIndependence(t *testing.T) {
	r, h, buf := newTestRegistry(t)

	l := r.GetLogger("tb")
	l.SetLogLevel(h, core.DebugLevel)
	l.SetBlockFilter(h, core.MakeLevelSet(core.WarningLevel))

	l.Warning("blocked")
	assert.Empty(t, buf.String())

	l.Debug("debug ok")
	l.Info("info ok")
	l.Error("error ok")
	out := buf.String()
	assert.Contains(t, out, "debug ok")
	assert.Contains(t, out, "info ok")
	assert.Contains(t, out, "error ok")
}

func TestDispatch_EnableDisableAll(t *testing.T) {
	r, h, buf := newTestRegistry(t)

	l := r.GetLogger("tb")

	l.DisableAll(h)
	l.Failure("silenced")
	assert.Empty(t, buf.String())
	assert.False(t, l.IsEnabled(core.FailureLevel))

	l.EnableAll(h)
	l.Trace("back on")
	assert.Contains(t, buf.String(), "back on")
	assert.True(t, l.IsEnabled(core.TraceLevel))
}

func TestDispatch_IsEnabledMatchesObservedWrites(t *testing.T) {
	r, h, buf := newTestRegistry(t)

	l := r.GetLogger("tb")
	l.SetLogLevel(h, core.InfoLevel)
	l.SetBlockFilter(h, core.MakeLevelSet(core.ErrorLevel))

	for lv := core.TraceLevel; lv <= core.FailureLevel; lv++ {
		buf.Reset()
		l.Log(lv, "probe")
		wrote := strings.Contains(buf.String(), "probe")
		assert.Equal(t, wrote, l.IsEnabled(lv), "level %s", lv)
	}
}

func TestDispatch_CountsOncePerCall(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	second, _ := newBufferHandler("file")
	l := r.GetLogger("tb")
	l.AddHandler(second)
	require.Len(t, l.Handlers(), 2)

	l.ResetLogCount()
	l.Info("a")
	l.Info("b")

	assert.Equal(t, uint64(2), l.LogCount(core.InfoLevel))
	assert.Equal(t, uint64(2), l.LogCount())
}

func TestDispatch_CountsDisabledCalls(t *testing.T) {
	r, h, buf := newTestRegistry(t)

	l := r.GetLogger("tb")
	l.DisableAll(h)
	l.Info("invisible")

	assert.Empty(t, buf.String())
	assert.Equal(t, uint64(1), l.LogCount(core.InfoLevel))
}

func TestDispatch_ResetLogCount(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	l := r.GetLogger("tb")
	l.Info("a")
	l.Warning("b")

	l.ResetLogCount(core.InfoLevel)
	assert.Equal(t, uint64(0), l.LogCount(core.InfoLevel))
	assert.Equal(t, uint64(1), l.LogCount(core.WarningLevel))

	l.ResetLogCount()
	assert.Equal(t, uint64(0), l.LogCount())
}

func TestDispatch_StopLevelAborts(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	exitCode := -1
	oldExit := osExit
	osExit = func(code int) { exitCode = code }
	defer func() { osExit = oldExit }()

	l := r.GetLogger("tb")
	l.SetStopLevel(core.ErrorLevel)

	l.Warning("fine")
	assert.Equal(t, -1, exitCode)

	l.Error("fatal")
	assert.Equal(t, 1, exitCode)
	assert.Equal(t, uint64(1), l.LogCount(core.ErrorLevel), "the fatal call is still counted")
}

func TestDispatch_AbortHook(t *testing.T) {
	var aborted *core.Record
	var buf bytes.Buffer
	h := handler.New(handler.Config{
		Name: "display",
		Sink: handler.NewConsoleSink(handler.ConsoleConfig{Writer: &buf}),
	})
	r := NewRegistry(WithHandlers(h), WithAbortHook(func(rec core.Record) {
		aborted = &rec
	}))

	l := r.GetLogger("tb")
	l.SetStopLevel(core.FailureLevel)
	l.Failure("cannot continue")

	require.NotNil(t, aborted)
	assert.Equal(t, "cannot continue", aborted.Message)
	assert.Equal(t, core.FailureLevel, aborted.Level)
	assert.Contains(t, buf.String(), "cannot continue", "the record is written before the abort")
}

func TestDispatch_StopLevelDefaultDisabled(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	l := r.GetLogger("tb")
	assert.Equal(t, core.AboveAllLevel, l.StopLevel())

	l.SetStopLevel(core.ErrorLevel)
	l.DisableStop()
	assert.Equal(t, core.AboveAllLevel, l.StopLevel())
}

func TestDispatch_SentinelLevelPanics(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	assert.Panics(t, func() { r.GetLogger("tb").Log(core.AboveAllLevel, "nope") })
	assert.Panics(t, func() { r.GetLogger("tb").Log(core.BelowAllLevel, "nope") })
}

func TestDispatch_RecordTimeFromClock(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	clock := core.NewSimClock(start)
	h, _ := newBufferHandler("display")
	r := NewRegistry(WithHandlers(h), WithClock(clock))

	l := r.GetLogger("tb")
	require.NoError(t, l.Mock())

	clock.Advance(125 * time.Millisecond)
	l.Info("stamped")

	require.NoError(t, l.CheckLog("stamped", core.InfoLevel, WithTime(start.Add(125*time.Millisecond))))
	require.NoError(t, l.Unmock())
}
