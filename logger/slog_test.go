package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlog-framework/hlog/core"
)

func TestSlogHandler_ForwardsIntoTree(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	l := r.GetLogger("svc")
	require.NoError(t, l.Mock())

	s := slog.New(NewSlogHandler(l, core.DebugLevel))
	s.Info("ready", "port", 8080)

	require.NoError(t, l.CheckOnlyLog("ready port=8080", core.InfoLevel))
	require.NoError(t, l.Unmock())
}

func TestSlogHandler_LevelMapping(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	l := r.GetLogger("svc")
	require.NoError(t, l.Mock())

	s := slog.New(NewSlogHandler(l, core.TraceLevel))
	s.Debug("d")
	s.Warn("w")
	s.Error("e")

	require.NoError(t, l.CheckLog("d", core.DebugLevel))
	require.NoError(t, l.CheckLog("w", core.WarningLevel))
	require.NoError(t, l.CheckLog("e", core.ErrorLevel))
	require.NoError(t, l.Unmock())
}

func TestSlogHandler_EnabledGate(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	l := r.GetLogger("svc")
	require.NoError(t, l.Mock())

	s := slog.New(NewSlogHandler(l, core.WarningLevel))
	s.Info("dropped before the tree")

	assert.Equal(t, uint64(0), l.MockLogCount())
	require.NoError(t, l.Unmock())
}

func TestSlogHandler_WithAttrs(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	l := r.GetLogger("svc")
	require.NoError(t, l.Mock())

	s := slog.New(NewSlogHandler(l, core.DebugLevel)).With("run", "nightly")
	s.Info("started")

	require.NoError(t, l.CheckOnlyLog("started run=nightly", core.InfoLevel))
	require.NoError(t, l.Unmock())
}
