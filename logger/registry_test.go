package logger

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlog-framework/hlog/core"
	"github.com/hlog-framework/hlog/handler"
)

func newTestRegistry(t *testing.T) (*Registry, *handler.Handler, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := handler.New(handler.Config{
		Name: "display",
		Sink: handler.NewConsoleSink(handler.ConsoleConfig{Writer: &buf}),
	})
	r := NewRegistry(
		WithHandlers(h),
		WithClock(core.NewSimClock(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))),
	)
	return r, h, &buf
}

func TestRegistry_PreCreatedLoggers(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	require.NotNil(t, r.Root())
	assert.Equal(t, "", r.Root().FullName())
	assert.Nil(t, r.Root().Parent())

	require.NotNil(t, r.DefaultLogger())
	assert.Equal(t, "default", r.DefaultLogger().FullName())
	assert.Same(t, r.Root(), r.DefaultLogger().Parent())
}

func TestRegistry_GetLoggerIdempotent(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	a := r.GetLogger("uart")
	b := r.GetLogger("uart")
	assert.Same(t, a, b)

	rx := r.GetLogger("uart:rx")
	assert.Same(t, rx, a.GetLogger("rx"))
	assert.Same(t, rx, r.GetLogger("uart:rx"))

	assert.Equal(t, "uart:rx", rx.FullName())
	assert.Equal(t, "rx", rx.Name())
	assert.Same(t, a, rx.Parent())
}

func TestRegistry_GetLoggerCreatesIntermediates(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	deep := r.GetLogger("a:b:c")
	assert.Equal(t, "a:b:c", deep.FullName())
	assert.Equal(t, "a:b", deep.Parent().FullName())
	assert.Equal(t, "a", deep.Parent().Parent().FullName())
	assert.Same(t, r.Root(), deep.Parent().Parent().Parent())
}

func TestRegistry_GetLoggerEmptyName(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	assert.Same(t, r.Root(), r.GetLogger(""))
	assert.Panics(t, func() { r.GetLogger("a::b") })
}

func TestLogger_TreeNavigation(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	parent := r.GetLogger("axi")
	first := parent.GetLogger("tx")
	second := parent.GetLogger("rx")

	assert.Equal(t, 2, parent.NumChildren())

	got, err := parent.Child(0)
	require.NoError(t, err)
	assert.Same(t, first, got)

	got, err = parent.Child(1)
	require.NoError(t, err)
	assert.Same(t, second, got)

	_, err = parent.Child(2)
	var idxErr *IndexError
	require.ErrorAs(t, err, &idxErr)
	assert.Equal(t, 2, idxErr.Index)
	assert.Equal(t, 2, idxErr.Len)

	_, err = parent.Child(-1)
	assert.Error(t, err)
}

func TestLogger_HandlerIndex(t *testing.T) {
	r, h, _ := newTestRegistry(t)

	l := r.GetLogger("tb")
	got, err := l.Handler(0)
	require.NoError(t, err)
	assert.Same(t, h, got)

	_, err = l.Handler(1)
	var idxErr *IndexError
	assert.ErrorAs(t, err, &idxErr)
}

func TestRegistry_FinalCheckClean(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	r.GetLogger("tb").Info("all fine")
	assert.NoError(t, r.FinalCheck())
}

func TestRegistry_FinalCheckLeakedMock(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	l := r.GetLogger("tb")
	require.NoError(t, l.Mock())
	l.Info("recorded but never checked")

	err := r.FinalCheck()
	var unchecked *UncheckedLogsError
	require.ErrorAs(t, err, &unchecked)
	assert.Equal(t, "tb", unchecked.Logger)
	assert.Equal(t, 1, unchecked.Pending)
}

func TestRegistry_FinalCheckErrorsLogged(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	r.GetLogger("tb").Error("boom")
	err := r.FinalCheck()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"tb"`)
}
