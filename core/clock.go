package core

import (
	"sync"
	"sync/atomic"
	"time"
	"unsafe"
)

// Clock supplies the timestamp attached to each record. The logging core
// treats the value as opaque; it is only compared when a time-checked
// mock assertion asks for it.
type Clock interface {
	Now() time.Time
}

var (
	coarseClockOnce sync.Once
	coarseNow       unsafe.Pointer // *time.Time
)

// startCoarseClock starts the background goroutine that caches
// time.Now() every 500µs. It is safe to call multiple times; the
// goroutine is started exactly once. The goroutine runs for the
// lifetime of the process; this is intentional because logging
// typically spans the entire application lifecycle.
func startCoarseClock() {
	coarseClockOnce.Do(func() {
		t := time.Now()
		atomic.StorePointer(&coarseNow, unsafe.Pointer(&t))
		go func() {
			ticker := time.NewTicker(500 * time.Microsecond)
			for range ticker.C {
				t := time.Now()
				atomic.StorePointer(&coarseNow, unsafe.Pointer(&t))
			}
		}()
	})
}

// WallClock is a Clock backed by a coarse cached wall clock. Reading it
// is a single atomic load; the cached value is refreshed every 500µs.
type WallClock struct{}

// NewWallClock starts the coarse clock if needed and returns a WallClock.
func NewWallClock() WallClock {
	startCoarseClock()
	return WallClock{}
}

// Now returns the most recently cached time.Time value. A zero-value
// WallClock starts the coarse clock on first use, so constructing one
// without NewWallClock is safe.
func (WallClock) Now() time.Time {
	p := atomic.LoadPointer(&coarseNow)
	if p == nil {
		startCoarseClock()
		p = atomic.LoadPointer(&coarseNow)
	}
	return *(*time.Time)(p)
}

// SimClock is a manually advanced Clock for simulation-style time. The
// zero value reads as the zero time until Set or Advance is called.
type SimClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewSimClock returns a SimClock starting at the given time
func NewSimClock(start time.Time) *SimClock {
	return &SimClock{now: start}
}

// Now returns the current simulated time
func (c *SimClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the simulated time to t
func (c *SimClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance moves the simulated time forward by d
func (c *SimClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
