package handler

import (
	"sync/atomic"

	"github.com/hlog-framework/hlog/core"
)

// OverflowPolicy defines how to handle full async queues
type OverflowPolicy int

const (
	// DropNewest drops the newest log line when the queue is full
	DropNewest OverflowPolicy = iota
	// DropOldest drops the oldest log line when the queue is full
	DropOldest
	// Block blocks the caller until space is available (with timeout)
	Block
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// DefaultLevelPolicy returns the default level-based overflow policies.
// Everything below error is droppable; errors and failures block for a
// bounded time rather than disappear.
func DefaultLevelPolicy() map[core.Level]OverflowPolicy {
	return map[core.Level]OverflowPolicy{
		core.TraceLevel:   DropNewest,
		core.DebugLevel:   DropNewest,
		core.VerboseLevel: DropNewest,
		core.InfoLevel:    DropNewest,
		core.WarningLevel: DropNewest,
		core.ErrorLevel:   Block,
		core.FailureLevel: Block,
	}
}

// Stats tracks sink statistics
type Stats struct {
	// dropped counts per level, indexed by core.Level
	dropped [core.NumLevels]uint64
	// blockedTotal counts times a write blocked due to a full queue
	blockedTotal uint64
	// processedTotal counts total processed lines
	processedTotal uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementDropped atomically increments the dropped counter for a level
func (s *Stats) IncrementDropped(level core.Level) {
	if level < 0 || int(level) >= core.NumLevels {
		return
	}
	atomic.AddUint64(&s.dropped[level], 1)
}

// IncrementBlocked atomically increments the blocked counter
func (s *Stats) IncrementBlocked() {
	atomic.AddUint64(&s.blockedTotal, 1)
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	atomic.AddUint64(&s.processedTotal, 1)
}

// GetDropped returns the dropped count for a level
func (s *Stats) GetDropped(level core.Level) uint64 {
	if level < 0 || int(level) >= core.NumLevels {
		return 0
	}
	return atomic.LoadUint64(&s.dropped[level])
}

// GetBlocked returns the blocked count
func (s *Stats) GetBlocked() uint64 {
	return atomic.LoadUint64(&s.blockedTotal)
}

// GetProcessed returns the processed count
func (s *Stats) GetProcessed() uint64 {
	return atomic.LoadUint64(&s.processedTotal)
}

// GetTotalDropped returns the total dropped across all levels
func (s *Stats) GetTotalDropped() uint64 {
	var total uint64
	for i := range s.dropped {
		total += atomic.LoadUint64(&s.dropped[i])
	}
	return total
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	for i := range s.dropped {
		atomic.StoreUint64(&s.dropped[i], 0)
	}
	atomic.StoreUint64(&s.blockedTotal, 0)
	atomic.StoreUint64(&s.processedTotal, 0)
}

// Snapshot is a point-in-time copy of sink statistics
type Snapshot struct {
	Dropped        map[core.Level]uint64
	BlockedTotal   uint64
	ProcessedTotal uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	dropped := make(map[core.Level]uint64, core.NumLevels)
	for l := core.TraceLevel; l <= core.FailureLevel; l++ {
		dropped[l] = s.GetDropped(l)
	}
	return Snapshot{
		Dropped:        dropped,
		BlockedTotal:   s.GetBlocked(),
		ProcessedTotal: s.GetProcessed(),
	}
}
