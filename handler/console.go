package handler

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/hlog-framework/hlog/core"
)

// queued is one formatted line waiting in an async queue. The level
// travels with it so overflow policies and drop stats stay level-aware.
type queued struct {
	level core.Level
	line  []byte
}

// ConsoleSink writes formatted lines to an io.Writer, by default stdout.
// In async mode lines are queued and written by a background goroutine.
type ConsoleSink struct {
	writer         io.Writer
	async          bool
	queue          chan queued
	wg             sync.WaitGroup
	closed         chan struct{}
	mu             sync.Mutex
	overflowPolicy map[core.Level]OverflowPolicy
	blockTimeout   time.Duration
	stats          *Stats
	drainTimeout   time.Duration
	blockTimer     *time.Timer
}

// ConsoleConfig holds configuration for a console sink
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Async enables asynchronous writes (default: false)
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: DefaultLevelPolicy)
	OverflowPolicy map[core.Level]OverflowPolicy
	// BlockTimeout is the timeout for the blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining the queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// NewConsoleSink creates a new console sink
func NewConsoleSink(cfg ConsoleConfig) *ConsoleSink {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}
	if cfg.OverflowPolicy == nil {
		cfg.OverflowPolicy = DefaultLevelPolicy()
	}
	if cfg.BlockTimeout == 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 5 * time.Second
	}

	s := &ConsoleSink{
		writer:         cfg.Writer,
		async:          cfg.Async,
		closed:         make(chan struct{}),
		overflowPolicy: cfg.OverflowPolicy,
		blockTimeout:   cfg.BlockTimeout,
		stats:          NewStats(),
		drainTimeout:   cfg.DrainTimeout,
		blockTimer:     newStoppedTimer(),
	}

	if s.async {
		s.queue = make(chan queued, cfg.BufferSize)
		s.wg.Add(1)
		go s.process()
	}

	return s
}

// Write delivers one formatted line
func (s *ConsoleSink) Write(rec core.Record, line []byte) error {
	if !s.async {
		return s.write(line)
	}

	q := queued{level: rec.Level, line: line}

	policy, ok := s.overflowPolicy[rec.Level]
	if !ok {
		policy = DropNewest
	}

	switch policy {
	case Block:
		select {
		case s.queue <- q:
			return nil
		default:
			// Queue full, use the reusable timer for the timeout
			if !s.blockTimer.Stop() {
				select {
				case <-s.blockTimer.C:
				default:
				}
			}
			s.blockTimer.Reset(s.blockTimeout)
			select {
			case s.queue <- q:
				if !s.blockTimer.Stop() {
					select {
					case <-s.blockTimer.C:
					default:
					}
				}
				return nil
			case <-s.blockTimer.C:
				// Timeout - fall back to a synchronous write
				s.stats.IncrementBlocked()
				return s.write(line)
			case <-s.closed:
				// Sink is closing, write synchronously
				if !s.blockTimer.Stop() {
					select {
					case <-s.blockTimer.C:
					default:
					}
				}
				return s.write(line)
			}
		}

	case DropOldest:
		select {
		case s.queue <- q:
			return nil
		default:
			// Queue full - try to drop the oldest
			select {
			case old := <-s.queue:
				s.stats.IncrementDropped(old.level)
			default:
			}
			select {
			case s.queue <- q:
				return nil
			default:
				// Still full, drop this one
				s.stats.IncrementDropped(rec.Level)
				return nil
			}
		}

	case DropNewest:
		fallthrough
	default:
		select {
		case s.queue <- q:
			return nil
		default:
			s.stats.IncrementDropped(rec.Level)
			return nil
		}
	}
}

// write writes one line under the writer lock
func (s *ConsoleSink) write(line []byte) error {
	s.mu.Lock()
	_, err := s.writer.Write(line)
	s.mu.Unlock()
	if err == nil {
		s.stats.IncrementProcessed()
	}
	return err
}

// process handles async writes
func (s *ConsoleSink) process() {
	defer s.wg.Done()

	for {
		select {
		case q := <-s.queue:
			if err := s.write(q.line); err != nil {
				return
			}
		case <-s.closed:
			// Drain remaining lines with a timeout
			deadline := time.After(s.drainTimeout)
		drainLoop:
			for {
				select {
				case q := <-s.queue:
					if err := s.write(q.line); err != nil {
						return
					}
				case <-deadline:
					break drainLoop
				default:
					// Queue empty
					break drainLoop
				}
			}
			return
		}
	}
}

// Stats returns a snapshot of the current statistics
func (s *ConsoleSink) Stats() Snapshot {
	return s.stats.GetSnapshot()
}

// Close closes the sink
func (s *ConsoleSink) Close() error {
	select {
	case <-s.closed:
		return nil // Already closed
	default:
	}

	if s.async {
		close(s.closed)
		s.wg.Wait()

		s.mu.Lock()
		close(s.queue)
		s.mu.Unlock()
	}
	return nil
}

// newStoppedTimer returns a timer that is not running and whose channel
// is empty, ready for Reset.
func newStoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	if !t.Stop() {
		<-t.C
	}
	return t
}
