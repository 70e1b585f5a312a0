package handler

import (
	"fmt"
	"os"
	"sync"

	"github.com/hlog-framework/hlog/core"
)

// FileSink writes formatted lines to a file. Writes are synchronous;
// the file is fsynced on Close. Rotation is out of scope.
type FileSink struct {
	mu   sync.Mutex
	file *os.File
}

// FileConfig holds configuration for a file sink
type FileConfig struct {
	// Filename is the path to the log file (required)
	Filename string
	// Append opens the file in append mode instead of truncating
	Append bool
	// Mode is the permission mode for a newly created file (default: 0644)
	Mode os.FileMode
}

// NewFileSink creates a new file sink
func NewFileSink(cfg FileConfig) (*FileSink, error) {
	if cfg.Filename == "" {
		return nil, fmt.Errorf("filename is required")
	}
	if cfg.Mode == 0 {
		cfg.Mode = 0o644
	}
	flags := os.O_CREATE | os.O_WRONLY
	if cfg.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(cfg.Filename, flags, cfg.Mode)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &FileSink{file: f}, nil
}

// Write delivers one formatted line
func (s *FileSink) Write(_ core.Record, line []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return os.ErrClosed
	}
	_, err := s.file.Write(line)
	return err
}

// Close syncs and closes the file
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	syncErr := s.file.Sync()
	closeErr := s.file.Close()
	s.file = nil
	if syncErr != nil {
		return syncErr
	}
	return closeErr
}
