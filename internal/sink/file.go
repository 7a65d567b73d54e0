package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"leo/internal/hierarchy"
	"leo/internal/logging"
)

// FileSink appends JSON lines to a file. Each write holds an advisory lock on
// path+".lock" so several processes can share one log file.
type FileSink struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	lock    *flock.Flock
	buf     bytes.Buffer
	encoder *HandlerSink
}

// OpenFile opens (creating as needed) the log file at path.
func OpenFile(path string, levels hierarchy.Levels) (*FileSink, error) {
	if path == "" {
		return nil, errors.New("file sink: path must be set")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("file sink: create dir: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("file sink: open %s: %w", path, err)
	}
	s := &FileSink{
		path: path,
		file: file,
		lock: flock.New(path + ".lock"),
	}
	h, err := logging.NewHandler(&s.buf, "json", slog.LevelDebug)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	s.encoder = NewHandlerSink(h, levels, nil)
	return s, nil
}

func buildFile(spec hierarchy.SinkSpec) (hierarchy.Sink, error) {
	return OpenFile(spec.Config.String("path", ""), spec.Levels)
}

// Path returns the file path.
func (s *FileSink) Path() string { return s.path }

// Write implements hierarchy.Sink.
func (s *FileSink) Write(ctx context.Context, rec hierarchy.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return os.ErrClosed
	}

	s.buf.Reset()
	if err := s.encoder.Write(ctx, rec); err != nil {
		return err
	}
	if s.buf.Len() == 0 {
		return nil
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("file sink: lock %s: %w", s.path, err)
	}
	defer func() { _ = s.lock.Unlock() }()
	_, err := s.file.Write(s.buf.Bytes())
	return err
}

// Close closes the file. Further writes fail with os.ErrClosed.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	_ = s.lock.Close()
	return err
}
