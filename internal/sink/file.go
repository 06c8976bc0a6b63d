package sink

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// FileSink appends visited URLs to a text file, one per line.
type FileSink struct {
	// file is the underlying append-only file handle.
	file *os.File

	// writer buffers line writes; flushed after every record so an
	// interrupted crawl loses at most the line being written.
	writer *bufio.Writer

	closed bool
}

// NewFileSink opens (or creates) the output file in append mode,
// creating parent directories as needed.
func NewFileSink(path string) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // crawl output is not sensitive
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}

	return &FileSink{
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

// Record appends url followed by a newline and flushes.
func (s *FileSink) Record(url string) error {
	if s.closed {
		return fmt.Errorf("record %q: sink is closed", url)
	}
	if _, err := s.writer.WriteString(url + "\n"); err != nil {
		return fmt.Errorf("failed to record %q: %w", url, err)
	}
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush record %q: %w", url, err)
	}
	return nil
}

// Close flushes remaining output and closes the file.
func (s *FileSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.writer.Flush(); err != nil {
		_ = s.file.Close()
		return fmt.Errorf("failed to flush output file: %w", err)
	}
	return s.file.Close()
}
