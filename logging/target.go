package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// WriterTarget writes formatted entries to an io.Writer, one line per entry.
type WriterTarget struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterTarget returns a target writing to w.
func NewWriterTarget(w io.Writer) *WriterTarget {
	return &WriterTarget{w: w}
}

func (t *WriterTarget) Log(e Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := io.WriteString(t.w, FormatEntry(e)); err != nil && e.Level >= LevelError {
		// Can't write the log line; surface error-level losses on stderr.
		fmt.Fprintf(os.Stderr, "logging: write failed: %v (message: %s)\n", err, e.Message)
	}
}

// FileTarget appends formatted entries to a log file with restrictive
// permissions (directory 0700, file 0600).
type FileTarget struct {
	WriterTarget
	file *os.File
}

// NewFileTarget opens (or creates) the log file at path.
// Existing files with loose permissions are tightened before use.
func NewFileTarget(path string) (*FileTarget, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	if info, err := os.Stat(path); err == nil {
		if info.Mode().Perm() != 0600 {
			if err := os.Chmod(path, 0600); err != nil {
				return nil, fmt.Errorf("chmod existing log file: %w", err)
			}
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &FileTarget{WriterTarget: WriterTarget{w: file}, file: file}, nil
}

// Close closes the underlying file. Safe on a nil target.
func (t *FileTarget) Close() error {
	if t == nil || t.file == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.file.Close()
}

// NopTarget discards all entries. Useful for tests and disabled logging.
type NopTarget struct{}

func (NopTarget) Log(Entry) {}
