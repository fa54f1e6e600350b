// Package logging implements the framework's pluggable log dispatcher.
//
// A Dispatcher fans formatted entries out to any number of Targets, each
// with its own minimum level. Logging is diagnostic narration only and is
// fire-and-forget: a Target that fails must deal with that itself and must
// never feed errors back into control flow.
package logging

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Entry is one log record handed to every interested Target.
type Entry struct {
	Level   Level
	Time    time.Time
	Source  string // caller as "file.go:line"
	Message string
}

// Target consumes log entries. Implementations must be safe for concurrent
// use.
type Target interface {
	Log(Entry)
}

type boundTarget struct {
	target Target
	min    Level
}

// Dispatcher routes entries to registered targets. The zero value is a
// valid dispatcher with no targets; a nil *Dispatcher discards everything.
type Dispatcher struct {
	mu      sync.RWMutex
	targets []boundTarget
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// AddTarget registers t to receive entries at or above min.
// Adding the same target twice delivers entries twice.
func (d *Dispatcher) AddTarget(t Target, min Level) {
	if d == nil || t == nil {
		return
	}
	d.mu.Lock()
	d.targets = append(d.targets, boundTarget{target: t, min: min})
	d.mu.Unlock()
}

// RemoveTarget removes every registration of t.
func (d *Dispatcher) RemoveTarget(t Target) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	kept := d.targets[:0]
	for _, bt := range d.targets {
		if bt.target != t {
			kept = append(kept, bt)
		}
	}
	d.targets = kept
}

// Debugf logs a formatted debug message.
func (d *Dispatcher) Debugf(format string, args ...any) {
	d.logf(LevelDebug, 2, format, args...)
}

// Warningf logs a formatted warning message.
func (d *Dispatcher) Warningf(format string, args ...any) {
	d.logf(LevelWarning, 2, format, args...)
}

// Errorf logs a formatted error message.
func (d *Dispatcher) Errorf(format string, args ...any) {
	d.logf(LevelError, 2, format, args...)
}

func (d *Dispatcher) logf(level Level, skip int, format string, args ...any) {
	if d == nil {
		return
	}
	d.mu.RLock()
	if len(d.targets) == 0 {
		d.mu.RUnlock()
		return
	}
	snapshot := make([]boundTarget, len(d.targets))
	copy(snapshot, d.targets)
	d.mu.RUnlock()

	e := Entry{
		Level:   level,
		Time:    time.Now(),
		Source:  callerSource(skip + 1),
		Message: fmt.Sprintf(format, args...),
	}
	for _, bt := range snapshot {
		if level >= bt.min {
			bt.target.Log(e)
		}
	}
}

func callerSource(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// FormatEntry renders an entry the way the writer and file targets do:
//
//	[2006-01-02 15:04:05] LEVEL source: message
func FormatEntry(e Entry) string {
	return fmt.Sprintf("[%s] %s %s: %s\n",
		e.Time.Format("2006-01-02 15:04:05"), e.Level, e.Source, e.Message)
}

var (
	defaultDispatcher   = NewDispatcher()
	defaultDispatcherMu sync.RWMutex
)

// Default returns the process-wide dispatcher used by the package-level
// logging functions.
func Default() *Dispatcher {
	defaultDispatcherMu.RLock()
	defer defaultDispatcherMu.RUnlock()
	return defaultDispatcher
}

// SetDefault replaces the process-wide dispatcher. Passing nil silences the
// package-level functions.
func SetDefault(d *Dispatcher) {
	defaultDispatcherMu.Lock()
	defaultDispatcher = d
	defaultDispatcherMu.Unlock()
}

// Debugf logs a debug message through the default dispatcher.
func Debugf(format string, args ...any) {
	Default().logf(LevelDebug, 2, format, args...)
}

// Warningf logs a warning through the default dispatcher.
func Warningf(format string, args ...any) {
	Default().logf(LevelWarning, 2, format, args...)
}

// Errorf logs an error through the default dispatcher.
func Errorf(format string, args ...any) {
	Default().logf(LevelError, 2, format, args...)
}
