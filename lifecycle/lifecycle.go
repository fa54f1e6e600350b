// Package lifecycle provides the disposable-object contract shared by the
// rest of the framework: an idempotent Dispose with observable
// disposing/disposed flags and LIFO teardown hooks.
package lifecycle

import "sync"

// Disposable is anything that can release its resources exactly once.
type Disposable interface {
	// Dispose releases resources. Safe to call any number of times;
	// every call after the first is a no-op.
	Dispose()

	// IsDisposed reports whether disposal has finished.
	IsDisposed() bool

	// IsDisposing reports whether disposal is currently in progress.
	IsDisposing() bool
}

// Base is an embeddable Disposable implementation. The zero value is ready
// to use.
type Base struct {
	mu        sync.Mutex
	disposing bool
	disposed  bool
	teardown  []func()
}

// OnDispose registers fn to run during the first Dispose call. Hooks run in
// reverse registration order. Registering after disposal runs fn
// immediately.
func (b *Base) OnDispose(fn func()) {
	b.mu.Lock()
	if b.disposed || b.disposing {
		b.mu.Unlock()
		fn()
		return
	}
	b.teardown = append(b.teardown, fn)
	b.mu.Unlock()
}

// Dispose runs the registered teardown hooks and marks the object disposed.
// Never fails, never panics on redundant calls.
func (b *Base) Dispose() {
	b.mu.Lock()
	if b.disposed || b.disposing {
		b.mu.Unlock()
		return
	}
	b.disposing = true
	hooks := b.teardown
	b.teardown = nil
	b.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}

	b.mu.Lock()
	b.disposing = false
	b.disposed = true
	b.mu.Unlock()
}

// IsDisposed reports whether Dispose has completed.
func (b *Base) IsDisposed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disposed
}

// IsDisposing reports whether Dispose is currently running.
func (b *Base) IsDisposing() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disposing
}

var _ Disposable = (*Base)(nil)
