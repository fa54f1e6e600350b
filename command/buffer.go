package command

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sequent-tools/sequent/logging"
	"github.com/sequent-tools/sequent/signal"
)

// IdleNotifier is implemented by never-completing commands (buffers) that
// signal drained-to-empty instead of completion.
type IdleNotifier interface {
	OnIdle(fn func(*Buffer)) signal.Token
	RemoveIdle(tok signal.Token)
}

// Buffer is a FIFO command queue that drains its children serially: at most
// one child executes at any time, and insertion order is execution order.
//
// A Buffer is itself a Command and can be nested as a child of another
// buffer, but it never reaches a completed state; it signals OnIdle each
// time it drains to empty and keeps accepting children indefinitely.
// AddChild and completion callbacks may arrive from different goroutines;
// the buffer serializes them internally.
type Buffer struct {
	Core

	mu          sync.Mutex
	children    []Command
	current     Command
	unsubscribe func()
	idle        signal.Signal[*Buffer]
}

// NewBuffer constructs a buffer, optionally pre-seeded with children.
// Execution does not start until Execute is called.
func NewBuffer(children ...Command) *Buffer {
	b := &Buffer{}
	b.Bind(b)
	b.OnDispose(b.releaseChildren)
	for _, c := range children {
		if c != nil {
			b.children = append(b.children, c)
		}
	}
	return b
}

// AddChild appends c to the tail and returns the buffer for chaining. If
// the buffer is executing and c is the only child, c dispatches
// immediately; otherwise it waits its turn. c's own state is not checked
// here; it must be ready by the time it is dispatched.
func (b *Buffer) AddChild(c Command) *Buffer {
	if c == nil {
		return b
	}
	b.mu.Lock()
	b.children = append(b.children, c)
	var head Command
	if b.State() == StateExecuting && b.current == nil && len(b.children) == 1 {
		head = b.armHeadLocked()
	}
	b.mu.Unlock()
	if head != nil {
		b.runHead(head)
	}
	return b
}

// AddChildren appends each command in order, with AddChild's
// dispatch-on-empty rule applied per element: on an idle executing buffer
// only the first element triggers dispatch.
func (b *Buffer) AddChildren(commands ...Command) *Buffer {
	for _, c := range commands {
		b.AddChild(c)
	}
	return b
}

// Execute transitions the buffer from Ready to Executing and, if children
// are queued, dispatches the head. An empty buffer stays executing-and-idle
// until a child arrives; no idle signal fires for a buffer that starts and
// stays empty.
func (b *Buffer) Execute() error {
	if err := b.Begin(); err != nil {
		return err
	}
	b.mu.Lock()
	if len(b.children) == 0 || b.current != nil {
		b.mu.Unlock()
		return nil
	}
	head := b.armHeadLocked()
	b.mu.Unlock()
	b.runHead(head)
	return nil
}

// OnIdle subscribes fn to the idle signal, fired each time the buffer
// transitions from executing a child to having none queued.
func (b *Buffer) OnIdle(fn func(*Buffer)) signal.Token {
	return b.idle.Subscribe(fn)
}

// RemoveIdle removes an idle subscription.
func (b *Buffer) RemoveIdle(tok signal.Token) {
	b.idle.Unsubscribe(tok)
}

// OnCompleted always fails: a buffer never completes. See ErrNeverCompletes.
func (b *Buffer) OnCompleted(func(Command)) (signal.Token, error) {
	return "", ErrNeverCompletes
}

// Clear disposes every queued child, including the in-flight one, and
// empties the buffer. Clearing is a deliberate reset: the idle signal does
// not fire. Safe to call redundantly.
func (b *Buffer) Clear() {
	b.mu.Lock()
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
	children := b.children
	b.children = nil
	b.current = nil
	b.mu.Unlock()

	for _, c := range children {
		c.Dispose()
	}
}

// Len returns the number of queued children, including the executing one.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.children)
}

// Current returns the child currently executing, or nil.
func (b *Buffer) Current() Command {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// releaseChildren runs during disposal, before Core teardown.
func (b *Buffer) releaseChildren() {
	b.Clear()
	b.idle.Clear()
}

// armHeadLocked marks the head as current and subscribes to its
// advancement signal. Callers hold b.mu, release it, then pass the
// returned head to runHead. For a nested buffer child the subscription
// rides the child's idle signal, since buffers never complete; the outer
// buffer advances when the inner one drains.
func (b *Buffer) armHeadLocked() Command {
	head := b.children[0]
	b.current = head

	tok, err := head.OnCompleted(b.childCompleted)
	switch {
	case err == nil:
		b.unsubscribe = func() { head.RemoveCompleted(tok) }
	case errors.Is(err, ErrNeverCompletes):
		if nested, ok := head.(IdleNotifier); ok {
			idleTok := nested.OnIdle(func(inner *Buffer) { b.childCompleted(inner) })
			b.unsubscribe = func() { nested.RemoveIdle(idleTok) }
			break
		}
		fallthrough
	default:
		logging.Errorf("buffer: cannot observe %s: %v", describe(head), err)
		b.unsubscribe = nil
	}
	return head
}

// runHead starts the armed head outside the buffer lock, since a
// synchronous command completes (and re-enters the buffer) before Execute
// returns. A child whose Execute fails stalls the buffer; the error is a
// caller contract violation, not something the buffer can recover.
func (b *Buffer) runHead(head Command) {
	logging.Debugf("buffer: dispatch %s", describe(head))
	if err := head.Execute(); err != nil {
		logging.Errorf("buffer: %s failed to start: %v", describe(head), err)
	}
}

// childCompleted advances the queue when the current child reports done.
func (b *Buffer) childCompleted(c Command) {
	b.mu.Lock()
	if b.current == nil || len(b.children) == 0 {
		// Cleared or disposed while the completion was in flight.
		b.mu.Unlock()
		return
	}
	head := b.children[0]
	if c != nil && c != head {
		// Completion identity does not match the head. FIFO order is
		// trusted; the pop proceeds against the head regardless.
		logging.Warningf("buffer: completion from %s does not match head %s", describe(c), describe(head))
	}
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
	b.children = b.children[1:]
	b.current = nil

	if len(b.children) > 0 {
		next := b.armHeadLocked()
		b.mu.Unlock()
		b.runHead(next)
		return
	}
	b.mu.Unlock()

	logging.Debugf("buffer: drained, idle")
	b.idle.Emit(b)
}

func describe(c Command) string {
	if n, ok := c.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", c)
}

var (
	_ Command      = (*Buffer)(nil)
	_ IdleNotifier = (*Buffer)(nil)
)
