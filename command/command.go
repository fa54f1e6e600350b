// Package command provides the framework's unit-of-work abstraction and the
// Buffer, a FIFO queue that drains commands one at a time.
//
// A Command starts via Execute and reports completion through a multicast
// signal rather than a return value, which lets a command represent
// asynchronous work (a timer, a network call, a nested buffer) without the
// caller polling or blocking.
package command

import (
	"sync"

	"github.com/sequent-tools/sequent/lifecycle"
	"github.com/sequent-tools/sequent/signal"
)

// Command is a self-contained, asynchronously-completable unit of work.
//
// Execute is only valid from StateReady and returns *InvalidStateError
// otherwise. The completion signal fires at most once per Execute, with the
// command itself as payload, and never fires after disposal.
type Command interface {
	lifecycle.Disposable

	// Execute starts the work. The command must eventually complete,
	// either synchronously before Execute returns or later from whatever
	// goroutine its asynchronous work runs on.
	Execute() error

	// State returns the current execution state.
	State() State

	// OnCompleted subscribes fn to the completion signal.
	OnCompleted(fn func(Command)) (signal.Token, error)

	// RemoveCompleted removes a completion subscription.
	RemoveCompleted(tok signal.Token)
}

// Core is the embeddable base for concrete commands. It carries the state
// machine, the completion signal, and the disposal plumbing; the embedding
// type supplies Execute and calls Begin and Complete around its work.
//
// Constructors must call Bind with the outer command so the completion
// signal carries the right identity:
//
//	func NewSleep(d time.Duration) *Sleep {
//		c := &Sleep{dur: d}
//		c.Bind(c)
//		return c
//	}
type Core struct {
	lifecycle.Base

	stateMu   sync.Mutex
	state     State
	owner     Command
	completed signal.Signal[Command]
}

// Bind wires the outer command as the completion payload and hooks state
// and listener teardown into disposal. Call once, from the constructor.
func (c *Core) Bind(owner Command) {
	c.stateMu.Lock()
	c.owner = owner
	c.stateMu.Unlock()
	c.OnDispose(c.release)
}

func (c *Core) release() {
	c.stateMu.Lock()
	c.state = StateDisposed
	c.stateMu.Unlock()
	c.completed.Clear()
}

// State returns the current execution state.
func (c *Core) State() State {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.state
}

// Begin transitions StateReady to StateExecuting. Any other starting state
// is a caller contract violation and yields *InvalidStateError.
func (c *Core) Begin() error {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	if c.state != StateReady {
		return &InvalidStateError{Op: "execute", State: c.state}
	}
	c.state = StateExecuting
	return nil
}

// Complete transitions StateExecuting to StateCompleted and fires the
// completion signal with the bound owner. Firing twice per Execute is
// forbidden by contract; after disposal Complete does nothing.
func (c *Core) Complete() {
	c.stateMu.Lock()
	if c.state != StateExecuting {
		c.stateMu.Unlock()
		return
	}
	c.state = StateCompleted
	owner := c.owner
	c.stateMu.Unlock()
	c.completed.Emit(owner)
}

// OnCompleted subscribes fn to the completion signal.
func (c *Core) OnCompleted(fn func(Command)) (signal.Token, error) {
	return c.completed.Subscribe(fn), nil
}

// RemoveCompleted removes a completion subscription.
func (c *Core) RemoveCompleted(tok signal.Token) {
	c.completed.Unsubscribe(tok)
}
