// Package content provides a small lifecycle controller for displayable
// content: load, show, and hide transitions with sequential event firing.
//
// Transition work runs through an internal command buffer, so asynchronous
// load or show effects serialize like any other command work; calling Show
// right after Load queues the show behind the still-running load.
package content

import (
	"fmt"
	"sync"

	"github.com/sequent-tools/sequent/command"
	"github.com/sequent-tools/sequent/lifecycle"
	"github.com/sequent-tools/sequent/signal"
)

// Phase is the lifecycle phase of a piece of content.
type Phase int

const (
	PhaseUnloaded Phase = iota
	PhaseLoading
	PhaseReady
	PhaseShowing
	PhaseHidden
	PhaseDisposed
)

func (p Phase) String() string {
	switch p {
	case PhaseUnloaded:
		return "UNLOADED"
	case PhaseLoading:
		return "LOADING"
	case PhaseReady:
		return "READY"
	case PhaseShowing:
		return "SHOWING"
	case PhaseHidden:
		return "HIDDEN"
	case PhaseDisposed:
		return "DISPOSED"
	default:
		return "UNKNOWN"
	}
}

// Event identifies a lifecycle notification. Events for one transition fire
// synchronously and in order: the started event, then the finished event
// once the transition's work completes.
type Event int

const (
	EventLoadStarted Event = iota
	EventLoaded
	EventShowStarted
	EventShown
	EventHideStarted
	EventHidden
)

func (e Event) String() string {
	switch e {
	case EventLoadStarted:
		return "LOAD_STARTED"
	case EventLoaded:
		return "LOADED"
	case EventShowStarted:
		return "SHOW_STARTED"
	case EventShown:
		return "SHOWN"
	case EventHideStarted:
		return "HIDE_STARTED"
	case EventHidden:
		return "HIDDEN"
	default:
		return "UNKNOWN"
	}
}

// PhaseError reports a transition requested from a phase that forbids it.
type PhaseError struct {
	Op    string
	Phase Phase
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("content: cannot %s while %s", e.Op, e.Phase)
}

// Hooks carries the optional per-transition work. Each hook receives a done
// callback it must eventually invoke; a nil hook finishes immediately.
type Hooks struct {
	Load func(done func())
	Show func(done func())
	Hide func(done func())
}

// Controller sequences content through its lifecycle phases.
type Controller struct {
	lifecycle.Base

	mu    sync.Mutex
	phase Phase
	// tail is the phase the controller will be in after every queued
	// transition finishes; new transitions validate against it.
	tail   Phase
	hooks  Hooks
	queue  *command.Buffer
	events signal.Signal[Event]
}

// New returns a controller in PhaseUnloaded.
func New(hooks Hooks) *Controller {
	c := &Controller{hooks: hooks, queue: command.NewBuffer()}
	// The queue idles, executing, until transitions arrive.
	_ = c.queue.Execute()
	c.OnDispose(c.release)
	return c
}

func (c *Controller) release() {
	c.queue.Dispose()
	c.events.Clear()
	c.mu.Lock()
	c.phase = PhaseDisposed
	c.tail = PhaseDisposed
	c.mu.Unlock()
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// OnEvent subscribes fn to lifecycle events.
func (c *Controller) OnEvent(fn func(Event)) signal.Token {
	return c.events.Subscribe(fn)
}

// RemoveEvent removes an event subscription.
func (c *Controller) RemoveEvent(tok signal.Token) {
	c.events.Unsubscribe(tok)
}

// Load transitions Unloaded content to Ready, firing EventLoadStarted and
// EventLoaded around the load hook.
func (c *Controller) Load() error {
	return c.transition("load", []Phase{PhaseUnloaded}, PhaseLoading, PhaseReady,
		EventLoadStarted, EventLoaded, c.hooks.Load)
}

// Show makes Ready or Hidden content visible, firing EventShowStarted and
// EventShown around the show hook.
func (c *Controller) Show() error {
	return c.transition("show", []Phase{PhaseReady, PhaseHidden}, PhaseShowing, PhaseShowing,
		EventShowStarted, EventShown, c.hooks.Show)
}

// Hide hides Showing content, firing EventHideStarted and EventHidden
// around the hide hook.
func (c *Controller) Hide() error {
	return c.transition("hide", []Phase{PhaseShowing}, PhaseHidden, PhaseHidden,
		EventHideStarted, EventHidden, c.hooks.Hide)
}

func (c *Controller) transition(op string, from []Phase, during, to Phase, started, finished Event, work func(done func())) error {
	c.mu.Lock()
	allowed := false
	for _, p := range from {
		if c.tail == p {
			allowed = true
			break
		}
	}
	if !allowed {
		err := &PhaseError{Op: op, Phase: c.tail}
		c.mu.Unlock()
		return err
	}
	c.tail = to
	c.mu.Unlock()

	c.queue.AddChild(command.NewFunc(op, func(done func()) {
		c.setPhase(during)
		c.events.Emit(started)
		finish := func() {
			c.setPhase(to)
			c.events.Emit(finished)
			done()
		}
		if work == nil {
			finish()
			return
		}
		work(finish)
	}))
	return nil
}

func (c *Controller) setPhase(p Phase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
}
