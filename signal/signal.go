// Package signal provides a small multicast notification primitive.
//
// A Signal holds an ordered set of listeners and invokes them synchronously,
// in registration order, whenever Emit is called. Listeners are identified by
// opaque tokens so they can be removed explicitly; there is no weak-reference
// magic anywhere.
package signal

import (
	"sync"

	"github.com/google/uuid"
)

// Token identifies a single subscription on a Signal.
type Token string

type listener[T any] struct {
	token Token
	fn    func(T)
	once  bool
}

// Signal is a multicast broadcast point for values of type T.
// The zero value is ready to use.
type Signal[T any] struct {
	mu        sync.Mutex
	listeners []listener[T]
}

// Subscribe registers fn to be invoked on every Emit until unsubscribed.
// The returned token removes exactly this subscription.
func (s *Signal[T]) Subscribe(fn func(T)) Token {
	return s.add(fn, false)
}

// Once registers fn for a single invocation; the subscription is removed
// before fn runs.
func (s *Signal[T]) Once(fn func(T)) Token {
	return s.add(fn, true)
}

func (s *Signal[T]) add(fn func(T), once bool) Token {
	tok := Token(uuid.NewString())
	s.mu.Lock()
	s.listeners = append(s.listeners, listener[T]{token: tok, fn: fn, once: once})
	s.mu.Unlock()
	return tok
}

// Unsubscribe removes the subscription identified by tok.
// Unknown tokens are ignored.
func (s *Signal[T]) Unsubscribe(tok Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listeners {
		if l.token == tok {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Emit invokes every current listener with v, in registration order,
// synchronously in the caller's goroutine. The listener set is snapshotted
// first, so callbacks may subscribe or unsubscribe without deadlocking;
// such changes take effect for the next Emit.
func (s *Signal[T]) Emit(v T) {
	s.mu.Lock()
	snapshot := make([]listener[T], len(s.listeners))
	copy(snapshot, s.listeners)
	remaining := s.listeners[:0]
	for _, l := range s.listeners {
		if !l.once {
			remaining = append(remaining, l)
		}
	}
	s.listeners = remaining
	s.mu.Unlock()

	for _, l := range snapshot {
		l.fn(v)
	}
}

// Len returns the number of active subscriptions.
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// Clear removes every subscription.
func (s *Signal[T]) Clear() {
	s.mu.Lock()
	s.listeners = nil
	s.mu.Unlock()
}
