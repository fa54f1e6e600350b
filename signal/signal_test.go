package signal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignal_EmitInRegistrationOrder(t *testing.T) {
	var s Signal[int]
	var order []string

	s.Subscribe(func(int) { order = append(order, "first") })
	s.Subscribe(func(int) { order = append(order, "second") })
	s.Subscribe(func(int) { order = append(order, "third") })

	s.Emit(1)

	require.Equal(t, []string{"first", "second", "third"}, order)
}

func TestSignal_EmitPassesValue(t *testing.T) {
	var s Signal[string]
	var got string

	s.Subscribe(func(v string) { got = v })
	s.Emit("hello")

	require.Equal(t, "hello", got)
}

func TestSignal_Unsubscribe(t *testing.T) {
	var s Signal[int]
	calls := 0

	tok := s.Subscribe(func(int) { calls++ })
	s.Emit(1)
	s.Unsubscribe(tok)
	s.Emit(2)

	require.Equal(t, 1, calls)
	require.Equal(t, 0, s.Len())
}

func TestSignal_UnsubscribeUnknownTokenIsNoop(t *testing.T) {
	var s Signal[int]
	s.Subscribe(func(int) {})

	s.Unsubscribe(Token("not-a-token"))

	require.Equal(t, 1, s.Len())
}

func TestSignal_OnceFiresExactlyOnce(t *testing.T) {
	var s Signal[int]
	calls := 0

	s.Once(func(int) { calls++ })
	s.Emit(1)
	s.Emit(2)

	require.Equal(t, 1, calls)
	require.Equal(t, 0, s.Len())
}

func TestSignal_ReentrantUnsubscribeDuringEmit(t *testing.T) {
	var s Signal[int]
	calls := 0

	var tok Token
	tok = s.Subscribe(func(int) {
		calls++
		s.Unsubscribe(tok)
	})

	s.Emit(1)
	s.Emit(2)

	require.Equal(t, 1, calls)
}

func TestSignal_ReentrantSubscribeTakesEffectNextEmit(t *testing.T) {
	var s Signal[int]
	var order []string

	s.Once(func(int) {
		s.Subscribe(func(int) { order = append(order, "late") })
		order = append(order, "original")
	})

	s.Emit(1)
	require.Equal(t, []string{"original"}, order)

	s.Emit(2)
	require.Equal(t, []string{"original", "late"}, order)
}

func TestSignal_Clear(t *testing.T) {
	var s Signal[int]
	calls := 0

	s.Subscribe(func(int) { calls++ })
	s.Subscribe(func(int) { calls++ })
	s.Clear()
	s.Emit(1)

	require.Equal(t, 0, calls)
	require.Equal(t, 0, s.Len())
}
