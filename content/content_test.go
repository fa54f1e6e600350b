package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestController_LoadShowHideEventOrder(t *testing.T) {
	c := New(Hooks{})
	var events []Event
	c.OnEvent(func(e Event) { events = append(events, e) })

	require.NoError(t, c.Load())
	require.NoError(t, c.Show())
	require.NoError(t, c.Hide())

	require.Equal(t, []Event{
		EventLoadStarted, EventLoaded,
		EventShowStarted, EventShown,
		EventHideStarted, EventHidden,
	}, events)
	require.Equal(t, PhaseHidden, c.Phase())
}

func TestController_PhaseProgression(t *testing.T) {
	c := New(Hooks{})

	require.Equal(t, PhaseUnloaded, c.Phase())
	require.NoError(t, c.Load())
	require.Equal(t, PhaseReady, c.Phase())
	require.NoError(t, c.Show())
	require.Equal(t, PhaseShowing, c.Phase())
	require.NoError(t, c.Hide())
	require.Equal(t, PhaseHidden, c.Phase())
	require.NoError(t, c.Show(), "hidden content can be shown again")
	require.Equal(t, PhaseShowing, c.Phase())
}

func TestController_AsyncLoadSerializesShow(t *testing.T) {
	var finishLoad func()
	c := New(Hooks{
		Load: func(done func()) { finishLoad = done },
	})
	var events []Event
	c.OnEvent(func(e Event) { events = append(events, e) })

	require.NoError(t, c.Load())
	require.Equal(t, PhaseLoading, c.Phase())

	// Show queues behind the in-flight load instead of failing.
	require.NoError(t, c.Show())
	require.Equal(t, PhaseLoading, c.Phase())
	require.Equal(t, []Event{EventLoadStarted}, events)

	finishLoad()

	require.Equal(t, []Event{EventLoadStarted, EventLoaded, EventShowStarted, EventShown}, events)
	require.Equal(t, PhaseShowing, c.Phase())
}

func TestController_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		do   func(c *Controller) error
		op   string
	}{
		{"show before load", func(c *Controller) error { return c.Show() }, "show"},
		{"hide before load", func(c *Controller) error { return c.Hide() }, "hide"},
		{"double load", func(c *Controller) error {
			if err := c.Load(); err != nil {
				return err
			}
			return c.Load()
		}, "load"},
		{"hide while ready", func(c *Controller) error {
			if err := c.Load(); err != nil {
				return err
			}
			return c.Hide()
		}, "hide"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(Hooks{})
			err := tt.do(c)

			var pe *PhaseError
			require.ErrorAs(t, err, &pe)
			require.Equal(t, tt.op, pe.Op)
		})
	}
}

func TestController_HooksRun(t *testing.T) {
	var ran []string
	c := New(Hooks{
		Load: func(done func()) { ran = append(ran, "load"); done() },
		Show: func(done func()) { ran = append(ran, "show"); done() },
		Hide: func(done func()) { ran = append(ran, "hide"); done() },
	})

	require.NoError(t, c.Load())
	require.NoError(t, c.Show())
	require.NoError(t, c.Hide())

	require.Equal(t, []string{"load", "show", "hide"}, ran)
}

func TestController_DisposeStopsLifecycle(t *testing.T) {
	c := New(Hooks{})
	events := 0
	c.OnEvent(func(Event) { events++ })

	c.Dispose()
	c.Dispose()

	require.True(t, c.IsDisposed())
	require.Equal(t, PhaseDisposed, c.Phase())

	err := c.Load()
	var pe *PhaseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, PhaseDisposed, pe.Phase)
	require.Equal(t, 0, events)
}

func TestPhase_String(t *testing.T) {
	require.Equal(t, "UNLOADED", PhaseUnloaded.String())
	require.Equal(t, "LOADING", PhaseLoading.String())
	require.Equal(t, "READY", PhaseReady.String())
	require.Equal(t, "SHOWING", PhaseShowing.String())
	require.Equal(t, "HIDDEN", PhaseHidden.String())
	require.Equal(t, "DISPOSED", PhaseDisposed.String())
	require.Equal(t, "UNKNOWN", Phase(42).String())
}

func TestEvent_String(t *testing.T) {
	require.Equal(t, "LOAD_STARTED", EventLoadStarted.String())
	require.Equal(t, "HIDDEN", EventHidden.String())
	require.Equal(t, "UNKNOWN", Event(42).String())
}
