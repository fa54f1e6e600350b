package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want map[string]string
	}{
		{
			name: "empty",
			args: []string{},
			want: map[string]string{},
		},
		{
			name: "bare flag",
			args: []string{"--plain"},
			want: map[string]string{"plain": ""},
		},
		{
			name: "valued flags",
			args: []string{"--steps=3", "--log-file=/tmp/demo.log"},
			want: map[string]string{"steps": "3", "log-file": "/tmp/demo.log"},
		},
		{
			name: "non-flag args ignored",
			args: []string{"positional", "--plain"},
			want: map[string]string{"plain": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, parseFlags(tt.args))
		})
	}
}

func TestDefaultSteps(t *testing.T) {
	steps := defaultSteps(10)
	require.Len(t, steps, 10)
	for _, s := range steps {
		require.NotEmpty(t, s.name)
		require.Greater(t, s.dur, time.Duration(0))
	}
}

func TestMakeQueue_DrainsInOrder(t *testing.T) {
	steps := []step{
		{name: "one", dur: time.Millisecond},
		{name: "two", dur: time.Millisecond},
		{name: "three", dur: time.Millisecond},
	}

	idle := make(chan struct{})

	// The buffer serializes every callback, so plain appends are safe; the
	// idle channel orders the final read.
	var started, finished []int
	buf := makeQueue(steps,
		func(i int) { started = append(started, i) },
		func(i int) { finished = append(finished, i) },
		func() { close(idle) },
	)

	require.NoError(t, buf.Execute())

	select {
	case <-idle:
	case <-time.After(5 * time.Second):
		t.Fatal("queue never went idle")
	}

	require.Equal(t, []int{0, 1, 2}, started)
	require.Equal(t, []int{0, 1, 2}, finished)
}
