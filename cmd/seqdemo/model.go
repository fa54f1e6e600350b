package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Messages sent into the model by the draining buffer.

type stepStartedMsg struct{ index int }

type stepDoneMsg struct{ index int }

type queueIdleMsg struct{}

type stepState int

const (
	stepPending stepState = iota
	stepRunning
	stepDone
)

// drainModel is the Bubble Tea model showing the buffer draining its steps.
type drainModel struct {
	spin    spinner.Model
	steps   []step
	states  []stepState
	started time.Time
	idle    bool
	aborted bool
}

func newDrainModel(steps []step) drainModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return drainModel{
		spin:    sp,
		steps:   steps,
		states:  make([]stepState, len(steps)),
		started: time.Now(),
	}
}

// Init implements tea.Model.
func (m drainModel) Init() tea.Cmd {
	return m.spin.Tick
}

// Update implements tea.Model.
func (m drainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
		return m, nil

	case stepStartedMsg:
		if msg.index >= 0 && msg.index < len(m.states) {
			m.states[msg.index] = stepRunning
		}
		return m, nil

	case stepDoneMsg:
		if msg.index >= 0 && msg.index < len(m.states) {
			m.states[msg.index] = stepDone
		}
		return m, nil

	case queueIdleMsg:
		m.idle = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m drainModel) View() string {
	var b strings.Builder

	b.WriteString(header("sequent demo") + muted(" — draining command buffer") + "\n\n")

	for i, s := range m.steps {
		switch m.states[i] {
		case stepRunning:
			b.WriteString(fmt.Sprintf("  %s %s\n", m.spin.View(), running(s.name)))
		case stepDone:
			b.WriteString(fmt.Sprintf("  %s %s\n", done("✓"), done(s.name)))
		default:
			b.WriteString(fmt.Sprintf("    %s\n", pending(s.name)))
		}
	}

	b.WriteString("\n")
	if m.idle {
		b.WriteString(done(fmt.Sprintf("idle — %d commands drained in %s\n",
			len(m.steps), time.Since(m.started).Round(time.Millisecond))))
	} else {
		b.WriteString(muted("press q to abort\n"))
	}
	return b.String()
}
