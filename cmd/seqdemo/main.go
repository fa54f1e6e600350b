// Command seqdemo drains a buffered command queue in front of a terminal
// UI. Each step is an asynchronous command; the buffer serializes them in
// FIFO order and the UI exits on the buffer's idle signal.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/sequent-tools/sequent/command"
	"github.com/sequent-tools/sequent/logging"
)

type step struct {
	name string
	dur  time.Duration
}

func defaultSteps(count int) []step {
	names := []string{
		"resolve manifest",
		"fetch artifacts",
		"verify checksums",
		"warm cache",
		"apply migrations",
		"publish release",
		"invalidate edge",
		"notify subscribers",
	}
	steps := make([]step, 0, count)
	for i := 0; i < count; i++ {
		steps = append(steps, step{
			name: names[i%len(names)],
			dur:  time.Duration(200+120*(i%3)) * time.Millisecond,
		})
	}
	return steps
}

func main() {
	flags := parseFlags(os.Args[1:])

	if err := setupLogging(flags); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	count := 5
	if n, err := strconv.Atoi(flags["steps"]); err == nil && n > 0 {
		count = n
	}
	steps := defaultSteps(count)

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	_, noColor := flags["no-color"]
	initStyles(isTTY && !noColor)

	if _, plain := flags["plain"]; plain || !isTTY {
		if err := runPlain(steps); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		return
	}

	if err := runTUI(steps); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// parseFlags splits --name and --name=value arguments into a map. A bare
// flag maps to "".
func parseFlags(args []string) map[string]string {
	flags := make(map[string]string)
	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		name, value, _ := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		flags[name] = value
	}
	return flags
}

func setupLogging(flags map[string]string) error {
	d := logging.NewDispatcher()
	min := logging.ParseLevel(flags["log-level"])

	if path := flags["log-file"]; path != "" {
		target, err := logging.NewFileTarget(path)
		if err != nil {
			return fmt.Errorf("seqdemo: %w", err)
		}
		d.AddTarget(target, min)
	}
	if path := flags["journal"]; path != "" {
		journal, err := logging.NewJournal(path)
		if err != nil {
			return fmt.Errorf("seqdemo: %w", err)
		}
		d.AddTarget(journal, min)
	}

	logging.SetDefault(d)
	return nil
}

func runTUI(steps []step) error {
	p := tea.NewProgram(newDrainModel(steps))

	buf := makeQueue(steps,
		func(i int) { p.Send(stepStartedMsg{index: i}) },
		func(i int) { p.Send(stepDoneMsg{index: i}) },
		func() { p.Send(queueIdleMsg{}) },
	)

	go func() {
		if err := buf.Execute(); err != nil {
			logging.Errorf("seqdemo: queue execute: %v", err)
			p.Send(queueIdleMsg{})
		}
	}()

	model, err := p.Run()
	// Abandoned work is disposed with the buffer; nothing fires afterwards.
	buf.Dispose()
	if err != nil {
		return fmt.Errorf("seqdemo: %w", err)
	}
	if m, ok := model.(drainModel); ok && m.aborted {
		fmt.Println(errorText("aborted"))
	}
	return nil
}

func runPlain(steps []step) error {
	idle := make(chan struct{})

	buf := makeQueue(steps,
		func(i int) { fmt.Printf("-> %s\n", steps[i].name) },
		func(i int) { fmt.Printf("ok %s\n", steps[i].name) },
		func() { close(idle) },
	)

	if err := buf.Execute(); err != nil {
		return fmt.Errorf("seqdemo: %w", err)
	}
	<-idle
	buf.Dispose()
	fmt.Printf("idle: %d commands drained\n", len(steps))
	return nil
}

// makeQueue builds the buffer of timed step commands.
func makeQueue(steps []step, onStart, onDone func(int), onIdle func()) *command.Buffer {
	buf := command.NewBuffer()
	for i, s := range steps {
		i, s := i, s
		buf.AddChild(command.NewFunc(s.name, func(complete func()) {
			onStart(i)
			time.AfterFunc(s.dur, func() {
				onDone(i)
				complete()
			})
		}))
	}
	buf.OnIdle(func(*command.Buffer) { onIdle() })
	return buf
}
