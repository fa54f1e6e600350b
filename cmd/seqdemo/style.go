package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic styling facade. This file is the only place lipgloss is
// configured; when styling is disabled every helper returns its input
// unchanged with no ANSI codes.

var (
	styleEnabled bool

	headerStyle  lipgloss.Style
	runningStyle lipgloss.Style
	doneStyle    lipgloss.Style
	pendingStyle lipgloss.Style
	errorStyle   lipgloss.Style
	mutedStyle   lipgloss.Style
)

// initStyles sets up the lipgloss styles. Respects the NO_COLOR convention
// regardless of the enable parameter.
func initStyles(enable bool) {
	if os.Getenv("NO_COLOR") != "" {
		styleEnabled = false
		return
	}
	styleEnabled = enable
	if !styleEnabled {
		return
	}

	// Force ANSI256 so basic and extended colors both render.
	lipgloss.SetColorProfile(termenv.ANSI256)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	doneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
}

func header(s string) string {
	if !styleEnabled {
		return s
	}
	return headerStyle.Render(s)
}

func running(s string) string {
	if !styleEnabled {
		return s
	}
	return runningStyle.Render(s)
}

func done(s string) string {
	if !styleEnabled {
		return s
	}
	return doneStyle.Render(s)
}

func pending(s string) string {
	if !styleEnabled {
		return s
	}
	return pendingStyle.Render(s)
}

func errorText(s string) string {
	if !styleEnabled {
		return s
	}
	return errorStyle.Render(s)
}

func muted(s string) string {
	if !styleEnabled {
		return s
	}
	return mutedStyle.Render(s)
}
