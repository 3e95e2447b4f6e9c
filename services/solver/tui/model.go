// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package tui provides the interactive solve watcher.
//
// # Description
//
// This package implements a bubbletea model that renders the search
// driver's transitions live: the current grid, the transition that
// produced it, the history depth, and running counts per transition.
// Steps arrive as messages from a solve goroutine via Program.Send, so
// the model never calls into the engine itself.
//
// # Thread Safety
//
// The model is single-threaded within the bubbletea event loop. Do not
// access model state from other goroutines; send messages instead.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jimberry1/sudoku/services/solver/engine"
	"github.com/jimberry1/sudoku/services/solver/puzzle"
)

// =============================================================================
// Messages
// =============================================================================

// StepMsg carries one driver transition into the event loop.
type StepMsg struct {
	Step engine.Step
}

// DoneMsg signals that the search terminated.
type DoneMsg struct {
	Result engine.Result
	Err    error
}

// =============================================================================
// Config
// =============================================================================

// WatchConfig configures the solve watcher.
type WatchConfig struct {
	// Puzzle is the starting grid, shown until the first step arrives.
	Puzzle engine.Grid
}

// =============================================================================
// Model
// =============================================================================

// WatchModel is the bubbletea model for watching a solve.
type WatchModel struct {
	config WatchConfig

	spinner spinner.Model

	// Latest step received, if any
	current engine.Step
	started bool

	// Running transition counts, indexed by engine.Transition
	counts [5]int
	steps  int

	// Terminal state
	done     bool
	result   engine.Result
	err      error
	quitting bool

	startedAt time.Time
	elapsed   time.Duration
}

// NewWatchModel creates a watcher for one solve.
//
// # Inputs
//
//   - config: The starting grid to display.
//
// # Outputs
//
//   - WatchModel: Ready-to-use model for tea.NewProgram.
func NewWatchModel(config WatchConfig) WatchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return WatchModel{
		config:    config,
		spinner:   sp,
		startedAt: time.Now(),
	}
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case StepMsg:
		m.current = msg.Step
		m.started = true
		m.steps++
		if t := int(msg.Step.Transition); t >= 0 && t < len(m.counts) {
			m.counts[t]++
		}
		return m, nil

	case DoneMsg:
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		m.elapsed = time.Since(m.startedAt)
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m WatchModel) View() string {
	if m.quitting {
		return "Watch cancelled.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("sudoku watch"))
	b.WriteString("\n\n")

	grid := m.config.Puzzle
	if m.started {
		grid = m.current.Grid
	}
	b.WriteString(gridStyle.Render(puzzle.FormatPretty(grid)))
	b.WriteString("\n\n")

	if m.done {
		b.WriteString(m.renderOutcome())
		return b.String()
	}

	status := "waiting for first step"
	if m.started {
		status = fmt.Sprintf("%s  depth=%d", m.current.Transition, m.current.Depth)
	}
	b.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), statusStyle.Render(status)))
	b.WriteString(m.renderCounts())
	b.WriteString(footerStyle.Render("q: quit"))
	b.WriteString("\n")

	return b.String()
}

func (m WatchModel) renderCounts() string {
	parts := make([]string, 0, len(m.counts))
	for t := engine.TransitionExhausted; t <= engine.TransitionBranch; t++ {
		parts = append(parts, fmt.Sprintf("%s=%d", t, m.counts[t]))
	}
	return countStyle.Render(strings.Join(parts, "  ")) + "\n"
}

func (m WatchModel) renderOutcome() string {
	if m.err != nil {
		return failStyle.Render(fmt.Sprintf("✗ %v", m.err)) + "\n"
	}

	summary := fmt.Sprintf("%d steps in %s", m.steps, m.elapsed.Round(time.Millisecond))
	if m.result.Complete {
		return okStyle.Render("✓ solved") + "  " + statsStyle.Render(summary) + "\n"
	}
	return failStyle.Render("✗ no solution") + "  " + statsStyle.Render(summary) + "\n"
}

// =============================================================================
// Styles
// =============================================================================

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	gridStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	okStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("42"))

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)
