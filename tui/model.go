// ABOUTME: Terminal UI model and core state management
// ABOUTME: Bubble Tea model wiring the library, player, and monitor events

// Package tui provides the interactive terminal interface: a scrollable
// file list over the media library, playback control keys, and shuffle
// auto-advance driven by the player's finished events.
package tui

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mediatui/library"
	"mediatui/player"
)

// Layout constants for UI dimensions
const (
	titleHeight      = 1 // Centered application title
	dirLineHeight    = 1 // Directory path line
	panelBorderRows  = 2 // Top and bottom border of the library panel
	statusLineHeight = 1 // File count / current / shuffle / playing
	nowLineHeight    = 1 // Now-playing tag line
	ruleHeight       = 1 // Divider between status block and file list
	buttonRowHeight  = 1 // Labeled action buttons
	helpLineHeight   = 1 // Key help text

	totalUIChrome = titleHeight + dirLineHeight + panelBorderRows +
		statusLineHeight + nowLineHeight + ruleHeight + buttonRowHeight + helpLineHeight
)

// Player is the playback capability the UI depends on
type Player interface {
	Play(path string) bool
	Stop()
	IsPlaying() bool
}

// Options contains configuration for running the TUI
type Options struct {
	DebugLog bool // Enable debug logging to file
}

// trackFinishedMsg is delivered when the monitor observed the active
// session terminate
type trackFinishedMsg struct{}

// libraryChangedMsg is delivered when the watched directory's contents
// changed and the file list should be reloaded
type libraryChangedMsg struct{}

// model holds the TUI state
type model struct {
	// Dependencies
	lib       *library.Library
	player    Player
	events    <-chan player.Event
	libEvents <-chan struct{}
	debugf    func(string, ...interface{})
	randIntN  func(n int) int // Injectable for deterministic tests

	// Viewport state
	highlight    int
	viewport     Viewport
	displayCount int

	// Playback state
	shuffle    bool
	nowPlaying string

	// UI state
	width    int
	height   int
	quitting bool
}

// Key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Play     key.Binding
	Stop     key.Binding
	Shuffle  key.Binding
	Random   key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "navigate"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("home/g", "first file"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("end/G", "last file"),
	),
	Play: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "play"),
	),
	Stop: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "stop"),
	),
	Shuffle: key.NewBinding(
		key.WithKeys("s", "S"),
		key.WithHelp("s", "toggle shuffle"),
	),
	Random: key.NewBinding(
		key.WithKeys("r", "R"),
		key.WithHelp("r", "play random"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "Q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	dirStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder())

	highlightStyle = lipgloss.NewStyle().
			Reverse(true)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 1)

	activeButtonStyle = lipgloss.NewStyle().
				Reverse(true).
				Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Run starts the TUI with injected dependencies and blocks until quit
func Run(opts Options, lib *library.Library, p Player, events <-chan player.Event, libEvents <-chan struct{}, debugf func(string, ...interface{})) error {
	m := initModel(lib, p, events, libEvents, debugf)

	program := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// initModel creates the initial model with injected dependencies
func initModel(lib *library.Library, p Player, events <-chan player.Event, libEvents <-chan struct{}, debugf func(string, ...interface{})) model {
	if debugf == nil {
		debugf = func(string, ...interface{}) {}
	}

	return model{
		lib:          lib,
		player:       p,
		events:       events,
		libEvents:    libEvents,
		debugf:       debugf,
		randIntN:     rand.IntN,
		displayCount: 1,
	}
}

// Init starts the background message sources
func (m model) Init() tea.Cmd {
	return tea.Batch(
		waitForPlayerEvent(m.events),
		waitForLibraryChange(m.libEvents),
	)
}

// waitForPlayerEvent converts the monitor's finished events into messages.
// The event is consumed from the channel exactly once per message.
func waitForPlayerEvent(events <-chan player.Event) tea.Cmd {
	if events == nil {
		return nil
	}

	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}

		return trackFinishedMsg{}
	}
}

// waitForLibraryChange converts directory watcher signals into messages
func waitForLibraryChange(events <-chan struct{}) tea.Cmd {
	if events == nil {
		return nil
	}

	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}

		return libraryChangedMsg{}
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}
