// ABOUTME: Event handling and state transitions for the TUI
// ABOUTME: Implements Navigate, Play, Stop, ToggleShuffle, RandomPlay, and Quit

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and applies state transitions
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.displayCount = msg.Height - totalUIChrome
		if m.displayCount < 1 {
			m.displayCount = 1
		}

		m.viewport.Update(m.highlight, m.displayCount)

		return m, nil

	case tea.InterruptMsg:
		// SIGINT is a quit request, not a fault: stop playback and let the
		// program restore the terminal before exiting normally
		return m.handleQuit()

	case trackFinishedMsg:
		// Consume the signal exactly once; auto-advance only while shuffle
		// is enabled at this moment
		m.debugf("[tui] playback finished (shuffle=%v)", m.shuffle)

		m.nowPlaying = ""
		if m.shuffle {
			m.playRandom()
		}

		return m, waitForPlayerEvent(m.events)

	case libraryChangedMsg:
		m.reloadLibrary()

		return m, waitForLibraryChange(m.libEvents)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m.handleQuit()

		case key.Matches(msg, keys.Up):
			m.moveHighlight(-1)

		case key.Matches(msg, keys.Down):
			m.moveHighlight(1)

		case key.Matches(msg, keys.PageUp):
			m.moveHighlight(-m.displayCount)

		case key.Matches(msg, keys.PageDown):
			m.moveHighlight(m.displayCount)

		case key.Matches(msg, keys.Home):
			m.setHighlight(0)

		case key.Matches(msg, keys.End):
			m.setHighlight(m.lib.Len() - 1)

		case key.Matches(msg, keys.Play):
			m.handlePlay()

		case key.Matches(msg, keys.Stop):
			m.handleStop()

		case key.Matches(msg, keys.Shuffle):
			m.handleToggleShuffle()

		case key.Matches(msg, keys.Random):
			m.playRandom()
		}

		return m, nil
	}

	return m, nil
}

// moveHighlight shifts the highlight by delta, clamped to the list bounds,
// and keeps it inside the viewport
func (m *model) moveHighlight(delta int) {
	m.setHighlight(m.highlight + delta)
}

// setHighlight clamps the highlight to [0, len-1] and updates the viewport
func (m *model) setHighlight(idx int) {
	last := m.lib.Len() - 1
	if idx > last {
		idx = last
	}

	if idx < 0 {
		idx = 0
	}

	m.highlight = idx
	m.viewport.Update(m.highlight, m.displayCount)
}

// handlePlay clears shuffle mode and plays the highlighted file
func (m *model) handlePlay() {
	m.shuffle = false

	if m.lib.Len() == 0 {
		return
	}

	m.playIndex(m.highlight)
}

// handleStop stops any active playback
func (m *model) handleStop() {
	m.player.Stop()
	m.nowPlaying = ""
}

// handleToggleShuffle flips shuffle mode. Enabling it while nothing is
// playing starts a random file immediately.
func (m *model) handleToggleShuffle() {
	m.shuffle = !m.shuffle

	if m.shuffle && !m.player.IsPlaying() {
		m.playRandom()
	}
}

// playRandom plays a uniformly random file and moves the highlight to it.
// The pick may repeat the current file; shuffle is a uniform draw, not a
// permutation.
func (m *model) playRandom() {
	if m.lib.Len() == 0 {
		return
	}

	idx := m.randIntN(m.lib.Len())
	m.playIndex(idx)
	m.setHighlight(idx)
}

// playIndex starts playback of the file at idx via the controller
func (m *model) playIndex(idx int) {
	name := m.lib.Name(idx)
	if name == "" {
		return
	}

	if m.player.Play(m.lib.Path(idx)) {
		m.nowPlaying = m.lib.Info(name).Display()
	} else {
		m.debugf("[tui] no player available for %s", name)
	}
}

// handleQuit stops playback and exits the loop
func (m *model) handleQuit() (model, tea.Cmd) {
	m.quitting = true
	m.player.Stop()

	return *m, tea.Quit
}

// reloadLibrary rescans the directory after a watcher signal. The highlight
// follows the previously highlighted name when it survives the reload,
// otherwise it clamps to the new bounds.
func (m *model) reloadLibrary() {
	current := m.lib.Name(m.highlight)

	if err := m.lib.Reload(); err != nil {
		m.debugf("[tui] library reload failed: %v", err)

		return
	}

	m.lib.PrefetchMetadata()

	if idx := m.lib.IndexOf(current); idx >= 0 {
		m.setHighlight(idx)
	} else {
		m.setHighlight(m.highlight)
	}
}
