// ABOUTME: Rendering of the file browser frame
// ABOUTME: Produces title, directory line, bordered list panel, buttons, and help

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const appTitle = "Terminal Media Player"

// View renders the frame. Elements that do not fit the current terminal
// size are skipped rather than failing.
func (m model) View() string {
	if m.quitting {
		return ""
	}

	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	var sections []string

	if title := m.renderTitle(); title != "" {
		sections = append(sections, title)
	}

	if dir := m.renderDirLine(); dir != "" {
		sections = append(sections, dir)
	}

	if panel := m.renderPanel(); panel != "" {
		sections = append(sections, panel)
	}

	if buttons := m.renderButtons(); buttons != "" {
		sections = append(sections, buttons)
	}

	if help := m.renderHelp(); help != "" {
		sections = append(sections, help)
	}

	return strings.Join(sections, "\n")
}

// renderTitle centers the application title, or skips it when the terminal
// is narrower than the text
func (m model) renderTitle() string {
	if len(appTitle) > m.width {
		return ""
	}

	pad := (m.width - len(appTitle)) / 2

	return strings.Repeat(" ", pad) + titleStyle.Render(appTitle)
}

// renderDirLine shows the library directory, truncated from the left so the
// most specific path components survive
func (m model) renderDirLine() string {
	if m.width < 8 {
		return ""
	}

	line := "Directory: " + m.lib.Dir()
	if len(line) > m.width-2 {
		keep := m.width - 2 - len("Directory: ...")
		if keep < 1 {
			return ""
		}

		dir := m.lib.Dir()
		line = "Directory: ..." + dir[len(dir)-keep:]
	}

	return dirStyle.Render(" " + line)
}

// renderPanel draws the bordered library panel: status line, now-playing
// line, divider, and the visible slice of the file list
func (m model) renderPanel() string {
	contentWidth := m.width - 4
	if contentWidth < 10 {
		return ""
	}

	var lines []string

	lines = append(lines, m.renderStatus(contentWidth))
	lines = append(lines, m.renderNowPlaying(contentWidth))
	lines = append(lines, strings.Repeat("─", contentWidth))
	lines = append(lines, m.renderFileRows(contentWidth)...)

	return panelStyle.Width(contentWidth).Render(strings.Join(lines, "\n"))
}

// renderStatus formats the status line: file count, 1-based current index,
// shuffle and playing flags
func (m model) renderStatus(width int) string {
	onOff := "OFF"
	if m.shuffle {
		onOff = "ON"
	}

	yesNo := "NO"
	if m.player.IsPlaying() {
		yesNo = "YES"
	}

	status := fmt.Sprintf("Files: %d | Current: %d | Shuffle: %s | Playing: %s",
		m.lib.Len(), m.highlight+1, onOff, yesNo)

	return truncate(status, width)
}

// renderNowPlaying shows tag metadata for the active track when available
func (m model) renderNowPlaying(width int) string {
	if m.nowPlaying == "" || !m.player.IsPlaying() {
		return ""
	}

	return truncate("Now: "+m.nowPlaying, width)
}

// renderFileRows renders displayCount rows starting at the viewport offset,
// with the highlighted row inverted and long names truncated
func (m model) renderFileRows(width int) []string {
	rows := make([]string, 0, m.displayCount)

	maxName := width - 6
	if maxName < 10 {
		maxName = 10
	}

	for i := range m.displayCount {
		idx := m.viewport.Start() + i
		if idx >= m.lib.Len() {
			break
		}

		name := truncate(m.lib.Name(idx), maxName)

		if idx == m.highlight {
			line := " * " + name
			if pad := width - len(line); pad > 0 {
				line += strings.Repeat(" ", pad)
			}

			rows = append(rows, highlightStyle.Render(truncate(line, width)))
		} else {
			rows = append(rows, truncate("   "+name, width))
		}
	}

	return rows
}

// renderButtons draws the labeled action row, dropping buttons that no
// longer fit. The shuffle button inverts while shuffle mode is on.
func (m model) renderButtons() string {
	type button struct {
		label  string
		active bool
	}

	buttons := []button{
		{"Play", false},
		{"Stop", false},
		{"Shuffle", m.shuffle},
		{"Random", false},
		{"Quit", false},
	}

	var (
		parts []string
		used  int
	)

	for _, b := range buttons {
		text := fmt.Sprintf("< %s >", b.label)
		if used+len(text)+2 > m.width {
			break
		}

		used += len(text) + 2

		if b.active {
			parts = append(parts, activeButtonStyle.Render(text))
		} else {
			parts = append(parts, buttonStyle.Render(text))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderHelp renders the key help line when it fits
func (m model) renderHelp() string {
	const help = " ↑/↓ navigate | enter play | space stop | s shuffle | r random | q quit"
	if len(help) > m.width-1 {
		return ""
	}

	return helpStyle.Render(help)
}
