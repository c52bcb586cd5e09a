// ABOUTME: Unit tests for TUI state transitions
// ABOUTME: Exercises navigation, playback keys, shuffle auto-advance, and reloads

package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"mediatui/library"
)

// fakePlayer records playback calls without spawning processes
type fakePlayer struct {
	playing bool
	played  []string
	stops   int
	fail    bool // When true, Play reports no player available
}

func (f *fakePlayer) Play(path string) bool {
	if f.fail {
		return false
	}

	f.played = append(f.played, path)
	f.playing = true

	return true
}

func (f *fakePlayer) Stop() {
	f.stops++
	f.playing = false
}

func (f *fakePlayer) IsPlaying() bool {
	return f.playing
}

// createTestLibrary writes the given files into a temp dir and loads them
func createTestLibrary(t *testing.T, names ...string) *library.Library {
	t.Helper()

	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	lib, err := library.Load(dir, func(ext string) bool { return ext == ".mp3" })
	if err != nil {
		t.Fatalf("library.Load() error = %v", err)
	}

	return lib
}

// createTestModel builds a model around a fake player and a real library
func createTestModel(t *testing.T, names ...string) (model, *fakePlayer) {
	t.Helper()

	p := &fakePlayer{}
	m := initModel(createTestLibrary(t, names...), p, nil, nil, nil)

	return m, p
}

// press delivers a message and returns the updated model
func press(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()

	updated, _ := m.Update(msg)

	next, ok := updated.(model)
	if !ok {
		t.Fatalf("Update returned %T, want model", updated)
	}

	return next
}

// resize delivers a WindowSizeMsg producing the given display count
func resize(t *testing.T, m model, displayCount int) model {
	t.Helper()

	return press(t, m, tea.WindowSizeMsg{Width: 80, Height: totalUIChrome + displayCount})
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNavigationClampsAndKeepsHighlightVisible(t *testing.T) {
	m, _ := createTestModel(t, "a.mp3", "b.mp3", "c.mp3", "d.mp3", "e.mp3",
		"f.mp3", "g.mp3", "h.mp3", "i.mp3", "j.mp3")
	m = resize(t, m, 3)

	moves := []tea.KeyMsg{
		{Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyDown},
		{Type: tea.KeyPgDown}, {Type: tea.KeyPgDown}, {Type: tea.KeyPgDown},
		{Type: tea.KeyUp}, {Type: tea.KeyPgUp},
		{Type: tea.KeyEnd}, {Type: tea.KeyHome},
		{Type: tea.KeyUp}, // Clamp at 0
	}

	for step, msg := range moves {
		m = press(t, m, msg)

		if m.highlight < 0 || m.highlight >= m.lib.Len() {
			t.Fatalf("step %d: highlight %d out of bounds", step, m.highlight)
		}

		start := m.viewport.Start()
		if start < 0 {
			t.Fatalf("step %d: start = %d, want >= 0", step, start)
		}

		if m.highlight < start || m.highlight >= start+m.displayCount {
			t.Fatalf("step %d: highlight %d outside window [%d, %d)",
				step, m.highlight, start, start+m.displayCount)
		}
	}

	if m.highlight != 0 {
		t.Errorf("final highlight = %d, want 0 after Home+Up", m.highlight)
	}
}

func TestEndThenDownStaysOnLastFile(t *testing.T) {
	m, _ := createTestModel(t, "a.mp3", "b.mp3", "c.mp3")
	m = resize(t, m, 2)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})

	if m.highlight != 2 {
		t.Errorf("highlight = %d, want 2", m.highlight)
	}
}

func TestEnterClearsShuffleAndPlaysHighlighted(t *testing.T) {
	m, p := createTestModel(t, "a.mp3", "b.mp3", "c.mp3")
	m = resize(t, m, 5)
	m.shuffle = true

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.shuffle {
		t.Error("shuffle still enabled after Enter")
	}

	if len(p.played) != 1 || filepath.Base(p.played[0]) != "b.mp3" {
		t.Errorf("played = %v, want [.../b.mp3]", p.played)
	}

	if m.nowPlaying == "" {
		t.Error("nowPlaying empty after successful play")
	}
}

func TestSpaceStopsPlayback(t *testing.T) {
	m, p := createTestModel(t, "a.mp3")
	m = resize(t, m, 5)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})

	if p.stops == 0 {
		t.Error("Stop was not called")
	}

	if p.IsPlaying() {
		t.Error("still playing after Space")
	}

	if m.nowPlaying != "" {
		t.Errorf("nowPlaying = %q, want empty after stop", m.nowPlaying)
	}
}

func TestShuffleToggleStartsRandomWhenIdle(t *testing.T) {
	m, p := createTestModel(t, "a.mp3", "b.mp3", "c.mp3", "d.mp3", "e.mp3")
	m = resize(t, m, 3)
	m.randIntN = func(int) int { return 3 }

	m = press(t, m, keyRune('s'))

	if !m.shuffle {
		t.Fatal("shuffle not enabled")
	}

	if len(p.played) != 1 || filepath.Base(p.played[0]) != "d.mp3" {
		t.Errorf("played = %v, want [.../d.mp3]", p.played)
	}

	if m.highlight != 3 {
		t.Errorf("highlight = %d, want 3 (follows random pick)", m.highlight)
	}
}

func TestShuffleToggleWhilePlayingDoesNotInterrupt(t *testing.T) {
	m, p := createTestModel(t, "a.mp3", "b.mp3")
	m = resize(t, m, 3)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	playedBefore := len(p.played)

	m = press(t, m, keyRune('s'))

	if !m.shuffle {
		t.Error("shuffle not enabled")
	}

	if len(p.played) != playedBefore {
		t.Errorf("toggle started a new track: played = %v", p.played)
	}
}

func TestShuffleToggleOffLeavesPlayback(t *testing.T) {
	m, p := createTestModel(t, "a.mp3", "b.mp3")
	m = resize(t, m, 3)
	m.shuffle = true

	m = press(t, m, keyRune('s'))

	if m.shuffle {
		t.Error("shuffle still enabled")
	}

	if len(p.played) != 0 || p.stops != 0 {
		t.Error("toggling shuffle off must not start or stop playback")
	}
}

func TestFinishedAutoAdvancesOnlyInShuffleMode(t *testing.T) {
	t.Run("shuffle on", func(t *testing.T) {
		m, p := createTestModel(t, "a.mp3", "b.mp3", "c.mp3")
		m = resize(t, m, 3)
		m.shuffle = true
		m.randIntN = func(int) int { return 1 }

		m = press(t, m, trackFinishedMsg{})

		if len(p.played) != 1 || filepath.Base(p.played[0]) != "b.mp3" {
			t.Errorf("played = %v, want [.../b.mp3]", p.played)
		}

		if m.highlight != 1 {
			t.Errorf("highlight = %d, want 1", m.highlight)
		}
	})

	t.Run("shuffle off", func(t *testing.T) {
		m, p := createTestModel(t, "a.mp3", "b.mp3", "c.mp3")
		m = resize(t, m, 3)

		m = press(t, m, trackFinishedMsg{})

		if len(p.played) != 0 {
			t.Errorf("played = %v, want none without shuffle", p.played)
		}
	})
}

func TestRandomKeyPlaysRegardlessOfShuffle(t *testing.T) {
	m, p := createTestModel(t, "a.mp3", "b.mp3", "c.mp3")
	m = resize(t, m, 3)
	m.randIntN = func(int) int { return 2 }

	m = press(t, m, keyRune('r'))

	if m.shuffle {
		t.Error("random play must not enable shuffle")
	}

	if len(p.played) != 1 || filepath.Base(p.played[0]) != "c.mp3" {
		t.Errorf("played = %v, want [.../c.mp3]", p.played)
	}
}

func TestQuitStopsPlayback(t *testing.T) {
	m, p := createTestModel(t, "a.mp3")
	m = resize(t, m, 3)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	updated, cmd := m.Update(keyRune('q'))

	final, ok := updated.(model)
	if !ok {
		t.Fatalf("Update returned %T, want model", updated)
	}

	if !final.quitting {
		t.Error("quitting flag not set")
	}

	if p.IsPlaying() {
		t.Error("playback still active on quit")
	}

	if cmd == nil {
		t.Error("quit must return the tea.Quit command")
	}
}

func TestPlayFailureLeavesStateUnchanged(t *testing.T) {
	m, p := createTestModel(t, "a.mp3")
	m = resize(t, m, 3)
	p.fail = true

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if p.IsPlaying() {
		t.Error("IsPlaying() = true after failed play")
	}

	if m.nowPlaying != "" {
		t.Errorf("nowPlaying = %q, want empty", m.nowPlaying)
	}
}

func TestLibraryReloadFollowsHighlightedName(t *testing.T) {
	lib := createTestLibrary(t, "a.mp3", "b.mp3", "c.mp3")
	p := &fakePlayer{}
	m := initModel(lib, p, nil, nil, nil)
	m = resize(t, m, 3)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}) // highlight b.mp3

	// A new file sorts before the highlighted one
	if err := os.WriteFile(filepath.Join(lib.Dir(), "0.mp3"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	m = press(t, m, libraryChangedMsg{})

	if m.lib.Len() != 4 {
		t.Fatalf("Len() = %d after reload, want 4", m.lib.Len())
	}

	if got := m.lib.Name(m.highlight); got != "b.mp3" {
		t.Errorf("highlight on %q after reload, want b.mp3", got)
	}
}

func TestLibraryReloadClampsHighlightWhenFilesVanish(t *testing.T) {
	lib := createTestLibrary(t, "a.mp3", "b.mp3", "c.mp3")
	p := &fakePlayer{}
	m := initModel(lib, p, nil, nil, nil)
	m = resize(t, m, 3)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnd})

	for _, name := range []string{"b.mp3", "c.mp3"} {
		if err := os.Remove(filepath.Join(lib.Dir(), name)); err != nil {
			t.Fatal(err)
		}
	}

	m = press(t, m, libraryChangedMsg{})

	if m.lib.Len() != 1 {
		t.Fatalf("Len() = %d after reload, want 1", m.lib.Len())
	}

	if m.highlight != 0 {
		t.Errorf("highlight = %d, want clamped to 0", m.highlight)
	}
}

func TestViewRendersStatusAndHighlight(t *testing.T) {
	m, _ := createTestModel(t, "a.mp3", "b.mp3", "c.mp3")
	m = resize(t, m, 3)

	out := m.View()

	if !strings.Contains(out, "Files: 3") {
		t.Errorf("View() missing status line:\n%s", out)
	}

	if !strings.Contains(out, "a.mp3") {
		t.Errorf("View() missing file rows:\n%s", out)
	}
}

func TestViewDegradesOnTinyTerminal(t *testing.T) {
	m, _ := createTestModel(t, "a.mp3")

	// Must not panic at any size, including degenerate ones
	for _, size := range [][2]int{{0, 0}, {3, 2}, {10, 1}, {5, 40}} {
		m = press(t, m, tea.WindowSizeMsg{Width: size[0], Height: size[1]})
		_ = m.View()
	}
}
