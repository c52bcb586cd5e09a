// ABOUTME: Playback controller owning the single active player process
// ABOUTME: Background monitor polls for exit and raises an edge-triggered finished event

// Package player owns the external playback process. At most one session is
// live at any time: starting a new one terminates the previous one first. A
// background monitor polls the session at a fixed interval and raises a
// Finished event when it observes a live session exit, so the UI can react
// (e.g. shuffle auto-advance) without ever blocking on process I/O.
package player

import (
	"context"
	"os/exec"
	"slices"
	"sync"
	"time"

	"mediatui/config"
)

const (
	// stopGracePeriod bounds how long Stop waits after SIGTERM before
	// escalating to SIGKILL
	stopGracePeriod = 1 * time.Second

	// pollInterval is the monitor's fixed exit-check cadence, independent
	// of the UI's render cadence
	pollInterval = 100 * time.Millisecond
)

// Event is a notification from the background monitor
type Event int

// EventFinished reports that the monitor observed a previously-live session
// terminate on its own. It is raised at most once per session and consumed
// exactly once by the event loop.
const EventFinished Event = iota

// Controller starts and stops external player processes. All access to the
// session slot goes through one mutex so a user-initiated Stop and a
// monitor-initiated clear cannot race.
type Controller struct {
	mu      sync.Mutex
	current session

	players []config.PlayerCommand
	grace   time.Duration
	poll    time.Duration
	events  chan Event
	debugf  func(format string, args ...interface{})

	// Injectable for tests
	lookPath func(name string) (string, error)
	launch   func(name string, args []string) (session, error)
}

// NewController creates a controller that tries the given player commands
// in order of preference
func NewController(players []config.PlayerCommand, debugf func(string, ...interface{})) *Controller {
	if debugf == nil {
		debugf = func(string, ...interface{}) {}
	}

	return &Controller{
		players:  players,
		grace:    stopGracePeriod,
		poll:     pollInterval,
		events:   make(chan Event, 1),
		debugf:   debugf,
		lookPath: exec.LookPath,
		launch:   launchProcess,
	}
}

// Events returns the monitor's event channel. Buffered with capacity one:
// the finished signal is edge-triggered and pends until consumed.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// Play stops any current session, then launches the first available player
// candidate with the given media file path appended to its arguments.
// Returns false when every candidate is unavailable. A player failing at
// runtime (e.g. unsupported codec) is not a launch failure; it surfaces
// later as a quick finished event.
func (c *Controller) Play(path string) bool {
	c.Stop()

	for _, p := range c.players {
		bin, err := c.lookPath(p.Command)
		if err != nil {
			continue
		}

		args := append(slices.Clone(p.Args), path)

		s, err := c.launch(bin, args)
		if err != nil {
			c.debugf("[player] %s failed to start: %v", p.Command, err)
			continue
		}

		c.debugf("[player] playing %s with %s", path, p.Command)

		c.mu.Lock()
		c.current = s
		c.mu.Unlock()

		return true
	}

	return false
}

// Stop terminates the current session: SIGTERM, wait up to the grace
// period, then SIGKILL. The session slot is always cleared afterward.
// No-op when nothing is playing.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.current
	if s == nil {
		return
	}

	select {
	case <-s.done():
		// Already exited; nothing to signal
	default:
		_ = s.terminate()

		select {
		case <-s.done():
		case <-time.After(c.grace):
			c.debugf("[player] graceful stop timed out, killing")
			_ = s.kill()
			// SIGKILL cannot be caught; the reaper closes done promptly
			<-s.done()
		}
	}

	c.current = nil
}

// IsPlaying reports whether a session handle is currently recorded. It
// reflects the last-known state: a process that exited but has not been
// observed by the monitor yet still counts as playing.
func (c *Controller) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.current != nil
}

// Run polls the current session for exit at a fixed interval until ctx is
// cancelled. Meant to run as a goroutine for the lifetime of the UI.
func (c *Controller) Run(ctx context.Context) {
	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.reap()
		}
	}
}

// reap clears the session slot and raises EventFinished when it observes a
// recorded session that has exited. The read of the slot and the clear are
// atomic under the controller mutex, so a concurrent Stop cannot lose the
// update and a session that was never recorded never raises an event.
func (c *Controller) reap() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return
	}

	select {
	case <-c.current.done():
		c.current = nil

		select {
		case c.events <- EventFinished:
		default:
			// A finished event is already pending
		}
	default:
		// Still running
	}
}
