// ABOUTME: OS process session wrapper for external player processes
// ABOUTME: Exposes termination and a done channel backed by the native wait

package player

import (
	"os/exec"
	"syscall"
)

// session is the handle to one live player process. The done channel closes
// when the process has exited and been reaped, which lets the monitor poll
// without blocking and lets Stop bound its grace period with a select.
type session interface {
	terminate() error
	kill() error
	done() <-chan struct{}
}

type execSession struct {
	cmd    *exec.Cmd
	doneCh chan struct{}
}

// launchProcess starts name with args, with all standard streams discarded
// so the player cannot take over the controlling terminal
func launchProcess(name string, args []string) (session, error) {
	cmd := exec.Command(name, args...)
	// nil Stdin/Stdout/Stderr connect the child to the null device

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	s := &execSession{
		cmd:    cmd,
		doneCh: make(chan struct{}),
	}

	// Exactly one Wait per process; everyone else watches the done channel
	go func() {
		_ = cmd.Wait()
		close(s.doneCh)
	}()

	return s, nil
}

func (s *execSession) terminate() error {
	return s.cmd.Process.Signal(syscall.SIGTERM)
}

func (s *execSession) kill() error {
	return s.cmd.Process.Kill()
}

func (s *execSession) done() <-chan struct{} {
	return s.doneCh
}
