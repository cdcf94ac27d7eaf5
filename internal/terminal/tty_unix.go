//go:build unix

package terminal

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

func isTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

// Raw switches input to uncooked mode and returns the function restoring the
// saved attributes.
func (t *TTY) Raw() (func() error, error) {
	old, err := term.MakeRaw(t.inFd)
	if err != nil {
		return nil, err
	}
	return func() error {
		return term.Restore(t.inFd, old)
	}, nil
}

// Pending reports whether input is waiting, polling for at most wait.
func (t *TTY) Pending(wait time.Duration) (bool, error) {
	fds := []unix.PollFd{
		{Fd: int32(t.inFd), Events: unix.POLLIN},
	}
	for {
		n, err := unix.Poll(fds, int(wait.Milliseconds()))
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return false, err
		}
		return n > 0 && fds[0].Revents&unix.POLLIN != 0, nil
	}
}
