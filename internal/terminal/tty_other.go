//go:build !unix

package terminal

import (
	"errors"
	"time"

	"golang.org/x/term"
)

var errUnsupported = errors.New("polling terminal input is not supported on this platform")

func isTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

func (t *TTY) Raw() (func() error, error) {
	old, err := term.MakeRaw(t.inFd)
	if err != nil {
		return nil, err
	}
	return func() error {
		return term.Restore(t.inFd, old)
	}, nil
}

func (t *TTY) Pending(wait time.Duration) (bool, error) {
	return false, errUnsupported
}
