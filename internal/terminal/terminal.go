// Package terminal is the boundary to the controlling terminal: raw mode,
// single-byte reads, pending-input polling and unbuffered writes.
package terminal

import (
	"fmt"
	"os"
)

// Clear moves the cursor home and erases the display.
const Clear = "\033[2J\033[H"

// TTY is a terminal device. Input and output may be the same file.
type TTY struct {
	in    *os.File
	out   *os.File
	inFd  int
	owned bool
}

// Open returns the terminal at path, or stdin/stdout when path is empty.
func Open(path string) (*TTY, error) {
	if path == "" {
		return newTTY(os.Stdin, os.Stdout, false)
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	t, err := newTTY(f, f, true)
	if err != nil {
		f.Close()
		return nil, err
	}
	return t, nil
}

func newTTY(in, out *os.File, owned bool) (*TTY, error) {
	t := &TTY{in: in, out: out, inFd: int(in.Fd()), owned: owned}
	if !isTerminal(t.inFd) {
		return nil, fmt.Errorf("%s is not a terminal", in.Name())
	}
	return t, nil
}

// ReadByte blocks until a single byte is read.
func (t *TTY) ReadByte() (byte, error) {
	var buf [1]byte
	for {
		n, err := t.in.Read(buf[:])
		if n == 1 {
			return buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// Write writes p to the terminal immediately.
func (t *TTY) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Close releases the device if Open opened it.
func (t *TTY) Close() error {
	if !t.owned {
		return nil
	}
	return t.in.Close()
}
