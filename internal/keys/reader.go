package keys

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/abhisek/keydrill/internal/logging"
	"github.com/sirupsen/logrus"
)

// ErrInputClosed is returned when the input stream ends before a key starts.
var ErrInputClosed = errors.New("keys: input closed")

// DefaultEscapeWait is how long the decoder waits after a lone ESC for the
// rest of an escape sequence.
const DefaultEscapeWait = 50 * time.Millisecond

// Device is the terminal capability the reader needs.
type Device interface {
	// Raw switches the device to uncooked input and returns a function that
	// restores the previous mode.
	Raw() (restore func() error, err error)

	// ReadByte blocks until one byte is available.
	ReadByte() (byte, error)

	// Pending reports whether input is waiting, polling for at most wait.
	Pending(wait time.Duration) (bool, error)
}

// TerminalError reports a failure to change or restore the terminal mode.
type TerminalError struct {
	Op  string
	Err error
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

func (e *TerminalError) Unwrap() error { return e.Err }

// Reader reads one logical key at a time from a Device.
type Reader struct {
	dev  Device
	wait time.Duration
	log  *logrus.Entry
}

// NewReader creates a Reader. A non-positive wait uses DefaultEscapeWait.
func NewReader(dev Device, wait time.Duration, log *logrus.Entry) *Reader {
	if wait <= 0 {
		wait = DefaultEscapeWait
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Reader{dev: dev, wait: wait, log: log}
}

// ReadKey puts the device in raw mode, decodes one key and restores the
// previous mode before returning, whatever the outcome. prev is the key read
// before this one; decoding does not depend on it.
func (r *Reader) ReadKey(prev Key) (k Key, err error) {
	restore, err := r.dev.Raw()
	if err != nil {
		return "", &TerminalError{Op: "enter raw mode", Err: err}
	}
	defer func() {
		if rerr := restore(); rerr != nil && err == nil {
			err = &TerminalError{Op: "restore mode", Err: rerr}
		}
	}()

	k, err = Decode(r.dev, r.pending)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("read key: %w", err)
	}

	if len(k) > 1 && !k.Named() {
		r.log.WithField("raw", fmt.Sprintf("%q", string(k))).Debug("unmapped key sequence")
	} else {
		r.log.WithField("key", string(k)).Debug("key decoded")
	}
	return k, nil
}

func (r *Reader) pending() bool {
	ok, err := r.dev.Pending(r.wait)
	if err != nil {
		r.log.WithError(err).Warn("poll for pending input failed")
		return false
	}
	return ok
}
