package keys

import "strconv"

// Key is a logical key token: a literal character, a named symbol such as
// "up" or "C-w", or the raw bytes of an escape sequence nothing maps to.
type Key string

// Named tokens produced by the decoder.
const (
	Up    Key = "up"
	Down  Key = "down"
	Right Key = "right"
	Left  Key = "left"

	ShiftUp    Key = "shift+up"
	ShiftDown  Key = "shift+down"
	ShiftRight Key = "shift+right"
	ShiftLeft  Key = "shift+left"

	CtrlUp    Key = "ctrl+up"
	CtrlDown  Key = "ctrl+down"
	CtrlRight Key = "ctrl+right"
	CtrlLeft  Key = "ctrl+left"

	CtrlW     Key = "C-w"
	CtrlO     Key = "C-o"
	Interrupt Key = "C-c"
	CtrlG     Key = "C-g"

	Escape Key = "\x1b"
	Enter  Key = "\r"
)

// symbols maps raw byte sequences to named tokens. The "2X"/"5X" rows are
// the trailing bytes of ESC [ 1 ; <mod> <X> where 2 is shift and 5 is ctrl.
var symbols = map[string]Key{
	"[A": Up,
	"[B": Down,
	"[C": Right,
	"[D": Left,

	"2A": ShiftUp,
	"2B": ShiftDown,
	"2C": ShiftRight,
	"2D": ShiftLeft,

	"5A": CtrlUp,
	"5B": CtrlDown,
	"5C": CtrlRight,
	"5D": CtrlLeft,

	"\x17": CtrlW,
	"\x0f": CtrlO,
	"\x03": Interrupt,
	"\x07": CtrlG,
}

// Lookup returns the named token for a raw sequence, if there is one.
func Lookup(raw string) (Key, bool) {
	k, ok := symbols[raw]
	return k, ok
}

// Named reports whether k is one of the decoder's symbolic tokens.
func (k Key) Named() bool {
	for _, v := range symbols {
		if v == k {
			return true
		}
	}
	return false
}

// Display returns the form of k echoed to the transcript.
func (k Key) Display() string {
	switch k {
	case CtrlW:
		return "CTRL+W"
	case Enter:
		return "<Enter>"
	case Escape:
		return "<Esc>"
	}
	if k.Named() {
		return string(k)
	}
	for _, b := range []byte(k) {
		if b < 0x20 || b == 0x7f {
			return strconv.Quote(string(k))
		}
	}
	return string(k)
}
