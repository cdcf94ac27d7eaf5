package keys

import "io"

const esc = 0x1b

// Decode reads one logical key from src.
//
// Known sequences are returned as soon as enough bytes have arrived. A lone
// ESC byte is ambiguous: it is either the Escape key or the start of a longer
// sequence. pending reports whether more input is already waiting (the caller
// binds the short wait into it); when it is, the continuation is decoded as
// the key, otherwise the bare Escape token is returned. A nil pending is
// treated as "nothing waiting".
//
// An error on the first byte is returned as is. An error in the middle of a
// sequence yields the bytes read so far as the token.
func Decode(src io.ByteReader, pending func() bool) (Key, error) {
	b, err := src.ReadByte()
	if err != nil {
		return "", err
	}
	seq := []byte{b}
	if k, ok := Lookup(string(seq)); ok {
		return k, nil
	}

	switch b {
	case esc:
		if pending == nil || !pending() {
			return Escape, nil
		}
		return Decode(src, pending)
	case '[':
		return decodeBracket(src, seq), nil
	}
	return Key(seq), nil
}

// decodeBracket resolves the bytes following '['.
func decodeBracket(src io.ByteReader, seq []byte) Key {
	b, err := src.ReadByte()
	if err != nil {
		return Key(seq)
	}
	seq = append(seq, b)
	if k, ok := Lookup(string(seq)); ok {
		return k
	}
	if b != '1' {
		return Key(seq)
	}

	// Extended modifier sequence: [1;<mod><key>
	b, err = src.ReadByte()
	if err != nil {
		return Key(seq)
	}
	seq = append(seq, b)
	if b != ';' {
		return Key(seq)
	}

	pair := make([]byte, 0, 2)
	for len(pair) < 2 {
		b, err := src.ReadByte()
		if err != nil {
			break
		}
		pair = append(pair, b)
	}
	if k, ok := Lookup(string(pair)); ok {
		return k
	}
	return Key(append(seq, pair...))
}
