package store

import (
	"fmt"
)

// ordWidth is the width, in hex digits, of every ordinal suffix this
// package writes: 32 lowercase hex characters, i.e. a 128 bit ordinal
// space. spec.md §4.3/§6 both specify this width explicitly.
const ordWidth = 32

// maxOrd is the largest ordinal value appendOn/append will assign; beyond
// it they return ErrOrdinalOverflow rather than wrapping. The 32 hex digit
// field has far more headroom than this, reserved for a future wider
// counter; this implementation's counter is a uint64.
const maxOrd = ^uint64(0)

// ordKey renders the full physical key for a logical top key and ordinal:
// top + '.' + 32 lowercase hex digits.
func ordKey(top []byte, ord uint64) []byte {
	key := make([]byte, 0, len(top)+1+ordWidth)
	key = append(key, top...)
	key = append(key, '.')
	key = append(key, []byte(fmt.Sprintf("%0*x", ordWidth, ord))...)
	return key
}

// ordSuffix returns the ordinal suffix of a key built by ordKey, given the
// known top length ("" if the key's length does not match).
func ordSuffix(key []byte, topLen int) string {
	if len(key) != topLen+1+ordWidth {
		return ""
	}
	return string(key[topLen+1:])
}

func parseOrd(suffix string) (uint64, error) {
	var v uint64
	_, err := fmt.Sscanf(suffix, "%x", &v)
	if err != nil {
		return 0, fmt.Errorf("store: malformed ordinal suffix %q: %w", suffix, err)
	}
	return v, nil
}
