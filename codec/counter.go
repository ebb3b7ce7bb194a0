package codec

import (
	"fmt"
	"strconv"
)

// Counter is an attachment-group header: it precedes a run of fixed-width
// attachment units (indexed signatures, receipt couplets) and declares
// exactly how many follow, so a Kevery ingesting a counted-mode buffer
// knows where one group ends and the next begins without scanning for a
// delimiter.
//
// The real CESR counter table packs the code and count into a base64
// group; this is a deliberately simplified stand-in (a literal 2 byte code
// plus 2 hex count digits) that plays the same self-framing role without
// reproducing the full count-code table.
type Counter struct {
	Code  string
	Count int
}

const (
	// CodeControllerSigs tags a group of indexed Sigers from the
	// controlling key list.
	CodeControllerSigs = "-A"
	// CodeWitnessCouplets tags a group of non-transferable (Verfer, Cigar)
	// receipt couplets.
	CodeWitnessCouplets = "-B"
)

// counterLen is the fixed wire length of every Counter: a 2 byte code
// followed by 2 hex count digits.
const counterLen = 4

// Qb64 renders c's wire form.
func (c Counter) Qb64() string {
	return fmt.Sprintf("%s%02x", c.Code, c.Count&0xFF)
}

// ParseCounter reads exactly one Counter from the front of buf and reports
// how many bytes it consumed.
func ParseCounter(buf []byte) (Counter, int, error) {
	if len(buf) < counterLen {
		return Counter{}, 0, fmt.Errorf("codec: short counter buffer: need %d, have %d", counterLen, len(buf))
	}
	code := string(buf[:2])
	if code != CodeControllerSigs && code != CodeWitnessCouplets {
		return Counter{}, 0, fmt.Errorf("codec: %q is not a counter code", code)
	}
	n, err := strconv.ParseInt(string(buf[2:4]), 16, 16)
	if err != nil {
		return Counter{}, 0, fmt.Errorf("codec: bad counter count: %w", err)
	}
	return Counter{Code: code, Count: int(n)}, counterLen, nil
}
