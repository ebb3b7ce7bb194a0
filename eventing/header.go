package eventing

import (
	"fmt"
	"strconv"
)

// Header is the field set every key event shares.
type Header struct {
	V string `json:"v"`
	T string `json:"t"`
	D string `json:"d"`
	I string `json:"i"`
	S string `json:"s"`
}

// SeqNum parses the hex sequence number S.
func (h Header) SeqNum() (uint64, error) {
	n, err := strconv.ParseUint(h.S, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadSeqNum, h.S)
	}
	return n, nil
}

// SeqNumHex renders n as the lowercase hex string the wire format expects.
func SeqNumHex(n uint64) string {
	return strconv.FormatUint(n, 16)
}

// Seal is a compact reference to another event by prefix and digest, with
// an optional sequence number and kind. Used for a delegated event's
// anchoring seal and a validator receipt's reference to the receipter's
// last establishment event.
type Seal struct {
	I string `json:"i"`
	S string `json:"s,omitempty"`
	D string `json:"d"`
	T string `json:"t,omitempty"`
}
