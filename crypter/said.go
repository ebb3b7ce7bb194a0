package crypter

import (
	"fmt"

	"github.com/datatrails/go-datatrails-keri/codec"
)

// Saidify computes an event's self-addressing digest (the "d" field) the
// way every KERI serialization does: marshal once with "d" held at a
// placeholder of the same length the real digest will be, so the digest
// commits to the event's final byte length, then marshal again with "d"
// set to the computed value. Both passes run through codec.Sizeify so the
// returned bytes also carry a correct version-string size.
//
// ked is mutated in place: "v" is overwritten with a placeholder for kind
// and "d" is set to the computed digest on return.
func Saidify(code DigestCode, kind codec.Kind, ked map[string]any) (digest string, raw []byte, err error) {
	n, ok := rawSizes[code]
	if !ok {
		return "", nil, fmt.Errorf("crypter: unknown derivation code %q", code)
	}
	qb64Len := len(string(code)) + (4*n+2)/3 // unpadded base64 body length

	ked["v"] = codec.PlaceholderVersionString(kind)
	ked["d"] = codec.ZeroDigest(qb64Len)
	sized, err := codec.Sizeify(kind, ked)
	if err != nil {
		return "", nil, err
	}
	d, err := NewDiger(code, sized)
	if err != nil {
		return "", nil, err
	}

	ked["d"] = d.Qb64()
	final, err := codec.Sizeify(kind, ked)
	if err != nil {
		return "", nil, err
	}
	return d.Qb64(), final, nil
}
