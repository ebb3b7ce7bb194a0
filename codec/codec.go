// Package codec implements the KERI wire framing rules shared by every
// event and receipt kind: the fixed-width version string, the three
// supported serializations (JSON, CBOR, MsgPack), and the two-pass
// self-sizing ("sizeify") and self-addressing ("saidify") procedures that
// let a dict carry an accurate size and digest of itself.
//
// Nothing in this package knows about key events, thresholds or keys: it
// operates purely on `map[string]any` (a "ked") and fixed offsets within
// its serialized form. Typed event structs live in the eventing package,
// one json.Marshal away from the map shape this package produces.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// Marshal serializes ked using the given Kind, with no version sizing.
func Marshal(kind Kind, ked any) ([]byte, error) {
	switch kind {
	case KindJSON:
		return json.Marshal(ked)
	case KindCBOR:
		opts := cbor.CanonicalEncOptions()
		em, err := opts.EncMode()
		if err != nil {
			return nil, err
		}
		return em.Marshal(ked)
	case KindMGPK:
		return msgpack.Marshal(ked)
	default:
		return nil, ErrUnsupportedKind
	}
}

// Unmarshal decodes raw (kind-tagged) into out.
func Unmarshal(kind Kind, raw []byte, out any) error {
	switch kind {
	case KindJSON:
		return json.Unmarshal(raw, out)
	case KindCBOR:
		return cbor.Unmarshal(raw, out)
	case KindMGPK:
		return msgpack.Unmarshal(raw, out)
	default:
		return ErrUnsupportedKind
	}
}

// Sizeify serializes v (which must carry a "v" field holding a
// PlaceholderVersionString of the target kind) and patches that field's
// size digits in place so they equal the final byte length. It returns the
// final raw bytes.
//
// This only works because the version string has fixed width regardless of
// the size value it encodes: the placeholder pass and the patched result
// are byte-for-byte identical in length, so no second full marshal is
// needed.
func Sizeify(kind Kind, v any) ([]byte, error) {
	raw, err := Marshal(kind, v)
	if err != nil {
		return nil, err
	}
	offset, ver, k, _, err := FindVersionString(raw)
	if err != nil {
		return nil, err
	}
	if k != kind {
		return nil, fmt.Errorf("%w: placeholder kind %s != requested %s", ErrBadVersionString, k, kind)
	}
	full, err := MakeVersionString(ver, kind, len(raw))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	copy(out[offset:offset+VersionStringSize], full)
	return out, nil
}

// zeroDigest returns a placeholder of totalLen '#' characters, the length of
// the real digest it stands in for, used while computing a Said (see
// crypter.Saidify).
func zeroDigest(totalLen int) string {
	return string(bytes.Repeat([]byte{'#'}, totalLen))
}

// ZeroDigest exports zeroDigest for crypter, which owns the actual
// derivation-code-to-length table and orchestrates the saidify two-pass.
func ZeroDigest(totalLen int) string {
	return zeroDigest(totalLen)
}
