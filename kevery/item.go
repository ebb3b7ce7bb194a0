package kevery

import (
	"encoding/binary"
	"fmt"

	"github.com/datatrails/go-datatrails-keri/crypter"
)

// encodeItem packs a frame's raw bytes together with its attached Sigers
// into one escrow payload: a 4 byte big-endian length prefix for raw,
// followed by raw itself, followed by the Sigers back to back. Every
// Siger.Qb64() has the same fixed width for a given derivation code, so no
// further delimiter is needed to split them back apart on drain.
func encodeItem(raw []byte, sigers []crypter.Siger) []byte {
	out := make([]byte, 4+len(raw))
	binary.BigEndian.PutUint32(out[:4], uint32(len(raw)))
	copy(out[4:], raw)
	for _, s := range sigers {
		out = append(out, []byte(s.Qb64())...)
	}
	return out
}

// decodeItem reverses encodeItem.
func decodeItem(buf []byte) (raw []byte, sigers []crypter.Siger, err error) {
	if len(buf) < 4 {
		return nil, nil, fmt.Errorf("kevery: escrow item shorter than its length prefix")
	}
	n := binary.BigEndian.Uint32(buf[:4])
	if int(n) > len(buf)-4 {
		return nil, nil, fmt.Errorf("kevery: escrow item declares %d raw bytes, have %d", n, len(buf)-4)
	}
	raw = buf[4 : 4+n]
	rest := buf[4+n:]
	sigerLen := crypter.SigerQb64Len()
	for len(rest) > 0 {
		if len(rest) < sigerLen {
			return nil, nil, fmt.Errorf("kevery: escrow item has a short trailing siger")
		}
		s, err := crypter.ParseSiger(string(rest[:sigerLen]))
		if err != nil {
			return nil, nil, err
		}
		sigers = append(sigers, s)
		rest = rest[sigerLen:]
	}
	return raw, sigers, nil
}
