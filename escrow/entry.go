package escrow

import (
	"encoding/binary"
	"time"
)

// Entry is one pending payload: the encoded frame and its attached
// signatures (or, for URES, the receipt couplet's qb64) an earlier ingest
// attempt could not yet accept, plus the
// time it was filed, for TTL expiry.
type Entry struct {
	Payload  []byte
	StoredAt time.Time
}

const stampWidth = 8

func stamp(payload []byte) []byte {
	out := make([]byte, stampWidth+len(payload))
	binary.BigEndian.PutUint64(out[:stampWidth], uint64(time.Now().UTC().UnixNano()))
	copy(out[stampWidth:], payload)
	return out
}

func restamp(storedAt time.Time, payload []byte) []byte {
	out := make([]byte, stampWidth+len(payload))
	binary.BigEndian.PutUint64(out[:stampWidth], uint64(storedAt.UnixNano()))
	copy(out[stampWidth:], payload)
	return out
}

func unstamp(raw []byte) Entry {
	nanos := int64(binary.BigEndian.Uint64(raw[:stampWidth]))
	payload := make([]byte, len(raw)-stampWidth)
	copy(payload, raw[stampWidth:])
	return Entry{Payload: payload, StoredAt: time.Unix(0, nanos).UTC()}
}

// Expired reports whether e has outlived ttl as of now. ttl <= 0 means the
// class never expires (LDES: operator-review only).
func (e Entry) Expired(ttl time.Duration, now time.Time) bool {
	return ttl > 0 && now.Sub(e.StoredAt) > ttl
}
