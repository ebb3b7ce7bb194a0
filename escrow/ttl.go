package escrow

import (
	"time"

	"github.com/datatrails/go-datatrails-keri/store"
)

// DefaultTTL gives each escrow class's expiry, per spec.md's table: every
// class expires after about an hour except LDES, which is operator-review
// only and never auto-expires.
func DefaultTTL(bucket string) time.Duration {
	if bucket == store.LDES {
		return 0
	}
	return time.Hour
}

// ExpireOlderThan deletes every entry in bucket older than ttl as of now,
// and returns how many were removed. ttl <= 0 is a no-op (matches LDES's
// DefaultTTL).
func ExpireOlderThan(tx *store.Tx, bucket string, ttl time.Duration, now time.Time) (int, error) {
	if ttl <= 0 {
		return 0, nil
	}
	type due struct {
		top []byte
		e   Entry
	}
	var stale []due
	if err := IterateAll(tx, bucket, func(top []byte, e Entry) error {
		if e.Expired(ttl, now) {
			stale = append(stale, due{top: append([]byte{}, top...), e: e})
		}
		return nil
	}); err != nil {
		return 0, err
	}
	for _, d := range stale {
		if err := Delete(tx, bucket, d.top, d.e); err != nil {
			return 0, err
		}
	}
	return len(stale), nil
}
