package store

import "go.etcd.io/bbolt"

// ValSub is the simplest sub-store pattern: one value per explicit key, no
// duplicates, no hidden ordinal. Used for EVT (digest -> raw event bytes),
// DTS (digest -> first-sight timestamp) and the KE "last" convenience
// lookup.
type ValSub struct {
	b *bbolt.Bucket
}

// Get returns the value at key, or ErrNotFound.
func (v ValSub) Get(key []byte) ([]byte, error) {
	raw := v.b.Get(key)
	if raw == nil {
		return nil, ErrNotFound
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

// Put writes val at key, overwriting any existing value.
func (v ValSub) Put(key, val []byte) error {
	return v.b.Put(key, val)
}

// PutIfAbsent writes val at key only if key is not already present, and
// reports whether it wrote. Used for idempotent EVT commits: the second
// ingest of an already-accepted digest is a no-op, not an overwrite.
func (v ValSub) PutIfAbsent(key, val []byte) (wrote bool, err error) {
	if v.b.Get(key) != nil {
		return false, nil
	}
	if err := v.b.Put(key, val); err != nil {
		return false, err
	}
	return true, nil
}

// Has reports whether key is present.
func (v ValSub) Has(key []byte) bool {
	return v.b.Get(key) != nil
}

// Del removes key, a no-op if absent.
func (v ValSub) Del(key []byte) error {
	return v.b.Delete(key)
}
