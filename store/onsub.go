package store

import (
	"bytes"

	"go.etcd.io/bbolt"
)

// OnSub is an ordinal-keyed append log: the physical key is
// top + '.' + 32 hex digit ordinal ("on"), and AppendOn assigns the next on
// atomically within the caller's write transaction. Used for KE (sn-keyed
// accepted-head history, where "top" is prefix+sn and the on distinguishes
// successive recovery dups at that sn) and FE (first-seen ordinals, where
// "top" is the bare identifier prefix and on is the fn itself).
type OnSub struct {
	b *bbolt.Bucket
}

func (s OnSub) prefix(top []byte) []byte {
	return append(append([]byte{}, top...), '.')
}

// Last returns the highest on written under top and its value.
func (s OnSub) Last(top []byte) (on uint64, val []byte, found bool) {
	prefix := s.prefix(top)
	seek := append(append([]byte{}, prefix...), 0xFF)
	c := s.b.Cursor()
	k, v := c.Seek(seek)
	if k == nil {
		k, v = c.Last()
	} else {
		k, v = c.Prev()
	}
	if k == nil || !bytes.HasPrefix(k, prefix) {
		return 0, nil, false
	}
	o, err := parseOrd(ordSuffix(k, len(top)))
	if err != nil {
		return 0, nil, false
	}
	out := make([]byte, len(v))
	copy(out, v)
	return o, out, true
}

// AppendOn assigns on = Last(top)+1 (or 0 if top has no entries yet) and
// writes val there, returning the assigned on.
func (s OnSub) AppendOn(top, val []byte) (uint64, error) {
	last, found, err := s.lastOrd(top)
	if err != nil {
		return 0, err
	}
	next := uint64(0)
	if found {
		if last == maxOrd {
			return 0, ErrOrdinalOverflow
		}
		next = last + 1
	}
	if err := s.b.Put(ordKey(top, next), val); err != nil {
		return 0, err
	}
	return next, nil
}

func (s OnSub) lastOrd(top []byte) (uint64, bool, error) {
	on, _, found := s.Last(top)
	return on, found, nil
}

// GetOn returns the value at exactly (top, on).
func (s OnSub) GetOn(top []byte, on uint64) ([]byte, error) {
	raw := s.b.Get(ordKey(top, on))
	if raw == nil {
		return nil, ErrNotFound
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

// Iterate walks every (on, val) under top in ascending order, stopping at
// the first error fn returns.
func (s OnSub) Iterate(top []byte, fn func(on uint64, val []byte) error) error {
	prefix := s.prefix(top)
	c := s.b.Cursor()
	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		on, err := parseOrd(ordSuffix(k, len(top)))
		if err != nil {
			return err
		}
		if err := fn(on, v); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of entries under top.
func (s OnSub) Count(top []byte) int {
	prefix := s.prefix(top)
	n := 0
	c := s.b.Cursor()
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		n++
	}
	return n
}
