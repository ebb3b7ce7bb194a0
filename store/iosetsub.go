package store

import (
	"bytes"

	"go.etcd.io/bbolt"
)

// IoSetSub is an insertion-ordered set keyed by an apparent ("top") key: the
// physical key is top + '.' + a hidden 32 hex digit ordinal suffix, so
// multiple values can accumulate under one logical key while still sorting
// in insertion order. Used for SIGS (multiple signatures per event) and
// every escrow table.
type IoSetSub struct {
	b *bbolt.Bucket
}

func (s IoSetSub) prefix(top []byte) []byte {
	return append(append([]byte{}, top...), '.')
}

// lastOrdinal finds the highest ordinal currently written under top by
// seeking one byte past the widest possible key for this prefix and
// stepping back, rather than scanning every entry.
func (s IoSetSub) lastOrdinal(top []byte) (ord uint64, found bool) {
	prefix := s.prefix(top)
	seek := append(append([]byte{}, prefix...), 0xFF)
	c := s.b.Cursor()
	k, _ := c.Seek(seek)
	if k == nil {
		k, _ = c.Last()
	} else {
		k, _ = c.Prev()
	}
	if k == nil || !bytes.HasPrefix(k, prefix) {
		return 0, false
	}
	suffix := ordSuffix(k, len(top))
	v, err := parseOrd(suffix)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Append adds val as the next entry under top and returns the ordinal it
// was assigned.
func (s IoSetSub) Append(top, val []byte) (uint64, error) {
	last, found := s.lastOrdinal(top)
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

// PutAll appends every value in vals, in order.
func (s IoSetSub) PutAll(top []byte, vals [][]byte) error {
	for _, v := range vals {
		if _, err := s.Append(top, v); err != nil {
			return err
		}
	}
	return nil
}

// GetAll returns every value under top in insertion order.
func (s IoSetSub) GetAll(top []byte) ([][]byte, error) {
	prefix := s.prefix(top)
	var out [][]byte
	c := s.b.Cursor()
	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		cp := make([]byte, len(v))
		copy(cp, v)
		out = append(out, cp)
	}
	return out, nil
}

// DelAll removes every entry under top.
func (s IoSetSub) DelAll(top []byte) error {
	prefix := s.prefix(top)
	c := s.b.Cursor()
	var keys [][]byte
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		keys = append(keys, append([]byte{}, k...))
	}
	for _, k := range keys {
		if err := s.b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// DelOne removes the first entry under top whose value equals val. It is a
// no-op, not an error, if no such entry exists: deletion is idempotent by
// value-equality, matching addIoSet's own idempotent-by-value-equality
// invariant.
func (s IoSetSub) DelOne(top, val []byte) error {
	prefix := s.prefix(top)
	c := s.b.Cursor()
	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		if bytes.Equal(v, val) {
			return s.b.Delete(k)
		}
	}
	return nil
}

// IterateAll walks every entry in the bucket regardless of top, in
// physical key order, stripping the hidden ordinal suffix before handing
// the top key to fn. Used by escrow drains, which must discover every
// pending (pre, sn) entry without knowing its key in advance.
func (s IoSetSub) IterateAll(fn func(top, val []byte) error) error {
	const suffixWidth = 1 + ordWidth
	c := s.b.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		if len(k) < suffixWidth {
			continue
		}
		top := k[:len(k)-suffixWidth]
		if err := fn(top, v); err != nil {
			return err
		}
	}
	return nil
}

// Has reports whether any value under top equals val.
func (s IoSetSub) Has(top, val []byte) bool {
	prefix := s.prefix(top)
	c := s.b.Cursor()
	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		if bytes.Equal(v, val) {
			return true
		}
	}
	return false
}
