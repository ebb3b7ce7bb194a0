package store

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"
)

// proemSize is the width of the insertion-order proem prepended to every
// IoDupSub value: a 1 byte format marker followed by a 32 bit big-endian
// counter, mirroring keripy's 33 byte "ordinal value prefix" used to make
// LMDB's dup-sort order match insertion order.
const proemSize = 1 + 4

const proemFormat byte = 0x00

// IoDupSub emulates LMDB-style sorted duplicates on top of a non-dup KV: an
// insertion-order proem is both prepended to the stored value (so a caller
// holding only the value bytes can recover insertion order, as keripy's
// dup-sorted values do) and folded into the physical key (so bbolt, which
// allows only one value per key, can hold multiple entries under one
// logical top key at all). Used for RCTS and VRCS, where duplicates
// (multiple receipt couplets/triplets for one digest) are expected and
// insertion order must survive.
type IoDupSub struct {
	b *bbolt.Bucket
}

func (s IoDupSub) prefix(top []byte) []byte {
	return append(append([]byte{}, top...), '.')
}

func encodeProem(n uint32) []byte {
	p := make([]byte, proemSize)
	p[0] = proemFormat
	binary.BigEndian.PutUint32(p[1:], n)
	return p
}

func decodeProem(val []byte) (n uint32, body []byte, err error) {
	if len(val) < proemSize {
		return 0, nil, fmt.Errorf("store: dup value shorter than proem (%d bytes)", len(val))
	}
	if val[0] != proemFormat {
		return 0, nil, fmt.Errorf("store: unrecognized dup proem format %#x", val[0])
	}
	return binary.BigEndian.Uint32(val[proemSize-4:]), val[proemSize:], nil
}

// Add appends body as a new duplicate under top, prepending the next
// insertion-order proem to the stored value.
func (s IoDupSub) Add(top, body []byte) error {
	prefix := s.prefix(top)
	seek := append(append([]byte{}, prefix...), 0xFF)
	c := s.b.Cursor()
	var lastSuffix []byte
	k, _ := c.Seek(seek)
	if k == nil {
		k, _ = c.Last()
	} else {
		k, _ = c.Prev()
	}
	if k != nil && bytes.HasPrefix(k, prefix) {
		lastSuffix = k[len(prefix):]
	}
	next := uint32(0)
	if lastSuffix != nil {
		last, err := parseOrd(string(lastSuffix))
		if err != nil {
			return err
		}
		next = uint32(last) + 1
	}
	val := append(encodeProem(next), body...)
	return s.b.Put(ordKey(top, uint64(next)), val)
}

// GetAll returns every duplicate's body under top, in insertion order.
func (s IoDupSub) GetAll(top []byte) ([][]byte, error) {
	prefix := s.prefix(top)
	var out [][]byte
	c := s.b.Cursor()
	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		_, body, err := decodeProem(v)
		if err != nil {
			return nil, err
		}
		cp := make([]byte, len(body))
		copy(cp, body)
		out = append(out, cp)
	}
	return out, nil
}

// Count returns the number of duplicates under top.
func (s IoDupSub) Count(top []byte) int {
	prefix := s.prefix(top)
	n := 0
	c := s.b.Cursor()
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		n++
	}
	return n
}

// Has reports whether any duplicate under top has the given body.
func (s IoDupSub) Has(top, body []byte) bool {
	prefix := s.prefix(top)
	c := s.b.Cursor()
	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		_, b, err := decodeProem(v)
		if err == nil && bytes.Equal(b, body) {
			return true
		}
	}
	return false
}
