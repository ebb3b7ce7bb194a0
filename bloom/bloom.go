package bloom

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
)

const (
	// ValueBytes is the fixed element width: a SHA-256 digest.
	ValueBytes = 32

	// Filters is the number of parallel, independently-sharded bitsets.
	Filters uint8 = 4

	filterDomain = 0xB0
)

var (
	ErrBadElemSize    = errors.New("bloom: element must be 32 bytes")
	ErrBadFilterIndex = errors.New("bloom: invalid filter index")
	ErrBadCapacity    = errors.New("bloom: capacity and bitsPerElement must be > 0")
	ErrSizeOverflow   = errors.New("bloom: requested filter size overflows uint32")
)

// Filter is Filters independent bitsets of identical size, each addressed
// by its own double-hashed index into an element.
type Filter struct {
	k       uint8
	mBits   uint64
	bitsets [Filters][]byte
}

// New sizes a filter for capacity elements at bitsPerElement bits each,
// using k hash rounds per Insert/MaybeContains call.
func New(capacity uint64, bitsPerElement uint64, k uint8) (*Filter, error) {
	if capacity == 0 || bitsPerElement == 0 {
		return nil, ErrBadCapacity
	}
	mBits := capacity * bitsPerElement
	if mBits == 0 || mBits > uint64(^uint32(0)) {
		return nil, ErrSizeOverflow
	}

	f := &Filter{k: k, mBits: mBits}
	bitsetBytes := (mBits + 7) / 8
	for i := range f.bitsets {
		f.bitsets[i] = make([]byte, bitsetBytes)
	}
	return f, nil
}

// Insert sets elem's bits in bitset filterIdx.
func (f *Filter) Insert(filterIdx uint8, elem []byte) error {
	bitset, h1, h2, err := f.locate(filterIdx, elem)
	if err != nil {
		return err
	}
	for i := uint64(0); i < uint64(f.k); i++ {
		j := (h1 + i*h2) % f.mBits
		bitset[j>>3] |= 1 << (j & 7)
	}
	return nil
}

// MaybeContains reports whether elem's bits are all set in bitset
// filterIdx. false means elem was definitely never inserted there.
func (f *Filter) MaybeContains(filterIdx uint8, elem []byte) (bool, error) {
	bitset, h1, h2, err := f.locate(filterIdx, elem)
	if err != nil {
		return false, err
	}
	for i := uint64(0); i < uint64(f.k); i++ {
		j := (h1 + i*h2) % f.mBits
		if bitset[j>>3]&(1<<(j&7)) == 0 {
			return false, nil
		}
	}
	return true, nil
}

func (f *Filter) locate(filterIdx uint8, elem []byte) (bitset []byte, h1, h2 uint64, err error) {
	if filterIdx >= Filters {
		return nil, 0, 0, ErrBadFilterIndex
	}
	if len(elem) != ValueBytes {
		return nil, 0, 0, ErrBadElemSize
	}
	h1, h2 = hashPair(filterIdx, elem)
	return f.bitsets[filterIdx], h1, h2, nil
}

// hashPair derives two independent hash values for elem from a single
// SHA-256 call, domain-separated per filter so the same digest lands on
// unrelated bits in each of the 4 bitsets.
func hashPair(filterIdx uint8, elem []byte) (h1, h2 uint64) {
	var buf [1 + 1 + ValueBytes]byte
	buf[0] = filterDomain
	buf[1] = filterIdx
	copy(buf[2:], elem)
	sum := sha256.Sum256(buf[:])
	h1 = binary.BigEndian.Uint64(sum[0:8])
	h2 = binary.BigEndian.Uint64(sum[8:16])
	if h2 == 0 {
		h2 = 1
	}
	return h1, h2
}
