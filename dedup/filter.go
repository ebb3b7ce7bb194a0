package dedup

import (
	"crypto/sha256"
	"fmt"

	"github.com/datatrails/go-datatrails-keri/bloom"
)

const (
	// defaultBitsPerElement and defaultK give roughly a 1% false positive
	// rate, the standard choice at k = 0.7*(bits/element).
	defaultBitsPerElement = 10
	defaultK              = 7
)

// Filter is a fixed-capacity Bloom prefilter over digest-sized keys.
type Filter struct {
	bits *bloom.Filter
}

// New allocates a filter sized for capacity elements.
func New(capacity uint64) (*Filter, error) {
	if capacity == 0 {
		capacity = 1
	}
	bits, err := bloom.New(capacity, defaultBitsPerElement, defaultK)
	if err != nil {
		return nil, fmt.Errorf("dedup: %w", err)
	}
	return &Filter{bits: bits}, nil
}

// keyAndShard reduces an arbitrary-length key (a qb64 digest string's bytes,
// typically) to the fixed 32-byte element the bloom filter requires, and
// picks which of the 4 parallel bitsets it belongs to from the same hash.
func keyAndShard(key []byte) (elem []byte, filterIdx uint8) {
	sum := sha256.Sum256(key)
	return sum[:], sum[0] % bloom.Filters
}

// Insert records key as seen.
func (f *Filter) Insert(key []byte) error {
	elem, idx := keyAndShard(key)
	return f.bits.Insert(idx, elem)
}

// MaybeSeen reports whether key might already have been committed. false
// means key is definitely new; true means the caller must still check the
// store to be sure.
func (f *Filter) MaybeSeen(key []byte) (bool, error) {
	elem, idx := keyAndShard(key)
	return f.bits.MaybeContains(idx, elem)
}
