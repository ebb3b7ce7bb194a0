package mmr

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errNotFound = errors.New("mmr: test node not found")

// testLog is the in-memory mmr.Log used by every test in this package.
type testLog struct {
	t     *testing.T
	store map[uint64][]byte
	next  uint64
}

func newTestLog(t *testing.T) *testLog {
	return &testLog{t: t, store: make(map[uint64][]byte)}
}

func (l *testLog) Append(value []byte) (uint64, error) {
	l.store[l.next] = value
	l.next++
	return l.next, nil
}

func (l *testLog) Get(i uint64) ([]byte, error) {
	if v, ok := l.store[i]; ok {
		return v, nil
	}
	return nil, errNotFound
}

func (l *testLog) mustGet(i uint64) []byte {
	v, err := l.Get(i)
	require.NoError(l.t, err)
	return v
}

func hashNum(num uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, num)
	h := sha256.New()
	h.Write(b)
	return h.Sum(nil)
}

// newGeneratedLog builds an MMR of the given size by repeatedly calling
// AddLeaf with leaf digests chosen so the result matches newCanonicalLog's
// hand-built tree at any size it also covers.
func newGeneratedLog(t *testing.T, size uint64) *testLog {
	log := newTestLog(t)
	leafCount := LeafCount(size)
	for i := uint64(0); i < leafCount; i++ {
		_, err := AddLeaf(log, sha256.New(), hashNum(MMRIndex(i)))
		require.NoError(t, err)
	}
	return log
}

// newCanonicalLog hand-builds an MMR of size 39, where leaf hashes are the
// hash of the leaf's own postorder position. Any size < 39 is a valid
// prefix of this same tree, so smaller tests can just pretend it is that
// size.
//
//	4                         30
//	3              14                       29
//	2        6            13           21             28                37
//	1     2     5      9     12     17     20     24       27       33      36
//	0   0   1 3   4  7   8 10  11 15  16 18  19 22  23   25   26  31  32   34  35   38
func newCanonicalLog(t *testing.T) *testLog {
	log := &testLog{t: t, store: make(map[uint64][]byte), next: 39}

	put := func(i uint64, v []byte) { log.store[i] = v }
	hashPair := func(pos, i, j uint64) []byte {
		h := sha256.New()
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], pos)
		h.Write(b[:])
		h.Write(log.mustGet(i))
		h.Write(log.mustGet(j))
		return h.Sum(nil)
	}

	for _, i := range []uint64{0, 1, 3, 4, 7, 8, 10, 11, 15, 16, 18, 19, 22, 23, 25, 26, 31, 32, 34, 35, 38} {
		put(i, hashNum(i))
	}
	for _, pair := range [][3]uint64{{2, 0, 1}, {5, 3, 4}, {9, 7, 8}, {12, 10, 11}, {17, 15, 16}, {20, 18, 19}, {24, 22, 23}, {27, 25, 26}, {33, 31, 32}, {36, 34, 35}} {
		put(pair[0], hashPair(pair[0]+1, pair[1], pair[2]))
	}
	for _, pair := range [][3]uint64{{6, 2, 5}, {13, 9, 12}, {21, 17, 20}, {28, 24, 27}, {37, 33, 36}} {
		put(pair[0], hashPair(pair[0]+1, pair[1], pair[2]))
	}
	put(14, hashPair(15, 6, 13))
	put(29, hashPair(30, 21, 28))
	put(30, hashPair(31, 14, 29))

	return log
}
