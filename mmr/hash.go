package mmr

import (
	"encoding/binary"
	"hash"
)

// writeUint64 feeds value to hasher as 8 big-endian bytes. Interior node
// hashes commit to their own one-based position this way, so two equal-sized
// subtrees occurring at different places in the range never hash the same.
func writeUint64(hasher hash.Hash, value uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], value)
	hasher.Write(b[:])
}
