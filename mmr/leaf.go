package mmr

import "hash"

// Log is the storage felog's accumulator is built over: a flat, zero-based,
// append-only sequence of node values (leaves and backfilled interior
// nodes interleaved in post-order).
type Log interface {
	Get(i uint64) ([]byte, error)
	Append(value []byte) (uint64, error)
}

// MMRIndex returns the node index of the leafIndex'th leaf (leaves numbered
// consecutively, ignoring interior nodes).
func MMRIndex(leafIndex uint64) uint64 {
	sum := uint64(0)
	for leafIndex > 0 {
		h := bitLength(leafIndex)
		sum += (uint64(1) << h) - 1
		leafIndex -= uint64(1) << (h - 1)
	}
	return sum
}

// AddLeaf appends one leaf to log and back-fills any interior nodes that
// become completable as a result, returning the size of the log afterwards
// (also the index the next leaf will land at).
//
// Each time a node is added, if the position after it would sit higher in
// the tree, that means the pair just completed lets us immediately add their
// parent too - and the parent after that, and so on. Adding the second leaf
// is the smallest example:
//
//	0 1   <- leaf '1' just appended
//
//	 2    <- its height is higher than 1's, so we can append the parent too
//	/ \
//	0   1
func AddLeaf(log Log, hasher hash.Hash, leafDigest []byte) (uint64, error) {
	i, err := log.Append(leafDigest)
	if err != nil {
		return 0, err
	}

	height := uint64(0)
	for IndexHeight(i) > height {
		left := i - (uint64(2) << height)
		right := i - 1 // i - (2<<height) + siblingOffset(height) simplifies to i-1

		leftValue, err := log.Get(left)
		if err != nil {
			return 0, err
		}
		rightValue, err := log.Get(right)
		if err != nil {
			return 0, err
		}

		hasher.Reset()
		writeUint64(hasher, i+1) // commit to position, not index
		hasher.Write(leftValue)
		hasher.Write(rightValue)

		if i, err = log.Append(hasher.Sum(nil)); err != nil {
			return 0, err
		}
		height++
	}
	return i, nil
}
