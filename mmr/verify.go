package mmr

import (
	"bytes"
	"hash"
)

// VerifyInclusion checks that leafDigest's proof, produced by InclusionProof
// against a log of the given size, folds up to root.
func VerifyInclusion(size uint64, hasher hash.Hash, leafDigest []byte, i uint64, proof [][]byte, root []byte) bool {
	ps := peaks(size)
	isPeak := make(map[uint64]bool, len(ps))

	// the degenerate case: i is itself a perfect peak and the leaf hash is
	// already the (singleton) bagged root.
	if len(proof) == 0 {
		return bytes.Equal(leafDigest, root)
	}

	height := IndexHeight(i)
	pos := i + 1
	current := leafDigest

	var localPeak uint64
	for _, p := range ps {
		if localPeak == 0 && p >= pos {
			localPeak = p
		}
		isPeak[p] = true
	}

	for _, step := range proof {
		hasher.Reset()

		if isPeak[pos] {
			// pos has reached a peak: the remaining steps bag peaks
			// together rather than climb a local merkle path.
			if pos == ps[len(ps)-1] {
				hasher.Write(current)
				hasher.Write(step)
			} else {
				hasher.Write(step)
				hasher.Write(current)
				pos = ps[len(ps)-1]
			}
			current = hasher.Sum(nil)
			if bytes.Equal(current, root) {
				return true
			}
			continue
		}

		if posHeight(pos+1) > height {
			// right child: its parent is immediately after
			pos++
			if pos <= localPeak {
				writeUint64(hasher, pos)
			}
			hasher.Write(step)
			hasher.Write(current)
		} else {
			// left child: its parent is after its right sibling
			pos += uint64(2) << height
			if pos <= localPeak {
				writeUint64(hasher, pos)
			}
			hasher.Write(current)
			hasher.Write(step)
		}
		current = hasher.Sum(nil)
		if bytes.Equal(current, root) {
			return true
		}
		height++
	}
	return false
}
