package mmr

import (
	"hash"
	"slices"
)

// GetRoot returns the single "bagged" root of the log at the given size:
// all peaks folded together into one hash, highest peak first. nil if size
// is not a valid MMR size.
func GetRoot(size uint64, log Log, hasher hash.Hash) ([]byte, error) {
	return bagPeaksFrom(log, hasher, 0, peaks(size))
}

// InclusionProof returns the proof that the node at index i is included in
// the log's bagged root at the given size. The proof is laid out as:
//
//	[local-peak-path..., right-sibling-bag (if any), left-peaks (reversed)]
//
// Verifying it means first recreating the peak that contains i from the
// local path, then folding in whatever is to its right, then whatever is to
// its left, in that order - which is exactly the order GetRoot bags peaks
// in, run outward from i's own peak instead of from the first one.
func InclusionProof(size uint64, log Log, hasher hash.Hash, i uint64) ([][]byte, error) {
	localPath, localPeak, err := localPeakProof(size, log, i)
	if err != nil {
		return nil, err
	}

	ps := peaks(size)

	rightBag, err := bagPeaksFrom(log, hasher, localPeak+1, ps)
	if err != nil {
		return nil, err
	}
	proof := localPath
	if rightBag != nil {
		proof = append(proof, rightBag)
	}

	leftPeaks, err := peaksBefore(log, localPeak+1, ps)
	if err != nil {
		return nil, err
	}
	slices.Reverse(leftPeaks)
	return append(proof, leftPeaks...), nil
}

// localPeakProof collects the sibling path from index i up to the peak of
// the subtree containing it, returning that path and the peak's position.
func localPeakProof(size uint64, log Log, i uint64) ([][]byte, uint64, error) {
	var proof [][]byte
	height := IndexHeight(i)

	for i < size {
		if IndexHeight(i+1) > IndexHeight(i) {
			sibling := i - siblingOffset(height)
			if sibling >= size {
				break
			}
			value, err := log.Get(sibling)
			if err != nil {
				return nil, 0, err
			}
			proof = append(proof, value)
			i++
		} else {
			sibling := i + siblingOffset(height)
			if sibling >= size {
				break
			}
			value, err := log.Get(sibling)
			if err != nil {
				return nil, 0, err
			}
			proof = append(proof, value)
			i += uint64(2) << height
		}
		height++
	}
	return proof, i, nil
}

// bagPeaksFrom folds the peaks in ps strictly after pos into one hash,
// working from the right-most (smallest) peak towards pos so the result
// matches the order VerifyInclusion rebuilds it in. Returns nil if there
// are no such peaks.
func bagPeaksFrom(log Log, hasher hash.Hash, pos uint64, ps []uint64) ([]byte, error) {
	var values [][]byte
	for _, p := range ps {
		if p <= pos {
			continue
		}
		v, err := log.Get(p - 1)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return foldPeaks(hasher, values), nil
}

// peaksBefore collects the peaks in ps strictly before pos, left to right.
func peaksBefore(log Log, pos uint64, ps []uint64) ([][]byte, error) {
	var values [][]byte
	for _, p := range ps {
		if p >= pos {
			break
		}
		v, err := log.Get(p - 1)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// foldPeaks combines peakValues, highest first, into a single bagged root by
// repeatedly hashing the two lowest together. MUTATES peakValues.
func foldPeaks(hasher hash.Hash, peakValues [][]byte) []byte {
	for len(peakValues) > 1 {
		n := len(peakValues)
		right, left := peakValues[n-1], peakValues[n-2]
		peakValues = peakValues[:n-2]

		hasher.Reset()
		hasher.Write(right)
		hasher.Write(left)
		peakValues = append(peakValues, hasher.Sum(nil))
	}
	if len(peakValues) > 0 {
		return peakValues[0]
	}
	return nil
}
