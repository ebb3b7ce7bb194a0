package felog

import (
	"fmt"
	"hash"

	"github.com/datatrails/go-datatrails-keri/mmr"
	"github.com/datatrails/go-datatrails-keri/store"
	"lukechampine.com/blake3"
)

func newHasher() hash.Hash {
	return blake3.New(32, nil)
}

func bind(tx *store.Tx, prefix string) (nodeStore, error) {
	sub, err := tx.On(store.FELOG)
	if err != nil {
		return nodeStore{}, err
	}
	return nodeStore{sub: sub, prefix: []byte(prefix)}, nil
}

// Size returns the number of MMR nodes (leaves and interior) committed so
// far for prefix. A freshly inceptied identifier has size 0.
func Size(tx *store.Tx, prefix string) (uint64, error) {
	sub, err := tx.On(store.FELOG)
	if err != nil {
		return 0, err
	}
	return uint64(sub.Count([]byte(prefix))), nil
}

// Append extends prefix's MMR with one new leaf over leafDigest (the
// identifier's newest FE entry) and returns the leaf's 0-based index (its
// fn) and the MMR size after the add.
func Append(tx *store.Tx, prefix string, leafDigest []byte) (fn uint64, size uint64, err error) {
	ns, err := bind(tx, prefix)
	if err != nil {
		return 0, 0, err
	}
	before, err := Size(tx, prefix)
	if err != nil {
		return 0, 0, err
	}
	fn = mmr.LeafCount(before)

	size, err = mmr.AddLeaf(ns, newHasher(), leafDigest)
	if err != nil {
		return 0, 0, fmt.Errorf("felog: append leaf for %s: %w", prefix, err)
	}
	return fn, size, nil
}

// Root returns prefix's current bagged MMR root, or nil if no leaf has been
// appended yet.
func Root(tx *store.Tx, prefix string) ([]byte, error) {
	ns, err := bind(tx, prefix)
	if err != nil {
		return nil, err
	}
	size, err := Size(tx, prefix)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}
	return mmr.GetRoot(size, ns, newHasher())
}

// InclusionProof returns the bagged inclusion proof for the fn'th leaf
// against prefix's MMR as it stands at the current size.
func InclusionProof(tx *store.Tx, prefix string, fn uint64) ([][]byte, error) {
	ns, err := bind(tx, prefix)
	if err != nil {
		return nil, err
	}
	size, err := Size(tx, prefix)
	if err != nil {
		return nil, err
	}
	iNode := mmr.MMRIndex(fn)
	return mmr.InclusionProof(size, ns, newHasher(), iNode)
}

// VerifyInclusion checks that leafDigest's fn'th-leaf proof, produced by
// InclusionProof against an MMR of the given size, bags to root.
func VerifyInclusion(size uint64, fn uint64, leafDigest []byte, proof [][]byte, root []byte) bool {
	iNode := mmr.MMRIndex(fn)
	return mmr.VerifyInclusion(size, newHasher(), leafDigest, iNode, proof, root)
}
