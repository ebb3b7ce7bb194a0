package escrow

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/datatrails/go-datatrails-keri/urkle"
)

// LDESRecord is a decoded, operator-facing view of one likely-duplicitous
// event escrow entry. A keripy node just logs these for manual review;
// this module additionally hands the operator an ExclusionProof they can
// check independently against the identifier's accepted digests at Sn,
// rather than trusting the log line.
type LDESRecord struct {
	Prefix string
	Sn     uint64
	Digest string

	// Root and ExclusionProof are the zero value when no proof could be
	// built (for instance, the accepted set was empty).
	Root           [urkle.HashBytes]byte
	ExclusionProof urkle.ExclusionProof
}

// digestKey maps a qb64 digest string onto the strictly-ordered uint64 key
// space Builder.InsertMonotone requires, by taking the leading 8 bytes of
// its SHA-256 hash. A collision between two distinct digests is
// astronomically unlikely and is reported rather than silently merged.
func digestKey(digest string) uint64 {
	h := sha256.Sum256([]byte(digest))
	return binary.BigEndian.Uint64(h[:8])
}

func digestLeaf(digest string) [urkle.HashBytes]byte {
	return sha256.Sum256([]byte(digest))
}

// BuildExclusionProof builds a one-shot Urkle trie over accepted (an
// identifier's set of accepted event digests at the sn under dispute) and
// proves candidate is absent from it. The trie is rebuilt fresh on every
// call rather than persisted: LDES entries are operator-review-only and
// rare, so the cost of rebuilding is never on a hot path.
func BuildExclusionProof(accepted []string, candidate string) (urkle.ExclusionProof, [urkle.HashBytes]byte, error) {
	if len(accepted) == 0 {
		return urkle.ExclusionProof{}, [urkle.HashBytes]byte{}, fmt.Errorf("escrow: cannot prove exclusion against an empty accepted set")
	}

	type keyed struct {
		key    uint64
		digest string
	}
	keys := make([]keyed, 0, len(accepted))
	for _, d := range accepted {
		keys = append(keys, keyed{digestKey(d), d})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].key < keys[j].key })
	for i := 1; i < len(keys); i++ {
		if keys[i].key == keys[i-1].key {
			return urkle.ExclusionProof{}, [urkle.HashBytes]byte{}, fmt.Errorf("escrow: digest key collision between %q and %q", keys[i-1].digest, keys[i].digest)
		}
	}

	leafCount := uint64(len(keys))
	leafTable := make([]byte, urkle.LeafTableBytes(leafCount))
	nodeStore := make([]byte, urkle.NodeStoreBytes(leafCount))
	b, err := urkle.NewBuilder(sha256.New(), leafTable, nodeStore)
	if err != nil {
		return urkle.ExclusionProof{}, [urkle.HashBytes]byte{}, err
	}
	for _, k := range keys {
		leaf := digestLeaf(k.digest)
		if _, err := b.InsertMonotone(k.key, leaf[:]); err != nil {
			return urkle.ExclusionProof{}, [urkle.HashBytes]byte{}, err
		}
	}
	root, rootHash, err := b.Finalize()
	if err != nil {
		return urkle.ExclusionProof{}, [urkle.HashBytes]byte{}, err
	}

	target := digestKey(candidate)
	proof, err := urkle.ProveExclusion(leafTable, nodeStore, root, target)
	if err != nil {
		return urkle.ExclusionProof{}, [urkle.HashBytes]byte{}, err
	}
	return proof, rootHash, nil
}

// VerifyExclusionProof is the operator-side check: it replays proof's
// membership path and confirms it resolves to root.
func VerifyExclusionProof(root [urkle.HashBytes]byte, proof urkle.ExclusionProof) (bool, error) {
	ok, _, _, _, err := urkle.VerifyExclusion(sha256.New(), root, proof)
	if err != nil {
		return false, err
	}
	return ok, nil
}
