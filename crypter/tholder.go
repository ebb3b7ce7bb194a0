package crypter

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// ThresholdKind distinguishes the three signing threshold shapes a key
// event's "kt" field may carry.
type ThresholdKind int

const (
	// ThresholdSimple is a plain integer: at least N of the listed keys
	// must sign.
	ThresholdSimple ThresholdKind = iota
	// ThresholdWeighted assigns each key a fractional weight; signatures
	// are sufficient when their weights sum to at least 1.
	ThresholdWeighted
	// ThresholdClausal partitions the keys into ordered clauses, each with
	// its own weights; signatures are sufficient only when every clause's
	// weights (restricted to that clause's own keys) independently sum to
	// at least 1. This is a conjunction of weighted thresholds, letting a
	// group require, say, both "2 of 3 officers" and "1 of 2 auditors"
	// rather than a single flat weighted pool.
	ThresholdClausal
)

// Tholder evaluates whether a set of signing indices satisfies a signing
// threshold. big.Rat is used for weighted arithmetic because fractional
// weights ("1/2", "1/3") must be compared exactly; no ecosystem rational
// type was found among the example repos, and float64 cannot represent
// thirds exactly, so it is built directly on the standard library's
// math/big.
type Tholder struct {
	kind     ThresholdKind
	simple   int
	weighted []*big.Rat   // ThresholdWeighted: one weight per key, in key order
	clauses  [][]*big.Rat // ThresholdClausal: each inner slice is one clause's weights
}

// NewSimpleTholder builds a Tholder requiring at least n signatures.
func NewSimpleTholder(n int) (Tholder, error) {
	if n < 1 {
		return Tholder{}, fmt.Errorf("crypter: threshold must be at least 1, got %d", n)
	}
	return Tholder{kind: ThresholdSimple, simple: n}, nil
}

// NewWeightedTholder builds a Tholder from per-key fractional weight
// strings such as "1/2" or "1".
func NewWeightedTholder(weights []string) (Tholder, error) {
	rats, err := parseWeights(weights)
	if err != nil {
		return Tholder{}, err
	}
	return Tholder{kind: ThresholdWeighted, weighted: rats}, nil
}

// NewClausalTholder builds a Tholder from multiple weighted clauses, each
// covering a contiguous, disjoint range of the overall key list in the
// order the clauses are given.
func NewClausalTholder(clauses [][]string) (Tholder, error) {
	if len(clauses) == 0 {
		return Tholder{}, fmt.Errorf("crypter: clausal threshold needs at least one clause")
	}
	out := make([][]*big.Rat, len(clauses))
	for i, c := range clauses {
		rats, err := parseWeights(c)
		if err != nil {
			return Tholder{}, fmt.Errorf("crypter: clause %d: %w", i, err)
		}
		out[i] = rats
	}
	return Tholder{kind: ThresholdClausal, clauses: out}, nil
}

func parseWeights(weights []string) ([]*big.Rat, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("crypter: weighted threshold needs at least one weight")
	}
	out := make([]*big.Rat, len(weights))
	for i, w := range weights {
		r, ok := new(big.Rat).SetString(w)
		if !ok {
			return nil, fmt.Errorf("crypter: invalid weight %q", w)
		}
		if r.Sign() <= 0 {
			return nil, fmt.Errorf("crypter: weight %q must be positive", w)
		}
		out[i] = r
	}
	return out, nil
}

// Size is the number of keys this threshold is defined over.
func (t Tholder) Size() int {
	switch t.kind {
	case ThresholdWeighted:
		return len(t.weighted)
	case ThresholdClausal:
		n := 0
		for _, c := range t.clauses {
			n += len(c)
		}
		return n
	default:
		return 0 // Simple carries no fixed key count of its own
	}
}

// IsMet reports whether the key indices in signed (0-based, into the
// governing event's key list) satisfy the threshold.
func (t Tholder) IsMet(signed []int) bool {
	switch t.kind {
	case ThresholdSimple:
		return len(dedupeInts(signed)) >= t.simple
	case ThresholdWeighted:
		return sumWeights(t.weighted, signed, 0).Cmp(big.NewRat(1, 1)) >= 0
	case ThresholdClausal:
		offset := 0
		for _, clause := range t.clauses {
			if sumWeights(clause, signed, offset).Cmp(big.NewRat(1, 1)) < 0 {
				return false
			}
			offset += len(clause)
		}
		return true
	default:
		return false
	}
}

func sumWeights(weights []*big.Rat, signed []int, offset int) *big.Rat {
	signedSet := make(map[int]bool, len(signed))
	for _, i := range signed {
		signedSet[i] = true
	}
	sum := new(big.Rat)
	for i, w := range weights {
		if signedSet[offset+i] {
			sum.Add(sum, w)
		}
	}
	return sum
}

func dedupeInts(in []int) []int {
	seen := make(map[int]bool, len(in))
	out := in[:0:0]
	for _, i := range in {
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	return out
}

// Sith renders the canonical "kt" field value for this threshold: a bare
// hex string for Simple, a JSON array of weight strings for Weighted, or a
// JSON array of arrays for Clausal.
func (t Tholder) Sith() (any, error) {
	switch t.kind {
	case ThresholdSimple:
		return fmt.Sprintf("%x", t.simple), nil
	case ThresholdWeighted:
		out := make([]string, len(t.weighted))
		for i, w := range t.weighted {
			out[i] = w.RatString()
		}
		return out, nil
	case ThresholdClausal:
		out := make([][]string, len(t.clauses))
		for i, c := range t.clauses {
			row := make([]string, len(c))
			for j, w := range c {
				row[j] = w.RatString()
			}
			out[i] = row
		}
		return out, nil
	default:
		return nil, fmt.Errorf("crypter: unknown threshold kind")
	}
}

// SithBytes renders Sith in the canonical encoding used when folding the
// threshold into a next-key commitment digest.
func (t Tholder) SithBytes() ([]byte, error) {
	sith, err := t.Sith()
	if err != nil {
		return nil, err
	}
	if s, ok := sith.(string); ok {
		return []byte(s), nil
	}
	return json.Marshal(sith)
}
