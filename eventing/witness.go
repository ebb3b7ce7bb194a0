package eventing

import "fmt"

// ApplyWitnessTransform computes the rotated witness set: br cut from
// current, then ba added to the survivors. It enforces invariant 6: br must
// be a subset of current, ba must be disjoint from the survivors, and the
// resulting |current| - |br| + |ba| size must hold exactly.
func ApplyWitnessTransform(current, br, ba []string) ([]string, error) {
	curSet := toSet(current)
	brSet := toSet(br)
	for _, w := range br {
		if !curSet[w] {
			return nil, fmt.Errorf("%w: %q", ErrBadWitnessCut, w)
		}
	}

	survivors := make([]string, 0, len(current))
	survivorSet := make(map[string]bool, len(current))
	for _, w := range current {
		if brSet[w] {
			continue
		}
		survivors = append(survivors, w)
		survivorSet[w] = true
	}

	baSet := toSet(ba)
	if len(baSet) != len(ba) {
		return nil, fmt.Errorf("%w: duplicate entries in ba", ErrBadWitnessAdd)
	}
	for _, w := range ba {
		if survivorSet[w] {
			return nil, fmt.Errorf("%w: %q", ErrBadWitnessAdd, w)
		}
	}

	result := append(survivors, ba...)
	if len(result) != len(current)-len(brSet)+len(baSet) {
		return nil, fmt.Errorf("%w: size mismatch after witness transform", ErrBadWitnessBounds)
	}
	return result, nil
}

// CheckToadBounds enforces bt's relationship to the witness set size: zero
// iff the set is empty, otherwise between 1 and len(witnesses) inclusive.
func CheckToadBounds(bt int, witnesses []string) error {
	n := len(witnesses)
	if n == 0 {
		if bt != 0 {
			return fmt.Errorf("%w: bt=%d with no witnesses", ErrBadWitnessBounds, bt)
		}
		return nil
	}
	if bt < 1 || bt > n {
		return fmt.Errorf("%w: bt=%d out of [1,%d]", ErrBadWitnessBounds, bt, n)
	}
	return nil
}

func toSet(ss []string) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}
