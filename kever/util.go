package kever

import (
	"fmt"
	"strconv"
)

func parseBt(hex string) (int, error) {
	n, err := strconv.ParseInt(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("kever: malformed bt %q: %w", hex, err)
	}
	return int(n), nil
}

func hasDuplicates(ss []string) bool {
	seen := make(map[string]bool, len(ss))
	for _, s := range ss {
		if seen[s] {
			return true
		}
		seen[s] = true
	}
	return false
}
