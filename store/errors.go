package store

import "errors"

var (
	// ErrNotFound is returned by Get/GetOn when the key is absent. Callers
	// that treat absence as a normal outcome (escrow lookups, KE probes)
	// check for it with errors.Is rather than treating it as an IO error.
	ErrNotFound = errors.New("store: key not found")

	// ErrOrdinalOverflow is returned by AppendOn/Append when the next
	// ordinal for top would pass the largest uint64 (maxOrd), the limit of
	// the ordinal counter. In practice this never fires; it exists so the overflow is a
	// checked error rather than silently wrapping.
	ErrOrdinalOverflow = errors.New("store: ordinal space exhausted for key")

	// ErrBucketMissing signals Open failed to create or open one of the
	// named sub-stores; this is always a fatal, non-retryable IO error.
	ErrBucketMissing = errors.New("store: named bucket missing")
)
