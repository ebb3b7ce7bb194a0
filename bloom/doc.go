// Package bloom is a 4-way Bloom filter used as the dedup prefilter over
// committed event digests.
//
// If the filter says "definitely not present", the digest has never been
// inserted. If it says "maybe present", the caller must still check the
// authoritative store; false positives are expected, false negatives are
// not. The filter is built once per process from a known capacity and
// lives only as long as the node does, so there is no on-disk format to
// version here: a persisted transparency log would need a stable wire
// layout to survive across writer restarts, but dedup's filter is rebuilt
// from scratch every time the node that owns it starts.
//
// The filter holds 4 independent bitsets and every Insert or MaybeContains
// call names the one it touches, so a single call only ever touches one
// quarter of the filter's memory; dedup picks the bitset from the first
// byte of the key's own hash.
package bloom
