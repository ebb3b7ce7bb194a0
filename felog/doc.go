// Package felog accumulates one identifier's first-seen event history into
// a Merkle Mountain Range, so that a node can issue and verify inclusion
// proofs over the order events were actually first witnessed in (the FE
// log), on top of mmr's append-only index arithmetic; it has no consistency
// proofs between two roots.
//
// FE itself (see store.FE) already holds the append-only fn -> digest
// mapping Kever commits to. felog does not replace it: it runs a second,
// per-identifier append log (store.FELOG) of MMR node hashes built over the
// same sequence of digests, the way go-merklelog's massifs build one MMR per
// log segment over their own leaf sequence.
package felog
