/*
Package store is the durable key/value layer backing every log a node
keeps: EVT, SIGS, RCTS, VRCS, KE, FE, DTS, and the escrow tables.

# Sub-store patterns

Four access patterns are layered over a single bbolt environment:

  - ValSub — one value per explicit key (EVT, DTS).
  - IoSetSub — an insertion-ordered set under an apparent key, via a hidden
    32 hex digit ordinal suffix (SIGS, every escrow table).
  - OnSub — an ordinal-keyed append log, for KE's per-sn dup history and
    FE's first-seen ordinals.
  - IoDupSub — LMDB-dup-sort emulation via an insertion-order proem (RCTS,
    VRCS).

# Grounding

The bucket-per-log layout and functional-options Open are grounded on the
teacher's massifs package structure (one struct owning a handle to durable
storage, opened with `With...` options). bbolt was chosen, among the
example corpus's dependencies, as the closest available embedded ordered-KV
analogue to the LMDB environment spec.md's store section describes.
*/
package store
