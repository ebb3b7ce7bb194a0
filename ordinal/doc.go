// Package ordinal generates time-ordered, monotonic 64 bit ids for a single
// KERI node process.
//
// It is used to stamp each Cue a node.Node returns (see node.StampedCue)
// with a process-monotonic id.
//
// The generator itself is unchanged from its origin as a multi-tenant
// snowflake-id allocator: it still reserves low order bits for a worker id so
// that, if a node is ever sharded across processes sharing one store, ids
// remain unique. A single-process node fixes the worker id at 1 in an 8 bit
// worker field and keeps 16 sequence bits.
package ordinal

// The following properties hold for the generated ids:
//
//   - ids from one generator are unique and strictly increasing, so they give
//     a total order over every Cue the node has stamped.
//   - the high 40 bits hold the milliseconds since the commitment epoch, so
//     the order of ids follows the time they were generated.
//   - the 64 bit size keeps the id usable as an ordinary time-ordered integer
//     timestamp in logs and cues.
