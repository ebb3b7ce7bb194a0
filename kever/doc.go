// Package kever implements the per-identifier key event state machine: the
// in-memory current state for one AID, advanced by New (inception),
// Rotate and Interact, each enforcing the cryptographic and ordering
// invariants a KEL must hold and committing accepted events to the store
// in one write transaction.
package kever
