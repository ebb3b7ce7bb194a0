// Package kevery is the stream processor: it parses a framed message off
// the wire, dispatches it by kind to the identifier's Kever (constructing
// one on first inception), and routes whatever Kever cannot yet accept
// into the matching escrow class instead of rejecting it outright.
//
// Kevery owns the process-scoped map of live Kevers and the escrow drains
// that periodically retry what has been filed; Kever itself never imports
// this package, and escrow never imports either, keeping the dependency
// graph a DAG (Store leaf-owned; Kevery owns the Kever map; Kever holds
// only a *store.Tx handle passed to it per call).
package kevery
