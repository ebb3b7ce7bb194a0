// Package dedup provides a node-lifetime prefilter over every digest this
// node has already committed to EVT, so Kevery and the escrow drains can
// skip a store round trip for the common case of a frame that cannot
// possibly be new. It is a thin, fixed-capacity wrapper over bloom's 4-way
// format: each key is sharded to one of the four bitsets by its own hash,
// so a single Insert or MaybeSeen call touches only one quarter of the
// region.
//
// A false "maybe seen" is expected and harmless: the caller always follows
// up with the authoritative EVT lookup. A false "definitely not seen"
// would silently drop a duplicate's detection and must never happen; the
// underlying format guarantees it cannot.
package dedup
