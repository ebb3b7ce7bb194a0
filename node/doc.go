// Package node is the top of the programmatic API spec.md §6 describes:
// open_store, kevery.ingest(bytes), kevery.drain_escrows(), and
// kevers.get(prefix) -> state. It exists only to replace the source's
// module-level global dicts (Kevers, KELs, Escrows) with an explicit,
// per-process registry, per spec.md §9's design note — Node owns the
// Store and the Kevery (which in turn owns the KeverMap), and a process
// that wants more than one independent KERI node simply opens more than
// one Node against different store paths.
package node
