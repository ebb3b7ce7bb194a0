// Package escrow is the storage layer for the six pending-event classes a
// Kevery files work into when it cannot accept a frame outright: OOES
// (out-of-order), PSES (partial signature), URES (unreceipted), LDES
// (likely duplicitous), VRE (unverified validator receipt) and PWES
// (partial witness/delegation, this module's extension of the source's
// five classes).
//
// Each class is an IoSetSub keyed by a compound (prefix, sn[, digest]) top
// key (see store.PrefixSnKey/PrefixSnDigestKey), holding one or more
// time-stamped payloads. escrow itself never decides when an entry should
// be retried: that trigger logic (current.sn advancing, a fresh signature
// frame arriving, a receipter's KEL catching up) belongs to whatever
// drives the drain, so escrow stays a leaf dependency of kevery exactly as
// store is a leaf dependency of kever.
package escrow
