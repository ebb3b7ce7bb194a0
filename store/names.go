package store

// Sub-store names, each a top-level bbolt bucket. These are the exact names
// spec.md's data model lists in §3 "Logs", plus PWES (partial witness /
// delegation escrow, SPEC_FULL's sixth escrow class).
var bucketNames = []string{
	EVT, SIGS, RCTS, VRCS, KE, FE, DTS,
	OOES, PSES, URES, LDES, VRE, PWES,
	FELOG,
}

const (
	EVT  = "evt"  // digest -> raw event bytes (ValSub)
	SIGS = "sigs" // digest -> ordered set of indexed signatures (IoSetSub)
	RCTS = "rcts" // digest -> non-transferable receipt couplets (IoDupSub)
	VRCS = "vrcs" // digest -> transferable validator receipt triplets (IoDupSub)
	KE   = "ke"   // (prefix, sn) -> digest of accepted head, dup history (OnSub)
	FE   = "fe"   // (prefix, fn) -> digest, monotone first-seen order (OnSub)
	DTS  = "dts"  // digest -> timestamp of first sight (ValSub)

	OOES = "ooes" // (pre, sn) -> frame + sigers, out-of-order escrow (IoSetSub)
	PSES = "pses" // (pre, sn) -> frame + sigers, partial-signature escrow (IoSetSub)
	URES = "ures" // (pre, sn, d) -> receipt couplet bytes, unreceipted escrow (IoSetSub)
	LDES = "ldes" // (pre, sn) -> frame + sigers, likely-duplicitous escrow (IoSetSub)
	VRE  = "vre"  // (pre, sn) -> chit bytes, unverified validator receipt escrow (IoSetSub)
	PWES = "pwes" // (pre, sn) -> frame + sigers, partial witness / delegation escrow (IoSetSub)

	// FELOG holds, per identifier prefix, the full MMR node array (leaves
	// and back-filled interior nodes) over that identifier's FE history.
	// It is keyed the same way as FE but is not FE itself: FE holds exactly
	// one entry per accepted event, while an MMR's node count grows faster
	// than its leaf count as interior nodes are back-filled.
	FELOG = "felog" // (prefix, mmr index) -> node hash (OnSub)
)
