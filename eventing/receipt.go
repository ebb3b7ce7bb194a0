package eventing

// Receipt is the rct payload: I/S/D name the receipted event rather than
// describing the receipt itself (a receipt is never itself digested or
// chained — its authority comes entirely from the non-transferable
// signer couplets attached alongside it).
type Receipt struct {
	V string `json:"v"`
	T string `json:"t"`
	I string `json:"i"`
	S string `json:"s"`
	D string `json:"d"`
}

// Chit is the vrc payload: a transferable validator receipt. A carries the
// receipter's seal of its own last establishment event, which the
// receiving Kevery requires to match the receipter's *current* last_est —
// a chit sealed against a stale last_est is rejected, not merely escrowed.
type Chit struct {
	V string `json:"v"`
	T string `json:"t"`
	I string `json:"i"`
	S string `json:"s"`
	D string `json:"d"`
	A Seal   `json:"a"`
}
