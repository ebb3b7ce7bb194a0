package kever

import "errors"

var (
	ErrMissingField    = errors.New("kever: missing required field")
	ErrBadKind         = errors.New("kever: unexpected event kind")
	ErrBadSeqNum       = errors.New("kever: malformed sequence number")
	ErrBadDerivation   = errors.New("kever: identifier does not match inception derivation")
	ErrBadPrior        = errors.New("kever: prior digest does not chain to accepted head")
	ErrBadSignature    = errors.New("kever: signature does not verify")
	ErrBadNextCommit   = errors.New("kever: rotation keys do not match prior next commitment")
	ErrBadRecovery     = errors.New("kever: recovery not admissible over this range")
	ErrBadWitness      = errors.New("kever: malformed witness set")
	ErrNonTransferable = errors.New("kever: non-transferable identifier accepts no further events")
	ErrNotTransferable = errors.New("kever: identifier has no next-key commitment to rotate against")
	ErrEstOnly         = errors.New("kever: identifier accepts establishment events only")
	ErrStale           = errors.New("kever: event at or behind the accepted sequence number")

	// ErrOutOfOrder signals the caller should escrow the event into OOES
	// and retry once the identifier's accepted sn catches up.
	ErrOutOfOrder = errors.New("kever: sequence number ahead of accepted head")

	// ErrMissingSignature signals every attached signature verified but
	// their combined weight does not meet the signing threshold; the
	// caller should escrow the digest into PSES and retry once more
	// signatures arrive.
	ErrMissingSignature = errors.New("kever: signatures valid but threshold not met")
)
