package kevery

import "errors"

var (
	// ErrNoSignatures is raised when a key event frame arrives with no
	// attached indexed signatures at all: unlike a below-threshold set,
	// this is never escrowable, since there is nothing to wait on.
	ErrNoSignatures = errors.New("kevery: key event carries no attached signatures")

	// ErrStaleChit signals a validator receipt sealed against an
	// establishment event the receipter has since superseded: rejected
	// outright, never escrowed, unless the receipter's own KEL hasn't
	// reached that point yet (in which case it is escrowed into VRE).
	ErrStaleChit = errors.New("kevery: validator receipt sealed against a superseded establishment")

	errShortTop = errors.New("kevery: escrow top key missing prefix|sn|digest separators")
)
