package eventing

import "errors"

var (
	ErrUnknownKind      = errors.New("eventing: unknown event kind")
	ErrMissingField     = errors.New("eventing: missing required field")
	ErrBadSeqNum        = errors.New("eventing: malformed sequence number")
	ErrBadWitnessCut    = errors.New("eventing: witness cut not in current set")
	ErrBadWitnessAdd    = errors.New("eventing: witness add collides with surviving set")
	ErrBadWitnessBounds = errors.New("eventing: witness threshold out of bounds")
)
