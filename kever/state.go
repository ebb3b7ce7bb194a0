package kever

import (
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/datatrails/go-datatrails-keri/codec"
	"github.com/datatrails/go-datatrails-keri/crypter"
	"github.com/datatrails/go-datatrails-keri/eventing"
)

// LastEst anchors recovery admissibility and validator-receipt staleness
// checks to the sequence number and digest of the identifier's last
// establishment event.
type LastEst struct {
	Sn     uint64
	Digest string
}

// Kever is the in-memory current state for one identifier: the live
// projection of its KEL, advanced only by New (inception), Rotate and
// Interact, and kept strictly in step with what those calls have actually
// committed to the store.
type Kever struct {
	Prefix string
	Sn     uint64
	Digest string
	Kind   eventing.Kind

	Tholder crypter.Tholder
	Verfers []crypter.Verfer

	// NextCommitment is nil for a non-transferable identifier, or once a
	// rotation's own "n" is left empty (the identifier has abandoned
	// further rotation while remaining transferable in its history).
	NextCommitment *crypter.Nexter

	Witnesses []string
	Bt        int

	LastEst LastEst

	EstOnly bool

	// NonTransferable identifiers encode their single key directly in
	// Prefix and reject every event after inception.
	NonTransferable bool

	// Delegator is the delegating identifier's prefix for a dip/drt
	// establishment, empty otherwise. Confirming the delegator's anchoring
	// seal is Kevery's responsibility (PWES), not Kever's.
	Delegator string

	digestCode crypter.DigestCode
	codecKind  codec.Kind
	log        logger.Logger
}
