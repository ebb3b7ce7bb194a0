package kever

import (
	"fmt"

	"github.com/datatrails/go-datatrails-keri/codec"
	"github.com/datatrails/go-datatrails-keri/crypter"
	"github.com/datatrails/go-datatrails-keri/eventing"
	"github.com/datatrails/go-datatrails-keri/store"
)

// Rotate applies a rot/drt event against k's current state.
//
// The incoming sn against k.Sn and k.LastEst.Sn distinguishes three cases:
// a normal advance (sn == k.Sn+1, chaining from k.Digest), an out-of-order
// arrival (sn > k.Sn+1, reported as ErrOutOfOrder for the caller to escrow
// into OOES), or a recovery (k.LastEst.Sn < sn <= k.Sn). Recovery is
// admissible only when the current head is itself an interaction event:
// every event since the last establishment is then being superseded,
// never another establishment (source-preserved restriction; see the
// open-question note in DESIGN.md).
func (k *Kever) Rotate(tx *store.Tx, frame *codec.Frame, ev *eventing.Event, sigers []crypter.Siger) error {
	if k.NonTransferable {
		return fmt.Errorf("%w", ErrNonTransferable)
	}
	if k.NextCommitment == nil {
		return fmt.Errorf("%w", ErrNotTransferable)
	}
	if ev.Kind != eventing.KindRot && ev.Kind != eventing.KindDrt {
		return fmt.Errorf("%w: rotation requires rot or drt, got %s", ErrBadKind, ev.Kind)
	}
	e := ev.Establishment
	if e == nil {
		return fmt.Errorf("%w: establishment payload", ErrMissingField)
	}
	sn, err := e.SeqNum()
	if err != nil {
		return err
	}

	switch {
	case sn == k.Sn+1:
		if e.P != k.Digest {
			return fmt.Errorf("%w: p=%q, expected %q", ErrBadPrior, e.P, k.Digest)
		}
	case sn > k.Sn+1:
		return fmt.Errorf("%w: sn=%d, expected %d", ErrOutOfOrder, sn, k.Sn+1)
	default:
		if sn <= k.LastEst.Sn || k.Kind != eventing.KindIxn {
			return fmt.Errorf("%w: sn=%d not a valid supersession of (%d,%d]", ErrBadRecovery, sn, k.LastEst.Sn, k.Sn)
		}
		ke, err := tx.On(store.KE)
		if err != nil {
			return err
		}
		_, priorDigest, found := ke.Last(store.PrefixSnKey(k.Prefix, sn-1))
		if !found || string(priorDigest) != e.P {
			return fmt.Errorf("%w: p=%q, expected %q", ErrBadPrior, e.P, priorDigest)
		}
	}

	tholder, err := ParseTholder(e.Kt)
	if err != nil {
		return err
	}
	verfers, err := ParseVerfers(e.K)
	if err != nil {
		return err
	}
	if !k.NextCommitment.Verify(tholder, verfers) {
		return fmt.Errorf("%w", ErrBadNextCommit)
	}

	verified, err := verifySignatures(verfers, sigers, frame.Raw)
	if err != nil {
		return err
	}

	newWitnesses, err := eventing.ApplyWitnessTransform(k.Witnesses, e.Br, e.Ba)
	if err != nil {
		return err
	}
	bt, err := parseBt(e.Bt)
	if err != nil {
		return err
	}
	if err := eventing.CheckToadBounds(bt, newWitnesses); err != nil {
		return err
	}

	if !tholder.IsMet(verified) {
		return fmt.Errorf("%w: %s", ErrMissingSignature, e.D)
	}

	var nexter *crypter.Nexter
	if e.N != "" {
		n, err := crypter.ParseNexter(e.N)
		if err != nil {
			return err
		}
		nexter = &n
	}

	if err := k.commit(tx, e.D, frame.Raw, sigers, sn); err != nil {
		return err
	}

	k.Sn = sn
	k.Digest = e.D
	k.Kind = ev.Kind
	k.Tholder = tholder
	k.Verfers = verfers
	k.NextCommitment = nexter
	k.Witnesses = newWitnesses
	k.Bt = bt
	k.LastEst = LastEst{Sn: sn, Digest: e.D}
	k.log.Debugf("kever: %s at sn=%d d=%s", ev.Kind, sn, e.D)
	return nil
}
