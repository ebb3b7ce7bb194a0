package kever

import (
	"fmt"

	"github.com/datatrails/go-datatrails-keri/codec"
	"github.com/datatrails/go-datatrails-keri/crypter"
	"github.com/datatrails/go-datatrails-keri/eventing"
	"github.com/datatrails/go-datatrails-keri/store"
)

// New constructs the Kever for an identifier's inception (icp) or
// delegated inception (dip) event: required-field and derivation checks,
// signature/threshold verification, witness-set validation, next-key
// commitment assignment, and the atomic EVT/SIGS/DTS/KE/FE commit at sn=0.
//
// A below-threshold-but-validly-signed event is reported as
// ErrMissingSignature: the caller is expected to escrow the digest into
// PSES and call New again once more signatures arrive, rather than treat
// it as a hard rejection. A dip event's Delegator field is populated but
// its delegator anchor is not checked here — that confirmation, and any
// PWES escrow it requires, is Kevery's responsibility.
func New(tx *store.Tx, frame *codec.Frame, ev *eventing.Event, sigers []crypter.Siger, withOpts ...Option) (*Kever, error) {
	opts := newDefaultOptions()
	for _, o := range withOpts {
		o(&opts)
	}

	if ev.Kind != eventing.KindIcp && ev.Kind != eventing.KindDip {
		return nil, fmt.Errorf("%w: inception requires icp or dip, got %s", ErrBadKind, ev.Kind)
	}
	e := ev.Establishment
	if e == nil {
		return nil, fmt.Errorf("%w: establishment payload", ErrMissingField)
	}
	if e.I == "" || e.D == "" || len(e.K) == 0 || len(e.Kt) == 0 || e.Bt == "" {
		return nil, fmt.Errorf("%w: icp", ErrMissingField)
	}
	sn, err := e.SeqNum()
	if err != nil {
		return nil, err
	}
	if sn != 0 {
		return nil, fmt.Errorf("%w: inception sn must be 0, got %d", ErrBadSeqNum, sn)
	}

	verfers, err := ParseVerfers(e.K)
	if err != nil {
		return nil, err
	}
	nonTransferable := len(verfers) == 1 && !verfers[0].Transferable()

	aid, err := crypter.DeriveAID(nonTransferable, verfers[0], opts.digestCode, frame.Kind, frame.Ked)
	if err != nil {
		return nil, err
	}
	if aid != e.I {
		return nil, fmt.Errorf("%w: i=%q derives to %q", ErrBadDerivation, e.I, aid)
	}

	tholder, err := ParseTholder(e.Kt)
	if err != nil {
		return nil, err
	}

	verified, err := verifySignatures(verfers, sigers, frame.Raw)
	if err != nil {
		return nil, err
	}
	if !tholder.IsMet(verified) {
		return nil, fmt.Errorf("%w: %s", ErrMissingSignature, e.D)
	}

	if hasDuplicates(e.B) {
		return nil, fmt.Errorf("%w: duplicate entry in b", ErrBadWitness)
	}
	bt, err := parseBt(e.Bt)
	if err != nil {
		return nil, err
	}
	if err := eventing.CheckToadBounds(bt, e.B); err != nil {
		return nil, err
	}

	var nexter *crypter.Nexter
	switch {
	case nonTransferable && e.N != "":
		return nil, fmt.Errorf("%w: non-transferable identifier commits no next key", ErrBadNextCommit)
	case e.N != "":
		n, err := crypter.ParseNexter(e.N)
		if err != nil {
			return nil, err
		}
		nexter = &n
	}

	delegator := ""
	if ev.Kind == eventing.KindDip {
		if e.Di == "" {
			return nil, fmt.Errorf("%w: dip requires di", ErrMissingField)
		}
		delegator = e.Di
	}

	k := &Kever{
		Prefix:          e.I,
		Sn:              0,
		Digest:          e.D,
		Kind:            ev.Kind,
		Tholder:         tholder,
		Verfers:         verfers,
		NextCommitment:  nexter,
		Witnesses:       e.B,
		Bt:              bt,
		LastEst:         LastEst{Sn: 0, Digest: e.D},
		EstOnly:         e.EstOnly(),
		NonTransferable: nonTransferable,
		Delegator:       delegator,
		digestCode:      opts.digestCode,
		codecKind:       frame.Kind,
		log:             opts.log,
	}

	if err := k.commit(tx, e.D, frame.Raw, sigers, 0); err != nil {
		return nil, err
	}
	k.log.Debugf("kever: %s inception at sn=0 d=%s", ev.Kind, e.D)
	return k, nil
}
