package kever

import (
	"fmt"

	"github.com/datatrails/go-datatrails-keri/codec"
	"github.com/datatrails/go-datatrails-keri/crypter"
	"github.com/datatrails/go-datatrails-keri/eventing"
	"github.com/datatrails/go-datatrails-keri/store"
)

// Interact applies an ixn event: it never changes signing authority, only
// anchors application data against the current establishment, so on
// success only k.Sn, k.Digest and k.Kind move.
func (k *Kever) Interact(tx *store.Tx, frame *codec.Frame, ev *eventing.Event, sigers []crypter.Siger) error {
	if k.NonTransferable {
		return fmt.Errorf("%w", ErrNonTransferable)
	}
	if k.EstOnly {
		return fmt.Errorf("%w", ErrEstOnly)
	}
	if ev.Kind != eventing.KindIxn {
		return fmt.Errorf("%w: interaction requires ixn, got %s", ErrBadKind, ev.Kind)
	}
	e := ev.Interaction
	if e == nil {
		return fmt.Errorf("%w: interaction payload", ErrMissingField)
	}
	sn, err := e.SeqNum()
	if err != nil {
		return err
	}

	switch {
	case sn > k.Sn+1:
		return fmt.Errorf("%w: sn=%d, expected %d", ErrOutOfOrder, sn, k.Sn+1)
	case sn < k.Sn+1:
		return fmt.Errorf("%w: sn=%d at or behind accepted head %d", ErrStale, sn, k.Sn)
	}
	if e.P != k.Digest {
		return fmt.Errorf("%w: p=%q, expected %q", ErrBadPrior, e.P, k.Digest)
	}

	verified, err := verifySignatures(k.Verfers, sigers, frame.Raw)
	if err != nil {
		return err
	}
	if !k.Tholder.IsMet(verified) {
		return fmt.Errorf("%w: %s", ErrMissingSignature, e.D)
	}

	if err := k.commit(tx, e.D, frame.Raw, sigers, sn); err != nil {
		return err
	}

	k.Sn = sn
	k.Digest = e.D
	k.Kind = ev.Kind
	k.log.Debugf("kever: ixn at sn=%d d=%s", sn, e.D)
	return nil
}
