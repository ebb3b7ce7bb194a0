package kevery

import (
	"errors"

	"github.com/datatrails/go-datatrails-keri/codec"
	"github.com/datatrails/go-datatrails-keri/crypter"
	"github.com/datatrails/go-datatrails-keri/escrow"
	"github.com/datatrails/go-datatrails-keri/eventing"
	"github.com/datatrails/go-datatrails-keri/kever"
	"github.com/datatrails/go-datatrails-keri/store"
)

// processEvent dispatches one icp/rot/ixn/dip/drt frame: duplicate digests
// are discarded idempotently, a first-seen identifier is constructed via
// kever.New (which requires icp/dip), and every other case is routed
// through the identifier's existing Kever, falling back to the matching
// escrow class on a recoverable error.
func (kv *Kevery) processEvent(tx *store.Tx, frame *codec.Frame, ev *eventing.Event, sigers []crypter.Siger) (*Cue, error) {
	h := ev.Header()

	if dup, err := kv.alreadyCommitted(tx, h.D); err != nil {
		return nil, err
	} else if dup {
		kv.log.Debugf("processEvent: duplicate digest discarded prefix=%s d=%s", h.I, h.D)
		return nil, nil
	}

	sn, err := h.SeqNum()
	if err != nil {
		return nil, err
	}

	if ev.Kind.IsDelegated() {
		di := ev.Establishment.Di
		if di != "" {
			confirmed, derr := delegationConfirmed(tx, di, h.I, sn, h.D)
			if derr != nil {
				return nil, derr
			}
			if !confirmed {
				if err := escrow.Put(tx, store.PWES, store.PrefixSnKey(h.I, sn), encodeItem(frame.Raw, sigers)); err != nil {
					return nil, err
				}
				return nil, nil
			}
		}
	}

	k, have := kv.Get(h.I)
	if !have {
		if ev.Kind != eventing.KindIcp && ev.Kind != eventing.KindDip {
			if err := escrow.Put(tx, store.OOES, store.PrefixSnKey(h.I, sn), encodeItem(frame.Raw, sigers)); err != nil {
				return nil, err
			}
			return nil, nil
		}
		nk, err := kever.New(tx, frame, ev, sigers)
		if err != nil {
			if errors.Is(err, kever.ErrMissingSignature) {
				if perr := escrow.Put(tx, store.PSES, store.PrefixSnKey(h.I, sn), encodeItem(frame.Raw, sigers)); perr != nil {
					return nil, perr
				}
				return nil, nil
			}
			return nil, err
		}
		if err := kv.markCommitted(h.D); err != nil {
			return nil, err
		}
		kv.put(nk)
		return &Cue{Kind: CueReceipt, Prefix: nk.Prefix, Sn: 0, Digest: h.D, Event: ev.Kind}, nil
	}

	if ev.Kind == eventing.KindIcp || ev.Kind == eventing.KindDip {
		if err := escrow.Put(tx, store.LDES, store.PrefixSnKey(h.I, sn), encodeItem(frame.Raw, sigers)); err != nil {
			return nil, err
		}
		return nil, nil
	}

	var applyErr error
	switch ev.Kind {
	case eventing.KindRot, eventing.KindDrt:
		applyErr = k.Rotate(tx, frame, ev, sigers)
	case eventing.KindIxn:
		applyErr = k.Interact(tx, frame, ev, sigers)
	default:
		applyErr = kever.ErrBadKind
	}

	if applyErr != nil {
		switch {
		case errors.Is(applyErr, kever.ErrOutOfOrder):
			if err := escrow.Put(tx, store.OOES, store.PrefixSnKey(h.I, sn), encodeItem(frame.Raw, sigers)); err != nil {
				return nil, err
			}
			return nil, nil
		case errors.Is(applyErr, kever.ErrMissingSignature):
			if err := escrow.Put(tx, store.PSES, store.PrefixSnKey(h.I, sn), encodeItem(frame.Raw, sigers)); err != nil {
				return nil, err
			}
			return nil, nil
		case errors.Is(applyErr, kever.ErrStale):
			return nil, applyErr
		default:
			if err := escrow.Put(tx, store.LDES, store.PrefixSnKey(h.I, sn), encodeItem(frame.Raw, sigers)); err != nil {
				return nil, err
			}
			return nil, applyErr
		}
	}

	if err := kv.markCommitted(h.D); err != nil {
		return nil, err
	}
	return &Cue{Kind: CueReceipt, Prefix: k.Prefix, Sn: k.Sn, Digest: h.D, Event: ev.Kind}, nil
}

// alreadyCommitted checks the seen-digest prefilter first and only falls
// through to the authoritative EVT lookup when the filter cannot rule the
// digest out.
func (kv *Kevery) alreadyCommitted(tx *store.Tx, digest string) (bool, error) {
	maybe, err := kv.seen.MaybeSeen([]byte(digest))
	if err != nil {
		return false, err
	}
	if !maybe {
		return false, nil
	}
	evt, err := tx.Val(store.EVT)
	if err != nil {
		return false, err
	}
	return evt.Has([]byte(digest)), nil
}

func (kv *Kevery) markCommitted(digest string) error {
	return kv.seen.Insert([]byte(digest))
}
