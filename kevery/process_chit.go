package kevery

import (
	"github.com/datatrails/go-datatrails-keri/codec"
	"github.com/datatrails/go-datatrails-keri/crypter"
	"github.com/datatrails/go-datatrails-keri/escrow"
	"github.com/datatrails/go-datatrails-keri/eventing"
	"github.com/datatrails/go-datatrails-keri/store"
)

// processChit handles a transferable validator receipt (vrc): it is
// accepted only if the embedded seal's last-establishment digest matches
// the receipter's *current* last_est — a seal against a superseded
// establishment is rejected outright, never escrowed. A vrc whose
// receipter this node has not seen a Kever for yet is escrowed into VRE to
// await the receipter's KEL arriving, since there is nothing stale about
// it, only early; so is one whose seal names an sn past the receipter's
// current head.
func (kv *Kevery) processChit(tx *store.Tx, frame *codec.Frame, ev *eventing.Event, sigers []crypter.Siger) (*Cue, error) {
	c := ev.Chit
	sn, err := (eventing.Header{S: c.S}).SeqNum()
	if err != nil {
		return nil, err
	}
	top := store.PrefixSnKey(c.I, sn)

	receipter, have := kv.Get(c.A.I)
	if !have {
		if err := escrow.Put(tx, store.VRE, top, encodeItem(frame.Raw, sigers)); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if c.A.D != receipter.LastEst.Digest {
		sealSn, serr := (eventing.Header{S: c.A.S}).SeqNum()
		if serr == nil && sealSn > receipter.Sn {
			if err := escrow.Put(tx, store.VRE, top, encodeItem(frame.Raw, sigers)); err != nil {
				return nil, err
			}
			return nil, nil
		}
		return nil, ErrStaleChit
	}

	ke, err := tx.On(store.KE)
	if err != nil {
		return nil, err
	}
	_, headDigest, found := ke.Last(top)
	if !found || string(headDigest) != c.D {
		if err := escrow.Put(tx, store.VRE, top, encodeItem(frame.Raw, sigers)); err != nil {
			return nil, err
		}
		return nil, nil
	}

	evt, err := tx.Val(store.EVT)
	if err != nil {
		return nil, err
	}
	raw, err := evt.Get([]byte(c.D))
	if err != nil {
		return nil, err
	}

	vrcs, err := tx.IoDup(store.VRCS)
	if err != nil {
		return nil, err
	}
	verifiedAny := false
	for _, s := range sigers {
		if s.Index < 0 || s.Index >= len(receipter.Verfers) {
			continue
		}
		if !s.Verify(receipter.Verfers[s.Index], raw) {
			continue
		}
		verifiedAny = true
		body := s.Qb64()
		if vrcs.Has([]byte(c.D), []byte(body)) {
			continue
		}
		if err := vrcs.Add([]byte(c.D), []byte(body)); err != nil {
			return nil, err
		}
	}
	if !verifiedAny {
		if err := escrow.Put(tx, store.VRE, top, encodeItem(frame.Raw, sigers)); err != nil {
			return nil, err
		}
	}
	return nil, nil
}
