package kevery

import (
	"github.com/datatrails/go-datatrails-keri/crypter"
	"github.com/datatrails/go-datatrails-keri/escrow"
	"github.com/datatrails/go-datatrails-keri/eventing"
	"github.com/datatrails/go-datatrails-keri/store"
)

// processReceipt handles a non-transferable rct: if the receipted event is
// already the accepted head at (pre, sn), every couplet whose Cigar
// verifies against its paired Verfer is written to RCTS; otherwise the raw
// couplets are escrowed into URES to await that event's acceptance.
func (kv *Kevery) processReceipt(tx *store.Tx, ev *eventing.Event, cigars []crypter.Cigar) (*Cue, error) {
	r := ev.Receipt
	sn, err := (eventing.Header{S: r.S}).SeqNum()
	if err != nil {
		return nil, err
	}

	ke, err := tx.On(store.KE)
	if err != nil {
		return nil, err
	}
	_, headDigest, found := ke.Last(store.PrefixSnKey(r.I, sn))
	if !found || string(headDigest) != r.D {
		top := store.PrefixSnDigestKey(r.I, sn, r.D)
		for _, c := range cigars {
			if err := escrow.Put(tx, store.URES, top, []byte(c.CoupletQb64())); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	evt, err := tx.Val(store.EVT)
	if err != nil {
		return nil, err
	}
	raw, err := evt.Get([]byte(r.D))
	if err != nil {
		return nil, err
	}

	rcts, err := tx.IoDup(store.RCTS)
	if err != nil {
		return nil, err
	}
	for _, c := range cigars {
		if !c.Verify(raw) {
			continue
		}
		if rcts.Has([]byte(r.D), []byte(c.CoupletQb64())) {
			continue
		}
		if err := rcts.Add([]byte(r.D), []byte(c.CoupletQb64())); err != nil {
			return nil, err
		}
	}
	return nil, nil
}
