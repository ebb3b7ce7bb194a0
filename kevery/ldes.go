package kevery

import (
	"github.com/datatrails/go-datatrails-keri/codec"
	"github.com/datatrails/go-datatrails-keri/escrow"
	"github.com/datatrails/go-datatrails-keri/eventing"
	"github.com/datatrails/go-datatrails-keri/store"
)

// ListLDES returns every likely-duplicitous event currently escrowed for
// prefix, each decorated with a proof that its digest is absent from the
// set of digests KE actually accepted at its sn — the operator-facing
// surface DrainEscrows deliberately never auto-resolves.
func (kv *Kevery) ListLDES(prefix string) ([]escrow.LDESRecord, error) {
	var records []escrow.LDESRecord
	err := kv.store.View(func(tx *store.Tx) error {
		ke, err := tx.On(store.KE)
		if err != nil {
			return err
		}
		return escrow.IterateAll(tx, store.LDES, func(top []byte, e escrow.Entry) error {
			pre, sn, serr := splitPrefixSn(top)
			if serr != nil || pre != prefix {
				return nil
			}
			raw, _, derr := decodeItem(e.Payload)
			if derr != nil {
				return nil
			}
			frame, _, perr := codec.Parse(raw)
			if perr != nil {
				return nil
			}
			ev, eerr := eventing.Decode(frame)
			if eerr != nil {
				return nil
			}
			digest := ev.Header().D
			rec := escrow.LDESRecord{Prefix: pre, Sn: sn, Digest: digest}

			var accepted []string
			if aerr := ke.Iterate(store.PrefixSnKey(pre, sn), func(_ uint64, d []byte) error {
				accepted = append(accepted, string(d))
				return nil
			}); aerr == nil && len(accepted) > 0 {
				if proof, root, perr := escrow.BuildExclusionProof(accepted, digest); perr == nil {
					rec.ExclusionProof = proof
					rec.Root = root
				}
			}
			records = append(records, rec)
			return nil
		})
	})
	return records, err
}
