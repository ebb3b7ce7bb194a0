package escrow

import (
	"github.com/datatrails/go-datatrails-keri/store"
)

// Put files payload under top in bucket, stamped with the current time.
// Filing the same payload twice is not deduplicated here: a retried signer
// re-sending an already-escrowed partial signature is expected, and the
// drain's threshold re-check tolerates the duplicate the same way SIGS
// tolerates a re-attached signature.
func Put(tx *store.Tx, bucket string, top []byte, payload []byte) error {
	sub, err := tx.IoSet(bucket)
	if err != nil {
		return err
	}
	_, err = sub.Append(top, stamp(payload))
	return err
}

// Delete removes exactly the entry e returned by List/IterateAll, matching
// on its original stamp so a concurrently-filed duplicate payload under
// the same top is left alone.
func Delete(tx *store.Tx, bucket string, top []byte, e Entry) error {
	sub, err := tx.IoSet(bucket)
	if err != nil {
		return err
	}
	return sub.DelOne(top, restamp(e.StoredAt, e.Payload))
}

// List returns every entry filed under top in bucket, in filing order.
func List(tx *store.Tx, bucket string, top []byte) ([]Entry, error) {
	sub, err := tx.IoSet(bucket)
	if err != nil {
		return nil, err
	}
	raws, err := sub.GetAll(top)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(raws))
	for _, raw := range raws {
		out = append(out, unstamp(raw))
	}
	return out, nil
}

// IterateAll walks every entry in bucket across every top key, in physical
// key order. Used by a drain to discover pending work without already
// knowing which (prefix, sn) keys are occupied.
func IterateAll(tx *store.Tx, bucket string, fn func(top []byte, e Entry) error) error {
	sub, err := tx.IoSet(bucket)
	if err != nil {
		return err
	}
	return sub.IterateAll(func(top, raw []byte) error {
		return fn(top, unstamp(raw))
	})
}
