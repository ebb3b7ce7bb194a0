package kever

import (
	"time"

	"github.com/datatrails/go-datatrails-keri/crypter"
	"github.com/datatrails/go-datatrails-keri/felog"
	"github.com/datatrails/go-datatrails-keri/store"
)

// commit writes EVT/SIGS/DTS for digest and raw, then appends KE at
// (k.Prefix, sn), FE at k.Prefix, and extends k.Prefix's felog MMR with the
// same digest as its next leaf. It assumes the caller (Kevery) has
// already rejected this digest as a duplicate before ever reaching New,
// Rotate or Interact: commit does not re-check EVT presence before
// appending to KE/FE, since a second append would violate the
// idempotence invariant it is Kevery's job to uphold upstream.
func (k *Kever) commit(tx *store.Tx, digest string, raw []byte, sigers []crypter.Siger, sn uint64) error {
	evt, err := tx.Val(store.EVT)
	if err != nil {
		return err
	}
	if _, err := evt.PutIfAbsent([]byte(digest), raw); err != nil {
		return err
	}

	sigs, err := tx.IoSet(store.SIGS)
	if err != nil {
		return err
	}
	top := []byte(digest)
	for _, s := range sigers {
		val := []byte(s.Qb64())
		if sigs.Has(top, val) {
			continue
		}
		if _, err := sigs.Append(top, val); err != nil {
			return err
		}
	}

	dts, err := tx.Val(store.DTS)
	if err != nil {
		return err
	}
	if _, err := dts.PutIfAbsent([]byte(digest), []byte(time.Now().UTC().Format(time.RFC3339Nano))); err != nil {
		return err
	}

	ke, err := tx.On(store.KE)
	if err != nil {
		return err
	}
	if _, err := ke.AppendOn(store.PrefixSnKey(k.Prefix, sn), []byte(digest)); err != nil {
		return err
	}

	fe, err := tx.On(store.FE)
	if err != nil {
		return err
	}
	if _, err := fe.AppendOn([]byte(k.Prefix), []byte(digest)); err != nil {
		return err
	}

	if _, _, err := felog.Append(tx, k.Prefix, []byte(digest)); err != nil {
		return err
	}

	return nil
}
