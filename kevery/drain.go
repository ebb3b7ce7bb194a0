package kevery

import (
	"bytes"
	"time"

	"github.com/datatrails/go-datatrails-keri/codec"
	"github.com/datatrails/go-datatrails-keri/crypter"
	"github.com/datatrails/go-datatrails-keri/escrow"
	"github.com/datatrails/go-datatrails-keri/eventing"
	"github.com/datatrails/go-datatrails-keri/store"
)

// DrainEscrows retries every class whose trigger is "try again and see":
// OOES, PSES, VRE and PWES each re-enter the same
// processEvent/processChit path that originally escrowed them — for PWES
// that means re-checking the delegator's KEL for the anchor seal it was
// filed without. LDES is operator-review only and is never re-ingested
// here, matching spec.md's "never auto-accepted" rule; it is still subject
// to TTL-less listing via escrow.List for an operator to inspect. URES is
// drained separately since its payload is a couplet, not a re-ingestable
// frame.
//
// Every class (including LDES, for its own housekeeping) is expired by TTL
// first, using DefaultTTL unless overridden via WithDefaultTTL.
func (kv *Kevery) DrainEscrows(now time.Time) ([]Cue, error) {
	var cues []Cue
	err := kv.store.Update(func(tx *store.Tx) error {
		for _, class := range []string{store.OOES, store.PSES, store.VRE, store.PWES, store.LDES, store.URES} {
			ttl := kv.classTTL(class)
			n, err := escrow.ExpireOlderThan(tx, class, ttl, now)
			if err != nil {
				return err
			}
			if n > 0 {
				kv.log.Debugf("drain: expired %d stale %s entries", n, class)
			}
		}

		for _, class := range []string{store.OOES, store.PSES, store.VRE, store.PWES} {
			drained, err := kv.drainRetryClass(tx, class)
			if err != nil {
				return err
			}
			cues = append(cues, drained...)
		}

		return kv.drainURES(tx)
	})
	return cues, err
}

func (kv *Kevery) classTTL(class string) time.Duration {
	if class == store.LDES {
		return 0
	}
	return kv.opts.defaultTTL
}

// drainRetryClass re-parses every entry in class as an encoded (frame,
// sigers) item and re-dispatches it; entries that succeed are removed,
// entries that fail the same recoverable way are left (escrow.Put inside
// the retried call will re-file them, a harmless re-stamp), and entries
// whose retried call returns an error are left in place, their error
// discarded, for the next drain or TTL expiry — DrainEscrows reports only
// successes as Cues.
func (kv *Kevery) drainRetryClass(tx *store.Tx, class string) ([]Cue, error) {
	type pending struct {
		top []byte
		e   escrow.Entry
	}
	var items []pending
	if err := escrow.IterateAll(tx, class, func(top []byte, e escrow.Entry) error {
		items = append(items, pending{top: append([]byte{}, top...), e: e})
		return nil
	}); err != nil {
		return nil, err
	}

	var cues []Cue
	for _, p := range items {
		raw, sigers, err := decodeItem(p.e.Payload)
		if err != nil {
			continue
		}
		frame, _, err := codec.Parse(raw)
		if err != nil {
			continue
		}
		ev, err := eventing.Decode(frame)
		if err != nil {
			continue
		}

		var cue *Cue
		var procErr error
		if class == store.VRE {
			cue, procErr = kv.processChit(tx, frame, ev, sigers)
		} else {
			cue, procErr = kv.processEvent(tx, frame, ev, sigers)
		}
		if procErr != nil {
			continue
		}
		if err := escrow.Delete(tx, class, p.top, p.e); err != nil {
			return nil, err
		}
		if cue != nil {
			cues = append(cues, *cue)
		}
	}
	return cues, nil
}

// drainURES re-checks every unreceipted-escrow couplet against KE: once
// the receipted event has been accepted at (pre, sn) with the escrowed
// digest as its head, the couplet is verified and moved into RCTS exactly
// as processReceipt would have done on first sight.
func (kv *Kevery) drainURES(tx *store.Tx) error {
	type pending struct {
		top []byte
		e   escrow.Entry
	}
	var items []pending
	if err := escrow.IterateAll(tx, store.URES, func(top []byte, e escrow.Entry) error {
		items = append(items, pending{top: append([]byte{}, top...), e: e})
		return nil
	}); err != nil {
		return err
	}

	ke, err := tx.On(store.KE)
	if err != nil {
		return err
	}
	evt, err := tx.Val(store.EVT)
	if err != nil {
		return err
	}
	rcts, err := tx.IoDup(store.RCTS)
	if err != nil {
		return err
	}

	for _, p := range items {
		pre, sn, digest, err := splitPrefixSnDigest(p.top)
		if err != nil {
			continue
		}
		_, headDigest, found := ke.Last(store.PrefixSnKey(pre, sn))
		if !found || string(headDigest) != digest {
			continue
		}
		raw, err := evt.Get([]byte(digest))
		if err != nil {
			continue
		}
		c, _, err := crypter.ParseCigarCouplet(p.e.Payload)
		if err != nil {
			continue
		}
		if !c.Verify(raw) {
			continue
		}
		body := c.CoupletQb64()
		if !rcts.Has([]byte(digest), []byte(body)) {
			if err := rcts.Add([]byte(digest), []byte(body)); err != nil {
				return err
			}
		}
		if err := escrow.Delete(tx, store.URES, p.top, p.e); err != nil {
			return err
		}
	}
	return nil
}

// splitPrefixSnDigest reverses store.PrefixSnDigestKey's "prefix|sn|digest"
// layout. '|' never appears in a qualified base64 prefix or digest, so the
// two splits are unambiguous.
func splitPrefixSnDigest(top []byte) (prefix string, sn uint64, digest string, err error) {
	parts := bytes.SplitN(top, []byte("|"), 3)
	if len(parts) != 3 {
		return "", 0, "", errShortTop
	}
	prefix = string(parts[0])
	digest = string(parts[2])
	sn, err = parseHexSn(string(parts[1]))
	return prefix, sn, digest, err
}
