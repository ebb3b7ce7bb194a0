package kevery

import (
	"github.com/datatrails/go-datatrails-keri/codec"
	"github.com/datatrails/go-datatrails-keri/eventing"
	"github.com/datatrails/go-datatrails-keri/store"
)

// delegationConfirmed reports whether delegator's KEL already anchors a seal
// for (delegate, sn, digest): a dip/drt is only ever accepted once the
// delegator has published that seal in one of its own established events,
// so this is checked by walking the delegator's first-seen log and
// inspecting each event's anchored seals for a match.
//
// The delegator's own Kever need not exist yet on this node for the seal to
// be found, since FE/EVT are populated independently of whether a Kever was
// constructed for that prefix; an absent delegator FE log simply means no
// seal has been seen yet.
func delegationConfirmed(tx *store.Tx, delegator, delegate string, sn uint64, digest string) (bool, error) {
	fe, err := tx.On(store.FE)
	if err != nil {
		return false, err
	}
	evt, err := tx.Val(store.EVT)
	if err != nil {
		return false, err
	}

	found := false
	err = fe.Iterate([]byte(delegator), func(_ uint64, d []byte) error {
		if found {
			return nil
		}
		raw, gerr := evt.Get(d)
		if gerr != nil {
			return nil
		}
		frame, _, perr := codec.Parse(raw)
		if perr != nil {
			return nil
		}
		ev, derr := eventing.Decode(frame)
		if derr != nil || ev.Establishment == nil && ev.Interaction == nil {
			return nil
		}
		var anchors []map[string]any
		switch {
		case ev.Establishment != nil:
			anchors = ev.Establishment.A
		case ev.Interaction != nil:
			anchors = ev.Interaction.A
		}
		for _, a := range anchors {
			if matchesSeal(a, delegate, sn, digest) {
				found = true
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// matchesSeal reports whether anchor seal a references (prefix, sn, digest).
// A seal with no "s" field anchors by identifier and digest alone.
func matchesSeal(a map[string]any, prefix string, sn uint64, digest string) bool {
	i, _ := a["i"].(string)
	d, _ := a["d"].(string)
	if i != prefix || d != digest {
		return false
	}
	s, _ := a["s"].(string)
	if s == "" {
		return true
	}
	asn, err := parseHexSn(s)
	return err == nil && asn == sn
}
