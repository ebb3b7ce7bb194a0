package eventing

import (
	"fmt"

	"github.com/datatrails/go-datatrails-keri/codec"
)

// Event is the decoded tagged variant: exactly one of the payload fields is
// set, matching Kind.
type Event struct {
	Kind Kind
	Raw  []byte

	Establishment *Establishment
	Interaction   *Interaction
	Receipt       *Receipt
	Chit          *Chit
}

// Decode unmarshals frame.Raw into the payload shape frame.Ked["t"] names.
// This is the one place a dynamic ked dict is consulted just long enough to
// pick a concrete type; every caller downstream works with typed fields.
func Decode(frame *codec.Frame) (*Event, error) {
	t, _ := frame.Ked["t"].(string)
	kind, err := ParseKind(t)
	if err != nil {
		return nil, err
	}

	ev := &Event{Kind: kind, Raw: frame.Raw}
	switch kind {
	case KindIcp, KindRot, KindDip, KindDrt:
		var e Establishment
		if err := codec.Unmarshal(frame.Kind, frame.Raw, &e); err != nil {
			return nil, fmt.Errorf("eventing: decode %s: %w", kind, err)
		}
		ev.Establishment = &e
	case KindIxn:
		var e Interaction
		if err := codec.Unmarshal(frame.Kind, frame.Raw, &e); err != nil {
			return nil, fmt.Errorf("eventing: decode ixn: %w", err)
		}
		ev.Interaction = &e
	case KindRct:
		var r Receipt
		if err := codec.Unmarshal(frame.Kind, frame.Raw, &r); err != nil {
			return nil, fmt.Errorf("eventing: decode rct: %w", err)
		}
		ev.Receipt = &r
	case KindVrc:
		var c Chit
		if err := codec.Unmarshal(frame.Kind, frame.Raw, &c); err != nil {
			return nil, fmt.Errorf("eventing: decode vrc: %w", err)
		}
		ev.Chit = &c
	}
	return ev, nil
}

// Header returns the common header fields regardless of which payload is
// set; it panics if no payload is set, which Decode never produces.
func (e *Event) Header() Header {
	switch {
	case e.Establishment != nil:
		return e.Establishment.Header
	case e.Interaction != nil:
		return e.Interaction.Header
	case e.Receipt != nil:
		return Header{V: e.Receipt.V, T: e.Receipt.T, I: e.Receipt.I, S: e.Receipt.S, D: e.Receipt.D}
	case e.Chit != nil:
		return Header{V: e.Chit.V, T: e.Chit.T, I: e.Chit.I, S: e.Chit.S, D: e.Chit.D}
	default:
		panic("eventing: Event has no payload set")
	}
}
