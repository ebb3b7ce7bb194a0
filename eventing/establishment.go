package eventing

import "encoding/json"

// Establishment is the payload shared by icp, rot, dip and drt: the fields
// that differ by kind (P, Di, B vs Br/Ba) are simply left zero-valued when
// a kind doesn't use them, rather than maintaining four near-identical
// structs.
type Establishment struct {
	Header

	P string `json:"p,omitempty"` // prior digest; empty on icp/dip

	Kt json.RawMessage `json:"kt"` // int, []string weights, or [][]string clauses
	K  []string        `json:"k"`
	N  string          `json:"n,omitempty"`

	Bt string   `json:"bt"`
	B  []string `json:"b,omitempty"`  // inception witness set (icp/dip only)
	Br []string `json:"br,omitempty"` // rotation witness cuts
	Ba []string `json:"ba,omitempty"` // rotation witness adds

	C []string         `json:"c,omitempty"` // config traits, e.g. "EO" (EstOnly)
	A []map[string]any `json:"a,omitempty"` // anchored seals

	Di string `json:"di,omitempty"` // delegator AID, dip/drt only
}

// HasTrait reports whether trait is present in C.
func (e Establishment) HasTrait(trait string) bool {
	for _, c := range e.C {
		if c == trait {
			return true
		}
	}
	return false
}

// TraitEstOnly forbids ixn events against the identifier.
const TraitEstOnly = "EO"

// EstOnly reports whether this establishment event sets the EstOnly trait.
func (e Establishment) EstOnly() bool {
	return e.HasTrait(TraitEstOnly)
}
