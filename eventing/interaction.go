package eventing

// Interaction is the ixn payload: it carries no keys of its own and never
// changes signing authority, only anchors application data against the
// current establishment.
type Interaction struct {
	Header
	P string           `json:"p"`
	A []map[string]any `json:"a,omitempty"`
}
