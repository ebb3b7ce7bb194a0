package kevery

import "github.com/datatrails/go-datatrails-keri/eventing"

// CueKind tags what prompted a Cue.
type CueKind int

const (
	// CueReceipt asks the caller to produce and send a direct-mode
	// receipt for (Prefix, Sn, Digest): every freshly accepted event
	// raises one.
	CueReceipt CueKind = iota
)

// Cue is a lightweight, in-memory side effect Ingest/DrainEscrows report
// back to the caller instead of acting on directly: Kevery has no notion
// of a transport to send a receipt over, so it only records that one is
// due.
type Cue struct {
	Kind   CueKind
	Prefix string
	Sn     uint64
	Digest string
	Event  eventing.Kind
}
