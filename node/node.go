package node

import (
	"fmt"
	"time"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/datatrails/go-datatrails-keri/escrow"
	"github.com/datatrails/go-datatrails-keri/kever"
	"github.com/datatrails/go-datatrails-keri/kevery"
	"github.com/datatrails/go-datatrails-keri/ordinal"
	"github.com/datatrails/go-datatrails-keri/store"
)

// Node ties one store, its Kevery (and, through it, the live KeverMap) and a
// per-process monotonic id generator together. Tests and multi-tenant
// processes alike get isolation by opening one Node per store path rather
// than sharing package-level state.
type Node struct {
	Store  *store.Store
	Kevery *kevery.Kevery

	ids *ordinal.Generator
	log logger.Logger
}

// Options configures OpenNode.
type Options struct {
	log        logger.Logger
	storeOpts  []store.Option
	keveryOpts []kevery.Option
}

type Option func(*Options)

func newDefaultOptions() Options {
	return Options{log: logger.Sugar.WithServiceName("node")}
}

// WithLogger overrides the default component logger.
func WithLogger(log logger.Logger) Option {
	return func(o *Options) { o.log = log }
}

// WithStoreOptions forwards options to store.Open.
func WithStoreOptions(opts ...store.Option) Option {
	return func(o *Options) { o.storeOpts = append(o.storeOpts, opts...) }
}

// WithKeveryOptions forwards options to kevery.New.
func WithKeveryOptions(opts ...kevery.Option) Option {
	return func(o *Options) { o.keveryOpts = append(o.keveryOpts, opts...) }
}

// OpenNode is open_store from spec.md §6: it opens (or creates) the bbolt
// file at path and constructs the Kevery bound to it.
func OpenNode(path string, withOpts ...Option) (*Node, error) {
	opts := newDefaultOptions()
	for _, o := range withOpts {
		o(&opts)
	}

	s, err := store.Open(path, opts.storeOpts...)
	if err != nil {
		return nil, fmt.Errorf("node: %w", err)
	}
	kv, err := kevery.New(s, opts.keveryOpts...)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("node: %w", err)
	}
	ids, err := ordinal.NewSingleProcessIDState()
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("node: %w", err)
	}

	opts.log.Infof("node: opened %s", path)
	return &Node{Store: s, Kevery: kv, ids: ids, log: opts.log}, nil
}

// Close releases the underlying store.
func (n *Node) Close() error {
	n.log.Debugf("node: closing store")
	return n.Store.Close()
}

// Ingest is kevery.ingest(bytes): it parses and dispatches exactly one
// message, stamping any resulting Cue with this node's next monotonic id so
// a caller juggling several outstanding cues can recover the order they
// were raised in even if it processes them out of order itself.
func (n *Node) Ingest(buf []byte) (*StampedCue, int, error) {
	cue, consumed, err := n.Kevery.Ingest(buf)
	if err != nil {
		return nil, 0, err
	}
	stamped, err := n.stamp(cue)
	if err != nil {
		return nil, 0, err
	}
	return stamped, consumed, nil
}

// IngestAll is the batch form of Ingest, stopping cleanly at a short final
// frame the same way kevery.IngestAll does.
func (n *Node) IngestAll(buf []byte) ([]StampedCue, error) {
	cues, err := n.Kevery.IngestAll(buf)
	if err != nil {
		return nil, err
	}
	out := make([]StampedCue, 0, len(cues))
	for _, c := range cues {
		c := c
		stamped, err := n.stamp(&c)
		if err != nil {
			return nil, err
		}
		out = append(out, *stamped)
	}
	return out, nil
}

// DrainEscrows is kevery.drain_escrows(): it expires stale escrow entries
// and retries everything eligible, returning one stamped Cue per escrowed
// frame that was accepted this pass.
func (n *Node) DrainEscrows(now time.Time) ([]StampedCue, error) {
	cues, err := n.Kevery.DrainEscrows(now)
	if err != nil {
		return nil, err
	}
	out := make([]StampedCue, 0, len(cues))
	for _, c := range cues {
		c := c
		stamped, err := n.stamp(&c)
		if err != nil {
			return nil, err
		}
		out = append(out, *stamped)
	}
	return out, nil
}

// Kevers is kevers.get(prefix) -> state: it exposes read access to the
// live KeverMap Kevery owns, without handing out the map itself.
func (n *Node) Kevers() Kevers {
	return Kevers{kv: n.Kevery}
}

// Kevers is a thin read accessor over Kevery's live Kever registry.
type Kevers struct {
	kv *kevery.Kevery
}

// Get returns the current state for prefix, if this node has processed its
// inception.
func (k Kevers) Get(prefix string) (*kever.Kever, bool) {
	return k.kv.Get(prefix)
}

// LikelyDuplicitous lists prefix's escrowed likely-duplicitous events for
// operator review, each carrying a proof that it is absent from KE's
// accepted digests at its sn.
func (n *Node) LikelyDuplicitous(prefix string) ([]escrow.LDESRecord, error) {
	return n.Kevery.ListLDES(prefix)
}

func (n *Node) stamp(cue *kevery.Cue) (*StampedCue, error) {
	if cue == nil {
		return nil, nil
	}
	id, err := n.ids.NextID()
	if err != nil {
		return nil, fmt.Errorf("node: %w", err)
	}
	return &StampedCue{Cue: *cue, ID: id}, nil
}

// StampedCue pairs a Cue with this node's process-monotonic id, giving a
// caller juggling several outstanding cues a stable send order.
type StampedCue struct {
	kevery.Cue
	ID uint64
}
