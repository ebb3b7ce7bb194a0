package kevery

import (
	"fmt"
	"sync"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/datatrails/go-datatrails-keri/codec"
	"github.com/datatrails/go-datatrails-keri/dedup"
	"github.com/datatrails/go-datatrails-keri/eventing"
	"github.com/datatrails/go-datatrails-keri/kever"
	"github.com/datatrails/go-datatrails-keri/store"
)

// Kevery is the stream processor for one node: it holds the live Kever for
// every identifier it has seen, a store handle, and a prefilter over
// digests it has already committed.
type Kevery struct {
	store *store.Store
	seen  *dedup.Filter
	log   logger.Logger
	opts  Options

	mu     sync.Mutex
	kevers map[string]*kever.Kever
}

// New opens a Kevery bound to s. s must already be open; Kevery never
// owns its lifecycle.
func New(s *store.Store, withOpts ...Option) (*Kevery, error) {
	opts := newDefaultOptions()
	for _, o := range withOpts {
		o(&opts)
	}
	seen, err := dedup.New(opts.dedupCap)
	if err != nil {
		return nil, fmt.Errorf("kevery: %w", err)
	}
	return &Kevery{
		store:  s,
		seen:   seen,
		log:    opts.log,
		opts:   opts,
		kevers: make(map[string]*kever.Kever),
	}, nil
}

// Get returns the live Kever for prefix, if this node has one.
func (kv *Kevery) Get(prefix string) (*kever.Kever, bool) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	k, ok := kv.kevers[prefix]
	return k, ok
}

func (kv *Kevery) put(k *kever.Kever) {
	kv.mu.Lock()
	kv.kevers[k.Prefix] = k
	kv.mu.Unlock()
}

// Ingest parses exactly one message (a frame plus its attachments) from
// buf and dispatches it. It returns the Cue raised on acceptance (nil
// otherwise) and the number of bytes consumed. A codec.ErrShortage means
// buf does not yet hold a complete frame; the caller should refill and
// retry with more bytes, not treat it as a parse failure.
func (kv *Kevery) Ingest(buf []byte) (*Cue, int, error) {
	frame, n, err := codec.Parse(buf)
	if err != nil {
		return nil, 0, err
	}
	ev, err := eventing.Decode(frame)
	if err != nil {
		return nil, 0, err
	}

	rest := buf[n:]
	var cue *Cue
	var attachBytes int

	switch ev.Kind {
	case eventing.KindRct:
		cigars, consumed, perr := parseCigarCouplets(rest)
		if perr != nil {
			return nil, 0, perr
		}
		attachBytes = consumed
		err = kv.store.Update(func(tx *store.Tx) error {
			var e error
			cue, e = kv.processReceipt(tx, ev, cigars)
			return e
		})
	case eventing.KindVrc:
		sigers, consumed, perr := parseSigers(rest)
		if perr != nil {
			return nil, 0, perr
		}
		attachBytes = consumed
		err = kv.store.Update(func(tx *store.Tx) error {
			var e error
			cue, e = kv.processChit(tx, frame, ev, sigers)
			return e
		})
	default:
		sigers, consumed, perr := parseSigers(rest)
		if perr != nil {
			return nil, 0, perr
		}
		if len(sigers) == 0 {
			return nil, 0, ErrNoSignatures
		}
		attachBytes = consumed
		err = kv.store.Update(func(tx *store.Tx) error {
			var e error
			cue, e = kv.processEvent(tx, frame, ev, sigers)
			return e
		})
	}
	if err != nil {
		return nil, 0, err
	}
	return cue, n + attachBytes, nil
}

// IngestAll repeatedly calls Ingest until buf is exhausted, returning every
// Cue raised along the way. It stops (without error) at the first
// codec.ErrShortage, a suspension point between frames: the caller owns refilling the buffer and resuming.
func (kv *Kevery) IngestAll(buf []byte) ([]Cue, error) {
	var cues []Cue
	for len(buf) > 0 {
		cue, n, err := kv.Ingest(buf)
		if err == codec.ErrShortage {
			break
		}
		if err != nil {
			return cues, err
		}
		if cue != nil {
			cues = append(cues, *cue)
		}
		if n == 0 {
			break
		}
		buf = buf[n:]
	}
	return cues, nil
}
