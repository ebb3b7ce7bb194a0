package kevery

import (
	"time"

	"github.com/datatrails/go-datatrails-common/logger"
)

// Options configures New. Fields are private; New supplies sensible
// defaults for anything the caller omits.
type Options struct {
	log        logger.Logger
	dedupCap   uint64
	defaultTTL time.Duration
}

type Option func(*Options)

func newDefaultOptions() Options {
	return Options{
		log:        logger.Sugar.WithServiceName("kevery"),
		dedupCap:   1 << 20,
		defaultTTL: time.Hour,
	}
}

// WithLogger overrides the default component logger.
func WithLogger(log logger.Logger) Option {
	return func(o *Options) { o.log = log }
}

// WithDedupCapacity sizes the node-lifetime seen-digest prefilter. Pick a
// capacity comfortably above the number of distinct digests this node
// expects to ever commit; the filter never shrinks or resets.
func WithDedupCapacity(n uint64) Option {
	return func(o *Options) { o.dedupCap = n }
}

// WithDefaultTTL overrides the default escrow expiry used by DrainEscrows
// for every class except LDES, which never expires regardless.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(o *Options) { o.defaultTTL = ttl }
}
