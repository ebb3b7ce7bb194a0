package store

import (
	"time"

	"github.com/datatrails/go-datatrails-common/logger"
)

// Options configures Open. Fields are private; implementations are
// expected to simply use sensible defaults for options the caller omits.
type Options struct {
	log     logger.Logger
	timeout time.Duration
	noSync  bool
}

type Option func(*Options)

func newDefaultOptions() Options {
	return Options{
		log:     logger.Sugar.WithServiceName("store"),
		timeout: time.Second,
	}
}

// WithLogger overrides the default component logger.
func WithLogger(log logger.Logger) Option {
	return func(o *Options) {
		o.log = log
	}
}

// WithTimeout bounds how long Open waits to acquire the database file lock.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.timeout = d
	}
}

// WithNoSync disables fsync on every commit. Safe for tests; never for a
// node whose KEL must survive a crash.
func WithNoSync() Option {
	return func(o *Options) {
		o.noSync = true
	}
}
