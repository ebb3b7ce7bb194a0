package kever

import (
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/datatrails/go-datatrails-keri/crypter"
)

// Options configures New. Fields are private; New supplies sensible
// defaults for anything the caller omits.
type Options struct {
	log        logger.Logger
	digestCode crypter.DigestCode
}

type Option func(*Options)

func newDefaultOptions() Options {
	return Options{
		log:        logger.Sugar.WithServiceName("kever"),
		digestCode: crypter.DigestBlake3_256,
	}
}

// WithLogger overrides the default component logger.
func WithLogger(log logger.Logger) Option {
	return func(o *Options) { o.log = log }
}

// WithDigestCode selects the derivation code used to check an inception
// event's claimed identifier against its own derivation.
func WithDigestCode(code crypter.DigestCode) Option {
	return func(o *Options) { o.digestCode = code }
}
