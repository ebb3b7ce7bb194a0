package codec

import "errors"

// ErrShortage signals that buf does not yet contain as many bytes as the
// version string's size field declares. It is not a parse failure: the
// caller should read more bytes and retry. See Kevery.IngestAll, which
// treats it as the sole non-fatal-to-stream error.
var ErrShortage = errors.New("codec: buffer too short for declared event size")

var (
	ErrNoVersionString  = errors.New("codec: no version string found in buffer")
	ErrBadVersionString = errors.New("codec: malformed version string")
	ErrUnsupportedKind  = errors.New("codec: unsupported serialization kind")
	ErrUnsupportedMajor = errors.New("codec: unsupported major protocol version")
	ErrSizeMismatch     = errors.New("codec: declared size does not match actual serialized length")
)
