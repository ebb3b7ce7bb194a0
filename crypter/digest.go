package crypter

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"lukechampine.com/blake3"
)

// DigestCode names a supported digest algorithm. Blake3_256 is the default
// new-identifier choice; SHA256 is accepted on input for interoperability
// with events minted by other implementations.
type DigestCode = Code

const (
	DigestBlake3_256 DigestCode = CodeBlake3_256
	DigestSHA256     DigestCode = CodeSHA256
)

// Digest computes ser's digest under code.
func Digest(code DigestCode, ser []byte) ([]byte, error) {
	switch code {
	case DigestBlake3_256:
		sum := blake3.Sum256(ser)
		return sum[:], nil
	case DigestSHA256:
		sum := sha256.Sum256(ser)
		return sum[:], nil
	default:
		return nil, fmt.Errorf("crypter: unsupported digest code %q", code)
	}
}

// Diger is a qualified self-addressing digest.
type Diger struct {
	Matter
}

// NewDiger computes the digest of ser under code and wraps it.
func NewDiger(code DigestCode, ser []byte) (Diger, error) {
	raw, err := Digest(code, ser)
	if err != nil {
		return Diger{}, err
	}
	m, err := NewMatter(code, raw)
	if err != nil {
		return Diger{}, err
	}
	return Diger{m}, nil
}

// ParseDiger reads a qualified digest from its qb64 form.
func ParseDiger(qb64 string) (Diger, error) {
	m, err := ParseQb64(qb64)
	if err != nil {
		return Diger{}, err
	}
	if m.Code != CodeBlake3_256 && m.Code != CodeSHA256 {
		return Diger{}, fmt.Errorf("crypter: %q is not a digest code", m.Code)
	}
	return Diger{m}, nil
}

// Verify reports whether ser digests, under this Diger's code, to this
// Diger's raw value.
func (d Diger) Verify(ser []byte) bool {
	raw, err := Digest(d.Code, ser)
	if err != nil {
		return false
	}
	return len(raw) == len(d.Raw) && subtle.ConstantTimeCompare(raw, d.Raw) == 1
}
