package crypter

import (
	"crypto/ed25519"
	"fmt"
)

// Verfer is a qualified public signing key. Transferable keys (CodeEd25519)
// may be superseded by rotation; non-transferable keys (CodeEd25519N) are
// the entire identifier for their own KEL and can never rotate.
type Verfer struct {
	Matter
}

// NewVerfer wraps a raw Ed25519 public key, marking it transferable or not.
func NewVerfer(raw []byte, transferable bool) (Verfer, error) {
	code := CodeEd25519
	if !transferable {
		code = CodeEd25519N
	}
	m, err := NewMatter(code, raw)
	if err != nil {
		return Verfer{}, err
	}
	return Verfer{m}, nil
}

// ParseVerfer reads a qualified public key from its qb64 form.
func ParseVerfer(qb64 string) (Verfer, error) {
	m, err := ParseQb64(qb64)
	if err != nil {
		return Verfer{}, err
	}
	if m.Code != CodeEd25519 && m.Code != CodeEd25519N {
		return Verfer{}, fmt.Errorf("crypter: %q is not a verifier key code", m.Code)
	}
	return Verfer{m}, nil
}

// Transferable reports whether this key may be superseded by a future
// rotation event.
func (v Verfer) Transferable() bool {
	return v.Code == CodeEd25519
}

// Verify reports whether sig is a valid Ed25519 signature over ser by this
// key.
func (v Verfer) Verify(ser, sig []byte) bool {
	return ed25519.Verify(ed25519.PublicKey(v.Raw), ser, sig)
}
