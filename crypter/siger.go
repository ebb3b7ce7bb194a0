package crypter

import (
	"fmt"
	"strconv"
	"strings"
)

// Siger is an indexed signature: a signature plus the position, within the
// current signing key list, of the key that produced it. Ondex, when
// non-nil, carries the signer's index in the *prior* (superseded) key list
// instead, for a signature attached to a rotation event by an outgoing key.
type Siger struct {
	Matter
	Index int
	Ondex *int
}

// NewSiger signs ser with priv at the given key index.
func NewSiger(priv Signer, index int, ondex *int, ser []byte) (Siger, error) {
	if index < 0 {
		return Siger{}, fmt.Errorf("crypter: negative signature index %d", index)
	}
	sig := priv.Sign(ser)
	m, err := NewMatter(CodeEd25519Sig, sig)
	if err != nil {
		return Siger{}, err
	}
	return Siger{Matter: m, Index: index, Ondex: ondex}, nil
}

// Verify reports whether this Siger is a valid signature over ser by
// verfer, independent of whether verfer is the right key for Index: callers
// are expected to have already resolved Index to verfer via the Kever's
// current (or prior, for Ondex) key list.
func (s Siger) Verify(verfer Verfer, ser []byte) bool {
	return verfer.Verify(ser, s.Raw)
}

// Qb64 renders the indexed form: derivation code, a one hex digit current
// index, a one hex digit "ondex" (0 when absent), then the base64url body.
// A signing group of more than 16 keys would overflow a single hex digit;
// any group that large needs its own
// framing extension before this encoding could usefully represent it.
func (s Siger) Qb64() string {
	o := 0
	if s.Ondex != nil {
		o = *s.Ondex
	}
	return fmt.Sprintf("%s%x%x%s", s.Code, s.Index&0xF, o&0xF, base64Body(s.Matter))
}

// ParseSiger reads the indexed form produced by Qb64.
func ParseSiger(qb64 string) (Siger, error) {
	if len(qb64) < 4 {
		return Siger{}, fmt.Errorf("crypter: siger qb64 too short: %q", qb64)
	}
	code := Code(qb64[:2])
	if code != CodeEd25519Sig {
		return Siger{}, fmt.Errorf("crypter: %q is not a signature code", code)
	}
	idx, err := strconv.ParseInt(qb64[2:3], 16, 8)
	if err != nil {
		return Siger{}, fmt.Errorf("crypter: bad siger index: %w", err)
	}
	odx, err := strconv.ParseInt(qb64[3:4], 16, 8)
	if err != nil {
		return Siger{}, fmt.Errorf("crypter: bad siger ondex: %w", err)
	}
	m, err := ParseQb64(string(code) + qb64[4:])
	if err != nil {
		return Siger{}, err
	}
	var ondex *int
	if odx != 0 {
		o := int(odx)
		ondex = &o
	}
	return Siger{Matter: m, Index: int(idx), Ondex: ondex}, nil
}

// SigerQb64Len is the fixed encoded length of an indexed Ed25519 signature.
// Every Siger.Qb64() output has exactly this many bytes, which is what lets
// a stream of attached signatures be split back apart with no length
// prefix or delimiter of its own.
func SigerQb64Len() int {
	n := rawSizes[CodeEd25519Sig]
	return len(string(CodeEd25519Sig)) + 2 + (4*n+2)/3
}

// ParseSigerPrefix reads exactly one Siger from the front of buf and
// reports how many bytes it consumed.
func ParseSigerPrefix(buf []byte) (Siger, int, error) {
	n := SigerQb64Len()
	if len(buf) < n {
		return Siger{}, 0, fmt.Errorf("crypter: short siger buffer: need %d, have %d", n, len(buf))
	}
	s, err := ParseSiger(string(buf[:n]))
	if err != nil {
		return Siger{}, 0, err
	}
	return s, n, nil
}

func base64Body(m Matter) string {
	full := m.Qb64()
	return strings.TrimPrefix(full, string(m.Code))
}
