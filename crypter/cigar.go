package crypter

import "fmt"

// Cigar is a non-indexed signature, always carried paired with the Verfer
// that produced it: a witness receipt (rct) couplet has no controlling KEL
// of its own to resolve a key index against, so the verifier key travels
// with the signature instead of being looked up by position.
type Cigar struct {
	Matter
	Verfer Verfer
}

// NewCigar signs ser with priv and pairs the signature with verfer.
func NewCigar(priv Signer, verfer Verfer, ser []byte) (Cigar, error) {
	sig := priv.Sign(ser)
	m, err := NewMatter(CodeEd25519Sig, sig)
	if err != nil {
		return Cigar{}, err
	}
	return Cigar{Matter: m, Verfer: verfer}, nil
}

// Verify reports whether this Cigar is a valid signature over ser by its
// paired Verfer.
func (c Cigar) Verify(ser []byte) bool {
	return c.Verfer.Verify(ser, c.Raw)
}

// ParseCigarBody reads a bare (unpaired) signature qb64, for callers that
// resolve the Verfer out of band.
func ParseCigarBody(qb64 string) (Matter, error) {
	m, err := ParseQb64(qb64)
	if err != nil {
		return Matter{}, err
	}
	if m.Code != CodeEd25519Sig {
		return Matter{}, fmt.Errorf("crypter: %q is not a signature code", m.Code)
	}
	return m, nil
}

// verferQb64Len is the fixed encoded length of a 32 byte Ed25519 key,
// transferable or not: both codes are one character, so the lengths match.
func verferQb64Len() int {
	n := rawSizes[CodeEd25519]
	return len(string(CodeEd25519)) + (4*n+2)/3
}

// CigarCoupletLen is the fixed encoded length of a non-transferable receipt
// couplet: a Verfer immediately followed by a Cigar, with no separator.
func CigarCoupletLen() int {
	return verferQb64Len() + SigerQb64Len() - 2 // Cigar has no index/ondex hex digits
}

// CoupletQb64 renders the non-transferable receipt couplet wire form: the
// signer's qualified public key immediately followed by its qualified,
// unindexed signature.
func (c Cigar) CoupletQb64() string {
	return c.Verfer.Qb64() + c.Matter.Qb64()
}

// ParseCigarCouplet reads exactly one (Verfer, Cigar) couplet from the
// front of buf and reports how many bytes it consumed.
func ParseCigarCouplet(buf []byte) (Cigar, int, error) {
	vn := verferQb64Len()
	if len(buf) < vn {
		return Cigar{}, 0, fmt.Errorf("crypter: short couplet buffer: need at least %d, have %d", vn, len(buf))
	}
	verfer, err := ParseVerfer(string(buf[:vn]))
	if err != nil {
		return Cigar{}, 0, err
	}
	sigLen := len(string(CodeEd25519Sig)) + (4*rawSizes[CodeEd25519Sig]+2)/3
	sn := vn + sigLen
	if len(buf) < sn {
		return Cigar{}, 0, fmt.Errorf("crypter: short couplet buffer: need %d, have %d", sn, len(buf))
	}
	m, err := ParseQb64(string(buf[vn:sn]))
	if err != nil {
		return Cigar{}, 0, err
	}
	if m.Code != CodeEd25519Sig {
		return Cigar{}, 0, fmt.Errorf("crypter: %q is not a signature code", m.Code)
	}
	return Cigar{Matter: m, Verfer: verfer}, sn, nil
}
