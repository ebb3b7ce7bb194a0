// Package crypter implements the cryptographic primitives a key event log
// relies on: derivation-coded key material and digests (Matter), verified
// signatures and receipt couplets (Cigar/Siger), self-addressing digests
// (Diger), next-key commitments (Nexter), and signing threshold arithmetic
// (Tholder).
//
// Every primitive is qualified: its derivation code is a short prefix that
// names the algorithm and, implicitly, the byte length of what follows, so
// a verifier never has to be told out of band what kind of key or digest it
// is looking at.
package crypter

import (
	"encoding/base64"
	"fmt"
)

// Code is a one or two character derivation code prefixed onto the
// base64url encoding of a Matter's raw bytes.
type Code string

const (
	CodeEd25519Seed Code = "A"  // 32 byte Ed25519 private seed
	CodeEd25519N    Code = "B"  // 32 byte Ed25519 public key, non-transferable
	CodeEd25519     Code = "D"  // 32 byte Ed25519 public key, transferable
	CodeBlake3_256  Code = "E"  // 32 byte Blake3-256 digest
	CodeSHA256      Code = "I"  // 32 byte SHA-256 digest
	CodeEd25519Sig  Code = "0B" // 64 byte Ed25519 signature, unindexed (Cigar)
)

// rawSizes gives the decoded byte length implied by a Code.
var rawSizes = map[Code]int{
	CodeEd25519Seed: 32,
	CodeEd25519N:    32,
	CodeEd25519:     32,
	CodeBlake3_256:  32,
	CodeSHA256:      32,
	CodeEd25519Sig:  64,
}

// Matter is the common shape of every qualified primitive: a derivation
// code plus the raw bytes it qualifies.
type Matter struct {
	Code Code
	Raw  []byte
}

// NewMatter validates raw against the length implied by code and returns a
// Matter wrapping it.
func NewMatter(code Code, raw []byte) (Matter, error) {
	n, ok := rawSizes[code]
	if !ok {
		return Matter{}, fmt.Errorf("crypter: unknown derivation code %q", code)
	}
	if len(raw) != n {
		return Matter{}, fmt.Errorf("crypter: code %q wants %d raw bytes, got %d", code, n, len(raw))
	}
	return Matter{Code: code, Raw: raw}, nil
}

// Qb64 renders the qualified base64 form: code followed by the unpadded
// base64url encoding of Raw.
func (m Matter) Qb64() string {
	return string(m.Code) + base64.RawURLEncoding.EncodeToString(m.Raw)
}

// ParseQb64 splits a qualified base64 string back into its Matter, trying
// two-character codes before one-character codes so prefixes never
// collide (no one-character code is itself a prefix of a defined
// two-character code).
func ParseQb64(qb64 string) (Matter, error) {
	if len(qb64) >= 2 {
		if n, ok := rawSizes[Code(qb64[:2])]; ok {
			raw, err := base64.RawURLEncoding.DecodeString(qb64[2:])
			if err != nil {
				return Matter{}, fmt.Errorf("crypter: bad qb64 body: %w", err)
			}
			if len(raw) != n {
				return Matter{}, fmt.Errorf("crypter: code %q wants %d raw bytes, got %d", qb64[:2], n, len(raw))
			}
			return Matter{Code: Code(qb64[:2]), Raw: raw}, nil
		}
	}
	if len(qb64) < 1 {
		return Matter{}, fmt.Errorf("crypter: empty qb64")
	}
	n, ok := rawSizes[Code(qb64[:1])]
	if !ok {
		return Matter{}, fmt.Errorf("crypter: unrecognized derivation code in %q", qb64)
	}
	raw, err := base64.RawURLEncoding.DecodeString(qb64[1:])
	if err != nil {
		return Matter{}, fmt.Errorf("crypter: bad qb64 body: %w", err)
	}
	if len(raw) != n {
		return Matter{}, fmt.Errorf("crypter: code %q wants %d raw bytes, got %d", qb64[:1], n, len(raw))
	}
	return Matter{Code: Code(qb64[:1]), Raw: raw}, nil
}
