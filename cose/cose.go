// Package cose wraps veraison/go-cose's Sign1Message for the one shape a
// validator receipt needs: an Ed25519-signed COSE_Sign1 envelope carrying
// the signer's key index in an unprotected header, so a chit (vrc) can be
// verified without a second, bespoke signature format.
//
// This is a trimmed descendant of a wrapper that also handled ECDSA/RSA
// keys and CWT/DID claims for a content-addressed transparency service; a
// KERI validator receipt has no issuer/subject claims and signs with
// exactly one algorithm, so that machinery is gone.
package cose

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/veraison/go-cose"
)

// HeaderLabelKeyIndex carries the signer's position within the verifying
// identifier's current key list, the same role Siger.Index plays for
// inline-attached signatures. HeaderLabelOndex carries the position within
// the prior key list, mirroring Siger.Ondex, for a chit signed by an
// outgoing rotation key.
const (
	HeaderLabelKeyIndex int64 = 100
	HeaderLabelOndex    int64 = 101
)

// CoseSign1Message extends cose.Sign1Message with a canonical CBOR decode
// mode, so map-typed headers (the key index headers below) decode to
// predictable Go types regardless of which implementation produced them.
type CoseSign1Message struct {
	*cose.Sign1Message
	decMode cbor.DecMode
}

func canonicalDecMode() (cbor.DecMode, error) {
	opts := cbor.DecOptions{}
	return opts.DecMode()
}

// NewCoseSign1Message wraps an empty message ready for signing.
func NewCoseSign1Message() (*CoseSign1Message, error) {
	dec, err := canonicalDecMode()
	if err != nil {
		return nil, err
	}
	return &CoseSign1Message{
		Sign1Message: cose.NewSign1Message(),
		decMode:      dec,
	}, nil
}

// NewCoseSign1MessageFromCBOR decodes a previously signed message.
func NewCoseSign1MessageFromCBOR(raw []byte) (*CoseSign1Message, error) {
	cs, err := NewCoseSign1Message()
	if err != nil {
		return nil, err
	}
	var msg cose.Sign1Message
	if err := cs.decMode.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("cose: unmarshal: %w", err)
	}
	cs.Sign1Message = &msg
	return cs, nil
}

// SignEd25519 signs the message with priv under AlgorithmEdDSA, setting the
// protected algorithm header and the key/ondex unprotected headers. index
// is the signer's position in the verifying key list; ondex, when
// non-negative, is its position in the prior list.
func (cs *CoseSign1Message) SignEd25519(priv ed25519.PrivateKey, external []byte, index int, ondex int) error {
	signer, err := cose.NewSigner(cose.AlgorithmEdDSA, priv)
	if err != nil {
		return fmt.Errorf("cose: new signer: %w", err)
	}

	if cs.Headers.Protected == nil {
		cs.Headers.Protected = make(cose.ProtectedHeader)
	}
	if cs.Headers.Unprotected == nil {
		cs.Headers.Unprotected = make(cose.UnprotectedHeader)
	}
	cs.Headers.Protected[cose.HeaderLabelAlgorithm] = cose.AlgorithmEdDSA
	cs.Headers.Unprotected[HeaderLabelKeyIndex] = int64(index)
	if ondex >= 0 {
		cs.Headers.Unprotected[HeaderLabelOndex] = int64(ondex)
	}

	return cs.Sign(rand.Reader, external, signer)
}

// KeyIndex returns the signer's recorded key index, and whether an ondex
// was present.
func (cs *CoseSign1Message) KeyIndex() (index int, ondex int, hasOndex bool, err error) {
	raw, ok := cs.Headers.Unprotected[HeaderLabelKeyIndex]
	if !ok {
		return 0, 0, false, fmt.Errorf("cose: no key index header")
	}
	idx, ok := toInt(raw)
	if !ok {
		return 0, 0, false, fmt.Errorf("cose: key index header has unexpected type %T", raw)
	}
	if odxRaw, present := cs.Headers.Unprotected[HeaderLabelOndex]; present {
		odx, ok := toInt(odxRaw)
		if !ok {
			return 0, 0, false, fmt.Errorf("cose: ondex header has unexpected type %T", odxRaw)
		}
		return idx, odx, true, nil
	}
	return idx, 0, false, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case int:
		return n, true
	case uint64:
		return int(n), true
	default:
		return 0, false
	}
}

// VerifyWithPublicKey verifies the message's signature against publicKey.
func (cs *CoseSign1Message) VerifyWithPublicKey(publicKey crypto.PublicKey, external []byte) error {
	verifier, err := cose.NewVerifier(cose.AlgorithmEdDSA, publicKey)
	if err != nil {
		return fmt.Errorf("cose: new verifier: %w", err)
	}
	return cs.Verify(external, verifier)
}
