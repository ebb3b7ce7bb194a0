package crypter

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
)

// Signer holds an Ed25519 private key and can produce both signatures and
// the Verfer for its matching public key.
type Signer struct {
	priv ed25519.PrivateKey
}

// NewSigner generates a fresh Ed25519 keypair.
func NewSigner() (Signer, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return Signer{}, fmt.Errorf("crypter: generate key: %w", err)
	}
	return Signer{priv: priv}, nil
}

// NewSignerFromSeed derives a Signer from a 32 byte Ed25519 seed, the raw
// form of a CodeEd25519Seed Matter.
func NewSignerFromSeed(seed []byte) (Signer, error) {
	if len(seed) != ed25519.SeedSize {
		return Signer{}, fmt.Errorf("crypter: seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return Signer{priv: ed25519.NewKeyFromSeed(seed)}, nil
}

// Sign returns the raw 64 byte Ed25519 signature over ser.
func (s Signer) Sign(ser []byte) []byte {
	return ed25519.Sign(s.priv, ser)
}

// Verfer returns the qualified public key for this signer, transferable or
// not as requested by the caller (the key itself carries no opinion on
// that; it is a property of how the identifier that holds it was
// inceptioned).
func (s Signer) Verfer(transferable bool) (Verfer, error) {
	pub := s.priv.Public().(ed25519.PublicKey)
	return NewVerfer(pub, transferable)
}

// Seed returns the 32 byte seed this signer was derived from, qualified as
// a CodeEd25519Seed Matter for storage.
func (s Signer) Seed() Matter {
	seed := s.priv.Seed()
	m, _ := NewMatter(CodeEd25519Seed, seed)
	return m
}
