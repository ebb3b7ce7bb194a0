package crypter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignerSignAndVerify(t *testing.T) {
	signer, err := NewSigner()
	require.NoError(t, err)

	verfer, err := signer.Verfer(true)
	require.NoError(t, err)
	require.True(t, verfer.Transferable())

	msg := []byte("inception event bytes")
	sig := signer.Sign(msg)
	require.True(t, verfer.Verify(msg, sig))
	require.False(t, verfer.Verify([]byte("tampered"), sig))
}

func TestSignerFromSeedDeterministic(t *testing.T) {
	signer, err := NewSigner()
	require.NoError(t, err)
	seed := signer.Seed()

	restored, err := NewSignerFromSeed(seed.Raw)
	require.NoError(t, err)

	verfer, _ := signer.Verfer(true)
	restoredVerfer, _ := restored.Verfer(true)
	require.Equal(t, verfer.Qb64(), restoredVerfer.Qb64())
}

func TestCigarVerify(t *testing.T) {
	signer, err := NewSigner()
	require.NoError(t, err)
	verfer, err := signer.Verfer(false)
	require.NoError(t, err)

	msg := []byte("receipted event bytes")
	cigar, err := NewCigar(signer, verfer, msg)
	require.NoError(t, err)
	require.True(t, cigar.Verify(msg))
}

func TestSigerIndexRoundTrip(t *testing.T) {
	signer, err := NewSigner()
	require.NoError(t, err)
	verfer, err := signer.Verfer(true)
	require.NoError(t, err)

	msg := []byte("rotation event bytes")
	ondex := 2
	siger, err := NewSiger(signer, 3, &ondex, msg)
	require.NoError(t, err)
	require.True(t, siger.Verify(verfer, msg))

	back, err := ParseSiger(siger.Qb64())
	require.NoError(t, err)
	require.Equal(t, 3, back.Index)
	require.NotNil(t, back.Ondex)
	require.Equal(t, 2, *back.Ondex)
}
