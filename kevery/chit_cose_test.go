package kevery

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSealAndOpenChitCOSE(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	digest := []byte("EsomeEventDigest")
	raw, err := SealChitCOSE(priv, 2, -1, digest)
	require.NoError(t, err)

	opened, idx, err := OpenChitCOSE(pub, raw)
	require.NoError(t, err)
	require.Equal(t, digest, opened)
	require.Equal(t, 2, idx)
}

func TestOpenChitCOSERejectsWrongKey(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	otherPub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	raw, err := SealChitCOSE(priv, 0, -1, []byte("digest"))
	require.NoError(t, err)

	_, _, err = OpenChitCOSE(otherPub, raw)
	require.Error(t, err)
}
