package escrow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildAndVerifyExclusionProof(t *testing.T) {
	accepted := []string{"Edigest1aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"Edigest2bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		"Edigest3ccccccccccccccccccccccccccccccccccccc"}
	candidate := "EduplicitousXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX"

	proof, root, err := BuildExclusionProof(accepted, candidate)
	require.NoError(t, err)

	ok, err := VerifyExclusionProof(root, proof)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestBuildExclusionProofRejectsEmptyAcceptedSet(t *testing.T) {
	_, _, err := BuildExclusionProof(nil, "Ecandidate")
	require.Error(t, err)
}

func TestVerifyExclusionProofFailsAgainstWrongRoot(t *testing.T) {
	accepted := []string{"Edigest1aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"Edigest2bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"}
	candidate := "EduplicitousXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX"

	proof, _, err := BuildExclusionProof(accepted, candidate)
	require.NoError(t, err)

	var wrongRoot [32]byte
	wrongRoot[0] = 0xFF
	ok, err := VerifyExclusionProof(wrongRoot, proof)
	require.Error(t, err)
	require.False(t, ok)
}
