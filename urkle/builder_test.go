package urkle

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderInsertRejectsOutOfOrderAndDuplicate(t *testing.T) {
	leafCount := uint64(8)
	leafTable := make([]byte, LeafTableBytes(leafCount))
	nodeStore := make([]byte, NodeStoreBytes(leafCount))

	b, err := NewBuilder(sha256.New(), leafTable, nodeStore)
	require.NoError(t, err)

	var v [HashBytes]byte
	v[0] = 0xAA

	_, err = b.InsertMonotone(10, v[:])
	require.NoError(t, err)

	_, err = b.InsertMonotone(20, v[:])
	require.NoError(t, err)

	// Duplicate
	_, err = b.InsertMonotone(20, v[:])
	require.ErrorIs(t, err, ErrDuplicateKey)

	// Out of order
	_, err = b.InsertMonotone(15, v[:])
	require.ErrorIs(t, err, ErrOutOfOrderKey)
}

func TestBuilderRejectsOversizeInsert(t *testing.T) {
	leafCount := uint64(2)
	leafTable := make([]byte, LeafTableBytes(leafCount))
	nodeStore := make([]byte, NodeStoreBytes(leafCount))

	b, err := NewBuilder(sha256.New(), leafTable, nodeStore)
	require.NoError(t, err)

	var v [HashBytes]byte
	_, err = b.InsertMonotone(1, v[:])
	require.NoError(t, err)
	_, err = b.InsertMonotone(2, v[:])
	require.NoError(t, err)

	_, err = b.InsertMonotone(3, v[:])
	require.ErrorIs(t, err, ErrInvalidLeafOrdinal)
}
