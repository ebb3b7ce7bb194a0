package felog

import (
	"testing"

	"github.com/datatrails/go-datatrails-keri/store"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(t.TempDir()+"/felog.db", store.WithNoSync())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAppendAssignsContiguousFn(t *testing.T) {
	s := openTestStore(t)
	prefix := "EAbc"

	leaves := [][]byte{
		[]byte("digest-0-------------------xxxxx"),
		[]byte("digest-1-------------------xxxxx"),
		[]byte("digest-2-------------------xxxxx"),
	}
	for i, leaf := range leaves {
		err := s.Update(func(tx *store.Tx) error {
			fn, _, err := Append(tx, prefix, leaf)
			require.Equal(t, uint64(i), fn)
			return err
		})
		require.NoError(t, err)
	}
}

func TestRootChangesOnEveryAppend(t *testing.T) {
	s := openTestStore(t)
	prefix := "EDef"

	var roots [][]byte
	for i := 0; i < 4; i++ {
		leaf := []byte{byte(i), 1, 2, 3}
		err := s.Update(func(tx *store.Tx) error {
			_, _, err := Append(tx, prefix, leaf)
			return err
		})
		require.NoError(t, err)

		err = s.View(func(tx *store.Tx) error {
			root, err := Root(tx, prefix)
			require.NoError(t, err)
			require.NotNil(t, root)
			roots = append(roots, root)
			return nil
		})
		require.NoError(t, err)
	}
	for i := 1; i < len(roots); i++ {
		require.NotEqual(t, roots[i-1], roots[i])
	}
}

func TestInclusionProofVerifies(t *testing.T) {
	s := openTestStore(t)
	prefix := "EGhi"

	leaves := make([][]byte, 0, 5)
	for i := 0; i < 5; i++ {
		leaf := []byte{byte(i), 9, 9, 9, 9}
		leaves = append(leaves, leaf)
		err := s.Update(func(tx *store.Tx) error {
			_, _, err := Append(tx, prefix, leaf)
			return err
		})
		require.NoError(t, err)
	}

	var size uint64
	var root []byte
	err := s.View(func(tx *store.Tx) error {
		var err error
		size, err = Size(tx, prefix)
		require.NoError(t, err)
		root, err = Root(tx, prefix)
		return err
	})
	require.NoError(t, err)

	for fn, leaf := range leaves {
		var proof [][]byte
		err := s.View(func(tx *store.Tx) error {
			var err error
			proof, err = InclusionProof(tx, prefix, uint64(fn))
			return err
		})
		require.NoError(t, err)
		require.True(t, VerifyInclusion(size, uint64(fn), leaf, proof, root),
			"leaf %d must verify against the current root", fn)
	}
}

func TestDistinctIdentifiersDoNotShareALog(t *testing.T) {
	s := openTestStore(t)

	err := s.Update(func(tx *store.Tx) error {
		_, _, err := Append(tx, "EOne", []byte{1, 1, 1, 1})
		return err
	})
	require.NoError(t, err)

	err = s.View(func(tx *store.Tx) error {
		size, err := Size(tx, "ETwo")
		require.NoError(t, err)
		require.Equal(t, uint64(0), size)
		root, err := Root(tx, "ETwo")
		require.NoError(t, err)
		require.Nil(t, root)
		return nil
	})
	require.NoError(t, err)
}
