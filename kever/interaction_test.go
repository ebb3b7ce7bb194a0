package kever

import (
	"testing"

	"github.com/datatrails/go-datatrails-keri/crypter"
	"github.com/datatrails/go-datatrails-keri/store"
	"github.com/stretchr/testify/require"
)

func TestInteractAdvancesSnAndDigest(t *testing.T) {
	s := openTestStore(t)
	signer, err := crypter.NewSigner()
	require.NoError(t, err)
	verfer, err := signer.Verfer(true)
	require.NoError(t, err)
	tholder, err := crypter.NewSimpleTholder(1)
	require.NoError(t, err)
	nexter, err := crypter.NewNextCommitment(crypter.DigestBlake3_256, tholder, []crypter.Verfer{verfer})
	require.NoError(t, err)

	frame, ev, sigers, icpDigest := buildIcp(t, signer, true, nexter.Qb64(), []string{}, "0")
	var k *Kever
	err = s.Update(func(tx *store.Tx) error {
		var err error
		k, err = New(tx, frame, ev, sigers)
		return err
	})
	require.NoError(t, err)

	ixnFrame, ixnEv, ixnSigers := buildIxn(t, k.Prefix, icpDigest, 1, signer, 0)
	err = s.Update(func(tx *store.Tx) error {
		return k.Interact(tx, ixnFrame, ixnEv, ixnSigers)
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1), k.Sn)
	require.Equal(t, LastEst{Sn: 0, Digest: icpDigest}, k.LastEst)

	// Stale resubmission of sn=1 must be rejected, not silently reapplied.
	err = s.Update(func(tx *store.Tx) error {
		return k.Interact(tx, ixnFrame, ixnEv, ixnSigers)
	})
	require.ErrorIs(t, err, ErrStale)
}

func TestInteractRejectsOutOfOrder(t *testing.T) {
	s := openTestStore(t)
	signer, err := crypter.NewSigner()
	require.NoError(t, err)
	verfer, err := signer.Verfer(true)
	require.NoError(t, err)
	tholder, err := crypter.NewSimpleTholder(1)
	require.NoError(t, err)
	nexter, err := crypter.NewNextCommitment(crypter.DigestBlake3_256, tholder, []crypter.Verfer{verfer})
	require.NoError(t, err)

	frame, ev, sigers, icpDigest := buildIcp(t, signer, true, nexter.Qb64(), []string{}, "0")
	var k *Kever
	err = s.Update(func(tx *store.Tx) error {
		var err error
		k, err = New(tx, frame, ev, sigers)
		return err
	})
	require.NoError(t, err)

	ixnFrame, ixnEv, ixnSigers := buildIxn(t, k.Prefix, icpDigest, 2, signer, 0)
	err = s.Update(func(tx *store.Tx) error {
		return k.Interact(tx, ixnFrame, ixnEv, ixnSigers)
	})
	require.ErrorIs(t, err, ErrOutOfOrder)
}
