package kever

import (
	"testing"

	"github.com/datatrails/go-datatrails-keri/crypter"
	"github.com/datatrails/go-datatrails-keri/store"
	"github.com/stretchr/testify/require"
)

// S2: rotate with pre-committed keys.
func TestRotateWithPreCommittedKeys(t *testing.T) {
	s := openTestStore(t)
	signer0, err := crypter.NewSigner()
	require.NoError(t, err)
	signer1, err := crypter.NewSigner()
	require.NoError(t, err)
	verfer1, err := signer1.Verfer(true)
	require.NoError(t, err)

	tholder1, err := crypter.NewSimpleTholder(1)
	require.NoError(t, err)
	nexter, err := crypter.NewNextCommitment(crypter.DigestBlake3_256, tholder1, []crypter.Verfer{verfer1})
	require.NoError(t, err)

	frame, ev, sigers, icpDigest := buildIcp(t, signer0, true, nexter.Qb64(), []string{}, "0")
	var k *Kever
	err = s.Update(func(tx *store.Tx) error {
		var err error
		k, err = New(tx, frame, ev, sigers)
		return err
	})
	require.NoError(t, err)

	rotFrame, rotEv, rotSigers, rotDigest := buildRot(t, k.Prefix, icpDigest, 1, signer1, "", nil, nil, "0")
	err = s.Update(func(tx *store.Tx) error {
		return k.Rotate(tx, rotFrame, rotEv, rotSigers)
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1), k.Sn)
	require.Equal(t, rotDigest, k.Digest)
	require.Equal(t, LastEst{Sn: 1, Digest: rotDigest}, k.LastEst)
}

func TestRotateRejectsBadNextCommitment(t *testing.T) {
	s := openTestStore(t)
	signer0, err := crypter.NewSigner()
	require.NoError(t, err)
	signer1, err := crypter.NewSigner()
	require.NoError(t, err)
	other, err := crypter.NewSigner()
	require.NoError(t, err)
	verferOther, err := other.Verfer(true)
	require.NoError(t, err)

	tholder1, err := crypter.NewSimpleTholder(1)
	require.NoError(t, err)
	// Commitment names a key other than the one the rotation actually uses.
	nexter, err := crypter.NewNextCommitment(crypter.DigestBlake3_256, tholder1, []crypter.Verfer{verferOther})
	require.NoError(t, err)

	frame, ev, sigers, icpDigest := buildIcp(t, signer0, true, nexter.Qb64(), []string{}, "0")
	var k *Kever
	err = s.Update(func(tx *store.Tx) error {
		var err error
		k, err = New(tx, frame, ev, sigers)
		return err
	})
	require.NoError(t, err)

	rotFrame, rotEv, rotSigers, _ := buildRot(t, k.Prefix, icpDigest, 1, signer1, "", nil, nil, "0")
	err = s.Update(func(tx *store.Tx) error {
		return k.Rotate(tx, rotFrame, rotEv, rotSigers)
	})
	require.ErrorIs(t, err, ErrBadNextCommit)
}

// S5: recovery across a run of interaction-only events.
func TestRotateRecoverySupersedesInteractions(t *testing.T) {
	s := openTestStore(t)
	signer0, err := crypter.NewSigner()
	require.NoError(t, err)
	signer1, err := crypter.NewSigner()
	require.NoError(t, err)
	verfer1, err := signer1.Verfer(true)
	require.NoError(t, err)
	tholder1, err := crypter.NewSimpleTholder(1)
	require.NoError(t, err)
	nexter, err := crypter.NewNextCommitment(crypter.DigestBlake3_256, tholder1, []crypter.Verfer{verfer1})
	require.NoError(t, err)

	frame, ev, sigers, icpDigest := buildIcp(t, signer0, true, nexter.Qb64(), []string{}, "0")
	var k *Kever
	err = s.Update(func(tx *store.Tx) error {
		var err error
		k, err = New(tx, frame, ev, sigers)
		return err
	})
	require.NoError(t, err)

	ixn1Frame, ixn1Ev, ixn1Sigers := buildIxn(t, k.Prefix, icpDigest, 1, signer0, 0)
	err = s.Update(func(tx *store.Tx) error {
		return k.Interact(tx, ixn1Frame, ixn1Ev, ixn1Sigers)
	})
	require.NoError(t, err)
	ixn1Digest := k.Digest

	ixn2Frame, ixn2Ev, ixn2Sigers := buildIxn(t, k.Prefix, ixn1Digest, 2, signer0, 0)
	err = s.Update(func(tx *store.Tx) error {
		return k.Interact(tx, ixn2Frame, ixn2Ev, ixn2Sigers)
	})
	require.NoError(t, err)
	require.Equal(t, uint64(2), k.Sn)

	rotFrame, rotEv, rotSigers, rotDigest := buildRot(t, k.Prefix, icpDigest, 1, signer1, "", nil, nil, "0")
	err = s.Update(func(tx *store.Tx) error {
		return k.Rotate(tx, rotFrame, rotEv, rotSigers)
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1), k.Sn)
	require.Equal(t, rotDigest, k.Digest)
	require.Equal(t, LastEst{Sn: 1, Digest: rotDigest}, k.LastEst)

	err = s.View(func(tx *store.Tx) error {
		ke, err := tx.On(store.KE)
		require.NoError(t, err)
		require.Equal(t, 2, ke.Count(store.PrefixSnKey(k.Prefix, 1)))
		return nil
	})
	require.NoError(t, err)
}

// A recovery naming a sn in range but a p that does not chain to the
// accepted digest at sn-1 must be rejected, not silently accepted because
// the sn bound alone looked admissible.
func TestRotateRecoveryRejectsBadPrior(t *testing.T) {
	s := openTestStore(t)
	signer0, err := crypter.NewSigner()
	require.NoError(t, err)
	signer1, err := crypter.NewSigner()
	require.NoError(t, err)
	verfer1, err := signer1.Verfer(true)
	require.NoError(t, err)
	tholder1, err := crypter.NewSimpleTholder(1)
	require.NoError(t, err)
	nexter, err := crypter.NewNextCommitment(crypter.DigestBlake3_256, tholder1, []crypter.Verfer{verfer1})
	require.NoError(t, err)

	frame, ev, sigers, icpDigest := buildIcp(t, signer0, true, nexter.Qb64(), []string{}, "0")
	var k *Kever
	err = s.Update(func(tx *store.Tx) error {
		var err error
		k, err = New(tx, frame, ev, sigers)
		return err
	})
	require.NoError(t, err)

	ixn1Frame, ixn1Ev, ixn1Sigers := buildIxn(t, k.Prefix, icpDigest, 1, signer0, 0)
	err = s.Update(func(tx *store.Tx) error {
		return k.Interact(tx, ixn1Frame, ixn1Ev, ixn1Sigers)
	})
	require.NoError(t, err)
	ixn1Digest := k.Digest

	ixn2Frame, ixn2Ev, ixn2Sigers := buildIxn(t, k.Prefix, ixn1Digest, 2, signer0, 0)
	err = s.Update(func(tx *store.Tx) error {
		return k.Interact(tx, ixn2Frame, ixn2Ev, ixn2Sigers)
	})
	require.NoError(t, err)
	require.Equal(t, uint64(2), k.Sn)

	// sn=1 is within (LastEst.Sn, Sn] = (0, 2], so the sn bound alone would
	// pass, but the p named here (ixn1Digest) is not the digest accepted at
	// sn-1=0 (icpDigest).
	rotFrame, rotEv, rotSigers, _ := buildRot(t, k.Prefix, ixn1Digest, 1, signer1, "", nil, nil, "0")
	err = s.Update(func(tx *store.Tx) error {
		return k.Rotate(tx, rotFrame, rotEv, rotSigers)
	})
	require.ErrorIs(t, err, ErrBadPrior)
	require.Equal(t, uint64(2), k.Sn, "rejected recovery must not mutate state")
}
