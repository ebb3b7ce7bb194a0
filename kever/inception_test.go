package kever

import (
	"testing"

	"github.com/datatrails/go-datatrails-keri/codec"
	"github.com/datatrails/go-datatrails-keri/crypter"
	"github.com/datatrails/go-datatrails-keri/eventing"
	"github.com/datatrails/go-datatrails-keri/store"
	"github.com/stretchr/testify/require"
)

// S1: inception of a non-transferable single-key AID.
func TestNewInceptionNonTransferable(t *testing.T) {
	s := openTestStore(t)
	signer, err := crypter.NewSigner()
	require.NoError(t, err)

	frame, ev, sigers, digest := buildIcp(t, signer, false, "", []string{}, "0")

	var k *Kever
	err = s.Update(func(tx *store.Tx) error {
		var err error
		k, err = New(tx, frame, ev, sigers)
		return err
	})
	require.NoError(t, err)
	require.True(t, k.NonTransferable)
	require.Equal(t, uint64(0), k.Sn)
	require.Equal(t, digest, k.Digest)
	require.Nil(t, k.NextCommitment)

	err = s.View(func(tx *store.Tx) error {
		ke, err := tx.On(store.KE)
		require.NoError(t, err)
		on, val, found := ke.Last(store.PrefixSnKey(k.Prefix, 0))
		require.True(t, found)
		require.Equal(t, uint64(0), on)
		require.Equal(t, digest, string(val))
		return nil
	})
	require.NoError(t, err)

	// further events must be rejected once NonTransferable.
	frame2, ev2, sigers2 := buildIxn(t, k.Prefix, digest, 1, signer, 0)
	err = s.Update(func(tx *store.Tx) error {
		return k.Interact(tx, frame2, ev2, sigers2)
	})
	require.ErrorIs(t, err, ErrNonTransferable)
}

func TestNewInceptionBelowThresholdEscrows(t *testing.T) {
	s := openTestStore(t)
	signer, err := crypter.NewSigner()
	require.NoError(t, err)
	signer2, err := crypter.NewSigner()
	require.NoError(t, err)
	verfer2, err := signer2.Verfer(true)
	require.NoError(t, err)
	verfer1, err := signer.Verfer(true)
	require.NoError(t, err)

	tholder, err := crypter.NewSimpleTholder(2)
	require.NoError(t, err)
	nexter, err := crypter.NewNextCommitment(crypter.DigestBlake3_256, tholder, []crypter.Verfer{verfer1, verfer2})
	require.NoError(t, err)

	ked := map[string]any{
		"t":  "icp",
		"s":  "0",
		"kt": "2",
		"k":  []string{verfer1.Qb64(), verfer2.Qb64()},
		"n":  nexter.Qb64(),
		"bt": "0",
		"b":  []string{},
	}
	aid, err := crypter.DeriveAID(false, verfer1, crypter.DigestBlake3_256, codec.KindJSON, ked)
	require.NoError(t, err)
	ked["i"] = aid
	_, raw, err := crypter.Saidify(crypter.DigestBlake3_256, codec.KindJSON, ked)
	require.NoError(t, err)

	frame, _, err := codec.Parse(raw)
	require.NoError(t, err)
	ev, err := eventing.Decode(frame)
	require.NoError(t, err)

	siger, err := crypter.NewSiger(signer, 0, nil, frame.Raw)
	require.NoError(t, err)

	err = s.Update(func(tx *store.Tx) error {
		_, err := New(tx, frame, ev, []crypter.Siger{siger})
		return err
	})
	require.ErrorIs(t, err, ErrMissingSignature)
}
