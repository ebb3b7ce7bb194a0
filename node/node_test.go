package node

import (
	"testing"
	"time"

	"github.com/datatrails/go-datatrails-keri/codec"
	"github.com/datatrails/go-datatrails-keri/crypter"
	"github.com/datatrails/go-datatrails-keri/store"
	"github.com/stretchr/testify/require"
)

func buildIcpEvent(t *testing.T, signer crypter.Signer, transferable bool, nextCommit string) (*codec.Frame, string) {
	t.Helper()
	verfer, err := signer.Verfer(transferable)
	require.NoError(t, err)

	ked := map[string]any{
		"t":  "icp",
		"s":  "0",
		"kt": "1",
		"k":  []string{verfer.Qb64()},
		"n":  nextCommit,
		"bt": "0",
		"b":  []string{},
	}
	aid, err := crypter.DeriveAID(!transferable, verfer, crypter.DigestBlake3_256, codec.KindJSON, ked)
	require.NoError(t, err)
	ked["i"] = aid

	digest, raw, err := crypter.Saidify(crypter.DigestBlake3_256, codec.KindJSON, ked)
	require.NoError(t, err)

	frame, _, err := codec.Parse(raw)
	require.NoError(t, err)
	return frame, digest
}

func message(frame *codec.Frame, sigers []crypter.Siger) []byte {
	out := append([]byte{}, frame.Raw...)
	for _, s := range sigers {
		out = append(out, []byte(s.Qb64())...)
	}
	return out
}

func openTestNode(t *testing.T) *Node {
	t.Helper()
	n, err := OpenNode(t.TempDir()+"/node.db", WithStoreOptions(store.WithNoSync()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = n.Close() })
	return n
}

func TestOpenNodeIngestAndLookup(t *testing.T) {
	n := openTestNode(t)

	signer, err := crypter.NewSigner()
	require.NoError(t, err)
	frame, digest := buildIcpEvent(t, signer, false, "")
	siger, err := crypter.NewSiger(signer, 0, nil, frame.Raw)
	require.NoError(t, err)

	_, have := n.Kevers().Get(digest)
	require.False(t, have)

	cue, consumed, err := n.Ingest(message(frame, []crypter.Siger{siger}))
	require.NoError(t, err)
	require.NotNil(t, cue)
	require.Equal(t, digest, cue.Digest)
	require.Equal(t, len(frame.Raw)+len(siger.Qb64()), consumed)

	k, have := n.Kevers().Get(cue.Prefix)
	require.True(t, have)
	require.Equal(t, uint64(0), k.Sn)
}

func TestStampedCuesCarryIncreasingIDs(t *testing.T) {
	n := openTestNode(t)

	var ids []uint64
	for i := 0; i < 3; i++ {
		signer, err := crypter.NewSigner()
		require.NoError(t, err)
		frame, _ := buildIcpEvent(t, signer, false, "")
		siger, err := crypter.NewSiger(signer, 0, nil, frame.Raw)
		require.NoError(t, err)

		cue, _, err := n.Ingest(message(frame, []crypter.Siger{siger}))
		require.NoError(t, err)
		require.NotNil(t, cue)
		ids = append(ids, cue.ID)
	}

	for i := 1; i < len(ids); i++ {
		require.Greater(t, ids[i], ids[i-1])
	}
}

func TestDrainEscrowsReturnsStampedCues(t *testing.T) {
	n := openTestNode(t)

	// Nothing escrowed yet: draining is a no-op.
	cues, err := n.DrainEscrows(time.Now())
	require.NoError(t, err)
	require.Empty(t, cues)

	signer, err := crypter.NewSigner()
	require.NoError(t, err)
	frame, digest := buildIcpEvent(t, signer, false, "")

	// No signatures attached: nothing to escrow, nothing to commit.
	cue, _, err := n.Ingest(frame.Raw)
	require.Error(t, err)
	require.Nil(t, cue)

	siger, err := crypter.NewSiger(signer, 0, nil, frame.Raw)
	require.NoError(t, err)
	cue, _, err = n.Ingest(message(frame, []crypter.Siger{siger}))
	require.NoError(t, err)
	require.NotNil(t, cue)
	require.Equal(t, digest, cue.Digest)

	cues, err = n.DrainEscrows(time.Now())
	require.NoError(t, err)
	require.Empty(t, cues)
}
