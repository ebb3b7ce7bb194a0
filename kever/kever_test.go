package kever

import (
	"testing"

	"github.com/datatrails/go-datatrails-keri/codec"
	"github.com/datatrails/go-datatrails-keri/crypter"
	"github.com/datatrails/go-datatrails-keri/eventing"
	"github.com/datatrails/go-datatrails-keri/store"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(t.TempDir()+"/kever.db", store.WithNoSync())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// buildIcp assembles a signed, sized, self-addressed inception frame and
// the decoded event/signature set New expects.
func buildIcp(t *testing.T, signer crypter.Signer, transferable bool, nextCommit string, witnesses []string, bt string) (*codec.Frame, *eventing.Event, []crypter.Siger, string) {
	t.Helper()
	verfer, err := signer.Verfer(transferable)
	require.NoError(t, err)

	ked := map[string]any{
		"t":  "icp",
		"s":  "0",
		"kt": "1",
		"k":  []string{verfer.Qb64()},
		"n":  nextCommit,
		"bt": bt,
		"b":  witnesses,
	}
	aid, err := crypter.DeriveAID(!transferable, verfer, crypter.DigestBlake3_256, codec.KindJSON, ked)
	require.NoError(t, err)
	ked["i"] = aid

	digest, raw, err := crypter.Saidify(crypter.DigestBlake3_256, codec.KindJSON, ked)
	require.NoError(t, err)

	frame, _, err := codec.Parse(raw)
	require.NoError(t, err)
	ev, err := eventing.Decode(frame)
	require.NoError(t, err)

	siger, err := crypter.NewSiger(signer, 0, nil, frame.Raw)
	require.NoError(t, err)

	return frame, ev, []crypter.Siger{siger}, digest
}

func buildIxn(t *testing.T, prefix, prior string, sn uint64, signer crypter.Signer, index int) (*codec.Frame, *eventing.Event, []crypter.Siger) {
	t.Helper()
	ked := map[string]any{
		"t": "ixn",
		"i": prefix,
		"s": eventing.SeqNumHex(sn),
		"p": prior,
		"a": []map[string]any{},
	}
	_, raw, err := crypter.Saidify(crypter.DigestBlake3_256, codec.KindJSON, ked)
	require.NoError(t, err)

	frame, _, err := codec.Parse(raw)
	require.NoError(t, err)
	ev, err := eventing.Decode(frame)
	require.NoError(t, err)

	siger, err := crypter.NewSiger(signer, index, nil, frame.Raw)
	require.NoError(t, err)
	return frame, ev, []crypter.Siger{siger}
}

func buildRot(t *testing.T, prefix, prior string, sn uint64, signer crypter.Signer, nextCommit string, br, ba []string, bt string) (*codec.Frame, *eventing.Event, []crypter.Siger, string) {
	t.Helper()
	verfer, err := signer.Verfer(true)
	require.NoError(t, err)

	ked := map[string]any{
		"t":  "rot",
		"i":  prefix,
		"s":  eventing.SeqNumHex(sn),
		"p":  prior,
		"kt": "1",
		"k":  []string{verfer.Qb64()},
		"n":  nextCommit,
		"bt": bt,
		"br": br,
		"ba": ba,
	}
	digest, raw, err := crypter.Saidify(crypter.DigestBlake3_256, codec.KindJSON, ked)
	require.NoError(t, err)

	frame, _, err := codec.Parse(raw)
	require.NoError(t, err)
	ev, err := eventing.Decode(frame)
	require.NoError(t, err)

	siger, err := crypter.NewSiger(signer, 0, nil, frame.Raw)
	require.NoError(t, err)
	return frame, ev, []crypter.Siger{siger}, digest
}
