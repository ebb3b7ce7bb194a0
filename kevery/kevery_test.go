package kevery

import (
	"testing"
	"time"

	"github.com/datatrails/go-datatrails-keri/codec"
	"github.com/datatrails/go-datatrails-keri/crypter"
	"github.com/datatrails/go-datatrails-keri/eventing"
	"github.com/datatrails/go-datatrails-keri/store"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(t.TempDir()+"/kevery.db", store.WithNoSync())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// message renders a frame plus its attached Sigers as one framed-mode
// wire message: the raw event bytes followed by each Siger's fixed-width
// qb64 form, with no counter.
func message(frame *codec.Frame, sigers []crypter.Siger) []byte {
	out := append([]byte{}, frame.Raw...)
	for _, s := range sigers {
		out = append(out, []byte(s.Qb64())...)
	}
	return out
}

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

func buildIxnEvent(t *testing.T, prefix, prior string, sn uint64) *codec.Frame {
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
	return frame
}

func buildRotEvent(t *testing.T, prefix, prior string, sn uint64, signer crypter.Signer, nextCommit, bt string) (*codec.Frame, string) {
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
		"br": []string{},
		"ba": []string{},
	}
	digest, raw, err := crypter.Saidify(crypter.DigestBlake3_256, codec.KindJSON, ked)
	require.NoError(t, err)
	frame, _, err := codec.Parse(raw)
	require.NoError(t, err)
	return frame, digest
}

// TestIngestInceptionNonTransferable covers S1 through the wire-level
// Ingest entry point rather than Kever's own constructor directly.
func TestIngestInceptionNonTransferable(t *testing.T) {
	s := openTestStore(t)
	kv, err := New(s)
	require.NoError(t, err)

	signer, err := crypter.NewSigner()
	require.NoError(t, err)
	frame, digest := buildIcpEvent(t, signer, false, "")
	siger, err := crypter.NewSiger(signer, 0, nil, frame.Raw)
	require.NoError(t, err)

	cue, n, err := kv.Ingest(message(frame, []crypter.Siger{siger}))
	require.NoError(t, err)
	require.Equal(t, len(frame.Raw)+len(siger.Qb64()), n)
	require.NotNil(t, cue)
	require.Equal(t, digest, cue.Digest)

	k, ok := kv.Get(cue.Prefix)
	require.True(t, ok)
	require.True(t, k.NonTransferable)
}

// TestOutOfOrderThenHeal covers S3: a rotation at sn=2 arrives before sn=1,
// is escrowed into OOES, and is accepted on drain once sn=1 lands.
func TestOutOfOrderThenHeal(t *testing.T) {
	s := openTestStore(t)
	kv, err := New(s)
	require.NoError(t, err)

	signer, err := crypter.NewSigner()
	require.NoError(t, err)
	verfer, err := signer.Verfer(true)
	require.NoError(t, err)
	tholder, err := crypter.NewSimpleTholder(1)
	require.NoError(t, err)
	nexter, err := crypter.NewNextCommitment(crypter.DigestBlake3_256, tholder, []crypter.Verfer{verfer})
	require.NoError(t, err)

	icpFrame, icpDigest := buildIcpEvent(t, signer, true, nexter.Qb64())
	icpSiger, err := crypter.NewSiger(signer, 0, nil, icpFrame.Raw)
	require.NoError(t, err)
	cue, _, err := kv.Ingest(message(icpFrame, []crypter.Siger{icpSiger}))
	require.NoError(t, err)
	prefix := cue.Prefix

	rotFrame1, rotDigest1 := buildRotEvent(t, prefix, icpDigest, 1, signer, nexter.Qb64(), "0")
	rotSiger1, err := crypter.NewSiger(signer, 0, nil, rotFrame1.Raw)
	require.NoError(t, err)

	rotFrame2, rotDigest2 := buildRotEvent(t, prefix, rotDigest1, 2, signer, "", "0")
	rotSiger2, err := crypter.NewSiger(signer, 0, nil, rotFrame2.Raw)
	require.NoError(t, err)
	cue, _, err = kv.Ingest(message(rotFrame2, []crypter.Siger{rotSiger2}))
	require.NoError(t, err)
	require.Nil(t, cue)

	k, _ := kv.Get(prefix)
	require.Equal(t, uint64(0), k.Sn)

	cue, _, err = kv.Ingest(message(rotFrame1, []crypter.Siger{rotSiger1}))
	require.NoError(t, err)
	require.NotNil(t, cue)

	cues, err := kv.DrainEscrows(time.Now())
	require.NoError(t, err)
	require.Len(t, cues, 1)
	require.Equal(t, rotDigest2, cues[0].Digest)

	k, _ = kv.Get(prefix)
	require.Equal(t, uint64(2), k.Sn)

	err = s.View(func(tx *store.Tx) error {
		ke, err := tx.On(store.KE)
		require.NoError(t, err)
		on, val, found := ke.Last(store.PrefixSnKey(prefix, 2))
		require.True(t, found)
		require.Equal(t, uint64(0), on)
		require.Equal(t, rotDigest2, string(val))
		return nil
	})
	require.NoError(t, err)
}

// TestDuplicateDigestDiscarded exercises the idempotency path: the same
// inception frame ingested twice leaves the Kever and cue count unchanged
// on the second pass.
func TestDuplicateDigestDiscarded(t *testing.T) {
	s := openTestStore(t)
	kv, err := New(s)
	require.NoError(t, err)

	signer, err := crypter.NewSigner()
	require.NoError(t, err)
	frame, _ := buildIcpEvent(t, signer, false, "")
	siger, err := crypter.NewSiger(signer, 0, nil, frame.Raw)
	require.NoError(t, err)
	msg := message(frame, []crypter.Siger{siger})

	cue1, _, err := kv.Ingest(msg)
	require.NoError(t, err)
	require.NotNil(t, cue1)

	cue2, _, err := kv.Ingest(msg)
	require.NoError(t, err)
	require.Nil(t, cue2)
}
