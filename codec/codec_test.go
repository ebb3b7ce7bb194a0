package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSizeifyJSONPatchesSizeInPlace(t *testing.T) {
	ked := map[string]any{
		"v": PlaceholderVersionString(KindJSON),
		"t": "icp",
		"i": "E" + string(make([]byte, 43)),
	}
	raw, err := Sizeify(KindJSON, ked)
	require.NoError(t, err)

	_, ver, kind, size, err := FindVersionString(raw)
	require.NoError(t, err)
	require.Equal(t, KindJSON, kind)
	require.Equal(t, Version{Major: Major, Minor: Minor}, ver)
	require.Equal(t, len(raw), size)
}

func TestParseRoundTrip(t *testing.T) {
	ked := map[string]any{
		"v": PlaceholderVersionString(KindJSON),
		"t": "icp",
		"s": "0",
	}
	raw, err := Sizeify(KindJSON, ked)
	require.NoError(t, err)

	frame, consumed, err := Parse(raw)
	require.NoError(t, err)
	require.Equal(t, len(raw), consumed)
	require.Equal(t, "icp", frame.Ked["t"])
	require.Equal(t, KindJSON, frame.Kind)
}

func TestParseShortBufferReturnsShortage(t *testing.T) {
	ked := map[string]any{
		"v": PlaceholderVersionString(KindJSON),
		"t": "icp",
	}
	raw, err := Sizeify(KindJSON, ked)
	require.NoError(t, err)

	_, _, err = Parse(raw[:len(raw)-1])
	require.ErrorIs(t, err, ErrShortage)
}

func TestMarshalUnmarshalAllKinds(t *testing.T) {
	for _, kind := range []Kind{KindJSON, KindCBOR, KindMGPK} {
		raw, err := Marshal(kind, map[string]any{"a": "b"})
		require.NoError(t, err)

		var out map[string]any
		require.NoError(t, Unmarshal(kind, raw, &out))
		require.Equal(t, "b", out["a"])
	}
}
