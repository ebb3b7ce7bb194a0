package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeAndFindVersionString(t *testing.T) {
	vs, err := MakeVersionString(Version{Major: 1, Minor: 0}, KindJSON, 0x150)
	require.NoError(t, err)
	require.Equal(t, "KERI10JSON000150_", vs)
	require.Len(t, vs, VersionStringSize)

	buf := []byte(`{"v":"` + vs + `","t":"icp"}`)
	offset, ver, kind, size, err := FindVersionString(buf)
	require.NoError(t, err)
	require.Equal(t, 6, offset)
	require.Equal(t, Version{Major: 1, Minor: 0}, ver)
	require.Equal(t, KindJSON, kind)
	require.Equal(t, 0x150, size)
}

func TestFindVersionStringMissing(t *testing.T) {
	_, _, _, _, err := FindVersionString([]byte(`{"t":"icp"}`))
	require.ErrorIs(t, err, ErrNoVersionString)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("CBOR")
	require.NoError(t, err)
	require.Equal(t, KindCBOR, k)

	_, err = ParseKind("XML ")
	require.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestPlaceholderVersionStringWidth(t *testing.T) {
	for _, k := range []Kind{KindJSON, KindCBOR, KindMGPK} {
		require.Len(t, PlaceholderVersionString(k), VersionStringSize)
	}
}
