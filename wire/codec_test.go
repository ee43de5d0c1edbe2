package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestUint32RoundTrip(t *testing.T) {
	for _, x := range []uint32{0, 1, 0xFFFFFFFF, 0x12345678} {
		buf := PutUint32(nil, x)
		got, rest, err := GetUint32(buf)
		require.NoError(t, err)
		require.Equal(t, x, got)
		require.Len(t, rest, 0)
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "hello", "日本語", "a reasonably long comment about a reversed function"} {
		buf := PutString(nil, s)
		got, rest, err := GetString(buf)
		require.NoError(t, err)
		require.Equal(t, s, got)
		require.Len(t, rest, 0)
	}
}

func TestBlobRoundTrip(t *testing.T) {
	for _, b := range [][]byte{nil, {}, {0x00}, {0xDE, 0xAD, 0xBE, 0xEF}, make([]byte, 4096)} {
		buf := PutBlob(nil, b)
		got, rest, err := GetBlob(buf)
		require.NoError(t, err)
		require.Equal(t, b, got)
		require.Len(t, rest, 0)
	}
}

func TestConcatenationConsumesExactly(t *testing.T) {
	var buf []byte
	buf = PutUint32(buf, 42)
	buf = PutString(buf, "name")
	buf = PutBlob(buf, []byte{1, 2, 3})

	n, rest, err := GetUint32(buf)
	require.NoError(t, err)
	require.Equal(t, uint32(42), n)

	s, rest, err := GetString(rest)
	require.NoError(t, err)
	require.Equal(t, "name", s)

	b, rest, err := GetBlob(rest)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, b)
	require.Len(t, rest, 0)
}

func TestTruncationIsCodecError(t *testing.T) {
	full := PutString(nil, "truncate me")
	for n := 0; n < len(full); n++ {
		_, _, err := GetString(full[:n])
		require.Errorf(t, err, "prefix length %d should fail to decode", n)
		var codecErr *CodecError
		require.ErrorAs(t, err, &codecErr)
	}
}

func TestInvalidUTF8String(t *testing.T) {
	invalid := PutBlob(nil, []byte{0xff, 0xfe, 0xfd})
	_, _, err := GetString(invalid)
	require.Error(t, err)
}

func TestRapidPrimitiveRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := rapid.Uint32().Draw(t, "uint32")
		s := rapid.String().Draw(t, "string")
		b := rapid.SliceOfN(rapid.Byte(), 0, 512).Draw(t, "blob")

		var buf []byte
		buf = PutUint32(buf, x)
		buf = PutString(buf, s)
		buf = PutBlob(buf, b)

		gotX, rest, err := GetUint32(buf)
		require.NoError(t, err)
		require.Equal(t, x, gotX)

		gotS, rest, err := GetString(rest)
		require.NoError(t, err)
		require.Equal(t, s, gotS)

		gotB, rest, err := GetBlob(rest)
		require.NoError(t, err)
		require.Equal(t, b, gotB)
		require.Len(t, rest, 0)
	})
}
