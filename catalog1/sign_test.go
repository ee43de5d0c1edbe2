package catalog1

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSignLength(t *testing.T) {
	cases := []struct {
		body     []byte
		numPerms uint32
	}{
		{[]byte("afdasdklfjaskljdfaklsjdf"), 16},
		{[]byte("3kl4jfklsdjfklasjf8934j9sjdf9adfkalsdjflkasjdflkasdf"), 20},
		{[]byte("4095809348529384523904582390485092384509283"), 32},
	}

	for _, c := range cases {
		sig, err := Sign(c.body, c.numPerms)
		require.NoError(t, err)
		require.Len(t, sig, int(c.numPerms))
	}
}

func TestSignLongData(t *testing.T) {
	body := []byte("asdfklasjdf")
	var long []byte
	for i := 0; i < 40; i++ {
		long = append(long, body...)
	}

	sig, err := Sign(long, 20)
	require.NoError(t, err)
	require.Len(t, sig, 20)
}

func TestSignDeterministic(t *testing.T) {
	body := []byte("3kl4jfklsdjfklasjf8934j9sjdf9adfkalsdjflkasjdflkasdf")

	sig1, err := Sign(body, 20)
	require.NoError(t, err)
	sig2, err := Sign(body, 20)
	require.NoError(t, err)
	require.Equal(t, sig1, sig2)
}

func TestSignSimilarBodiesAgree(t *testing.T) {
	s1, err := Sign([]byte("hello world he2llo world"), 16)
	require.NoError(t, err)
	s2, err := Sign([]byte("hello world he1llo world"), 16)
	require.NoError(t, err)

	require.Greater(t, Grade(s1, s2), 6)
}

func TestSignUnrelatedBodiesDisagree(t *testing.T) {
	s1, err := Sign([]byte("akjdflkasjflkasjlfkasjdflkjaslkdfjaslkjfsaklfdjaslkjdfsf"), 16)
	require.NoError(t, err)
	s2, err := Sign([]byte("4039582903850923850928345982309589023845823458230945"), 16)
	require.NoError(t, err)

	require.Equal(t, 0, Grade(s1, s2))
}

func TestSignRejectsZeroPerms(t *testing.T) {
	_, err := Sign([]byte("anything"), 0)
	require.Error(t, err)
}

func TestSignDegenerateShortBody(t *testing.T) {
	for _, body := range [][]byte{nil, []byte("a"), []byte("ab"), []byte("abc")} {
		sig, err := Sign(body, 8)
		require.NoError(t, err)
		require.Len(t, sig, 8)
	}

	// Same short body always signs the same way, and distinct short
	// bodies within the pad window still differ.
	sigA, err := Sign([]byte("a"), 8)
	require.NoError(t, err)
	sigB, err := Sign([]byte("b"), 8)
	require.NoError(t, err)
	require.NotEqual(t, sigA, sigB)
}

func TestSlowSignMatchesSign(t *testing.T) {
	cases := [][]byte{
		[]byte("12345"),
		nil,
		[]byte("a"),
		[]byte("hello world he2llo world"),
		[]byte("the quick brown fox jumps over the lazy dog, repeatedly, for a while"),
	}

	for _, body := range cases {
		slow, err := SlowSign(body, 16)
		require.NoError(t, err)
		fast, err := Sign(body, 16)
		require.NoError(t, err)
		require.Equal(t, slow, fast)
	}
}

func TestStrongHashConsistentAndDistinct(t *testing.T) {
	h1 := StrongHash([]byte("34908523904kf9034fk9032kf903f4k"))
	h2 := StrongHash([]byte("34908523904kf9034fk9032kf903f4k"))
	require.Equal(t, h1, h2)

	h3 := StrongHash([]byte("34908523904kf9034fk9032kf903f4ka"))
	h4 := StrongHash([]byte("34908523904kf9034fk9032kf903f4kb"))
	require.NotEqual(t, h3, h4)
	require.Len(t, h3[:], HashSize)
}

// Property-based tests using rapid, exercising the invariants spec.md §8
// names explicitly: signature length, determinism, and slow/fast parity
// across arbitrary bodies and numPerms values.

func TestRapidSignLengthAndDeterminism(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		body := rapid.SliceOfN(rapid.Byte(), 0, 256).Draw(t, "body")
		numPerms := rapid.Uint32Range(1, 64).Draw(t, "numPerms")

		sig1, err := Sign(body, numPerms)
		require.NoError(t, err)
		require.Len(t, sig1, int(numPerms))

		sig2, err := Sign(body, numPerms)
		require.NoError(t, err)
		require.Equal(t, sig1, sig2)
	})
}

func TestRapidSlowMatchesFast(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		body := rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "body")
		numPerms := rapid.Uint32Range(1, 16).Draw(t, "numPerms")

		slow, err := SlowSign(body, numPerms)
		require.NoError(t, err)
		fast, err := Sign(body, numPerms)
		require.NoError(t, err)
		require.Equal(t, slow, fast)
	})
}
