package row

import (
	"math/big"
	"testing"

	"github.com/lakerow/rowbinary/segment"
	"github.com/stretchr/testify/require"
)

// Golden vectors matching java.math.BigInteger(String).toByteArray() exactly,
// used to pin the wire-compatible minimal-length two's-complement encoding.
func TestBigIntToTwosComplementBEGoldenBytes(t *testing.T) {
	require := require.New(t)

	cases := []struct {
		value string
		want  []byte
	}{
		{"0", []byte{0x00}},
		{"1", []byte{0x01}},
		{"-1", []byte{0xFF}},
		{"127", []byte{0x7F}},
		{"-128", []byte{0x80}},
		{"128", []byte{0x00, 0x80}},
		{"255", []byte{0x00, 0xFF}},
		{"256", []byte{0x01, 0x00}},
		{"-129", []byte{0xFF, 0x7F}},
		{"123456789012345678901234", []byte{0x1a, 0x24, 0x9b, 0x1f, 0x10, 0xa0, 0x6c, 0x96, 0xaf, 0xf2}},
	}

	for _, c := range cases {
		v, ok := new(big.Int).SetString(c.value, 10)
		require.True(ok, c.value)

		got := bigIntToTwosComplementBE(v)
		require.Equal(c.want, got, c.value)

		// Round trip back through the decoder.
		back := bigIntFromTwosComplementBE(got)
		require.Equal(0, back.Cmp(v), c.value)
	}
}

// Confirms WriteDecimal records the *actual* minimal byte length in the
// slot, not a fixed reservation width, and that the tail bytes written match
// the golden two's-complement encoding exactly.
func TestWriteDecimalExpandedGoldenByteLength(t *testing.T) {
	require := require.New(t)

	w := NewWriter(1)
	small := big.NewInt(128) // minimal encoding is 2 bytes: 0x00, 0x80
	require.NoError(w.WriteDecimal(0, small, 20))

	r := w.Row()
	offset, length, err := r.decodeOffsetLength(0)
	require.NoError(err)
	require.Equal(2, length, "slot must record the minimal byte length, not a fixed reservation")

	raw, err := segment.GetBytes(r.Segs, r.Offset+offset, length)
	require.NoError(err)
	require.Equal([]byte{0x00, 0x80}, raw)

	got, err := r.GetDecimalUnscaled(0, 20)
	require.NoError(err)
	require.Equal(0, got.Cmp(small))
}
