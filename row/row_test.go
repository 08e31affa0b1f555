package row

import (
	"math/big"

	"testing"

	"github.com/lakerow/rowbinary/rowtype"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	require := require.New(t)

	w := NewWriter(6)
	require.NoError(w.WriteBool(0, true))
	require.NoError(w.WriteInt(1, 3))
	require.NoError(w.WriteLong(2, 4))
	require.NoError(w.WriteDouble(3, 6.12))
	require.NoError(w.WriteString(4, "abcd"))
	require.NoError(w.WriteBinary(5, []byte("efgh")))

	r := w.Row()

	b, err := r.GetBool(0)
	require.NoError(err)
	require.True(b)

	i32, err := r.GetInt(1)
	require.NoError(err)
	require.Equal(int32(3), i32)

	i64, err := r.GetLong(2)
	require.NoError(err)
	require.Equal(int64(4), i64)

	f64, err := r.GetDouble(3)
	require.NoError(err)
	require.InDelta(6.12, f64, 1e-12)

	s, err := r.GetString(4)
	require.NoError(err)
	require.Equal("abcd", s)

	bin, err := r.GetBinary(5)
	require.NoError(err)
	require.Equal([]byte("efgh"), bin)

	any, err := r.AnyNull()
	require.NoError(err)
	require.False(any)

	h1, err := r.Hash()
	require.NoError(err)
	h2, err := r.Hash()
	require.NoError(err)
	require.Equal(h1, h2)
}

func TestNullHandling(t *testing.T) {
	require := require.New(t)

	w := NewWriter(2)
	require.NoError(w.WriteNull(0))
	require.NoError(w.WriteInt(1, 7))

	r := w.Row()

	isNull, err := r.IsNullAt(0)
	require.NoError(err)
	require.True(isNull)

	isNull, err = r.IsNullAt(1)
	require.NoError(err)
	require.False(isNull)

	any, err := r.AnyNull()
	require.NoError(err)
	require.True(any)
}

func TestKindHeaderNotMistakenForNull(t *testing.T) {
	require := require.New(t)

	w := NewWriter(1)
	require.NoError(w.SetKind(rowtype.RowKindDelete))
	require.NoError(w.WriteInt(0, 1))

	r := w.Row()
	any, err := r.AnyNull()
	require.NoError(err)
	require.False(any)

	k, err := r.Kind()
	require.NoError(err)
	require.Equal(rowtype.RowKindDelete, k)
}

func TestVariableLengthBoundary(t *testing.T) {
	require := require.New(t)

	w := NewWriter(2)
	require.NoError(w.WriteString(0, "1234567")) // exactly 7: inline
	require.NoError(w.WriteString(1, "12345678")) // 8: tail

	r := w.Row()

	s0, err := r.GetString(0)
	require.NoError(err)
	require.Equal("1234567", s0)

	s1, err := r.GetString(1)
	require.NoError(err)
	require.Equal("12345678", s1)
}

func TestDecimalCompactAndExpanded(t *testing.T) {
	require := require.New(t)

	w := NewWriter(2)
	require.NoError(w.WriteDecimal(0, big.NewInt(-12345), 10))
	big20, _ := new(big.Int).SetString("123456789012345678901234", 10)
	require.NoError(w.WriteDecimal(1, big20, 30))

	r := w.Row()

	v0, err := r.GetDecimalUnscaled(0, 10)
	require.NoError(err)
	require.Equal(int64(-12345), v0.Int64())

	v1, err := r.GetDecimalUnscaled(1, 30)
	require.NoError(err)
	require.Equal(0, v1.Cmp(big20))
}

func TestTimestampCompactAndExpanded(t *testing.T) {
	require := require.New(t)

	w := NewWriter(2)
	require.NoError(w.WriteTimestamp(0, 1_700_000_000_123, 0, 3))
	require.NoError(w.WriteTimestamp(1, 1_700_000_000_123, 456_789, 6))

	r := w.Row()

	ms0, ns0, err := r.GetTimestamp(0, 3)
	require.NoError(err)
	require.Equal(int64(1_700_000_000_123), ms0)
	require.Equal(int32(0), ns0)

	ms1, ns1, err := r.GetTimestamp(1, 6)
	require.NoError(err)
	require.Equal(int64(1_700_000_000_123), ms1)
	require.Equal(int32(456_789), ns1)
}

func TestEqualsAndIndexBounds(t *testing.T) {
	require := require.New(t)

	w1 := NewWriter(1)
	require.NoError(w1.WriteInt(0, 5))
	w2 := NewWriter(1)
	require.NoError(w2.WriteInt(0, 5))

	eq, err := w1.Row().Equals(w2.Row())
	require.NoError(err)
	require.True(eq)

	_, err = w1.Row().GetInt(5)
	require.Error(err)
}

func TestEmptyRow(t *testing.T) {
	require := require.New(t)

	r := Empty()
	require.Equal(0, r.Arity())
	any, err := r.AnyNull()
	require.NoError(err)
	require.False(any)
}

func TestBitsetWidth(t *testing.T) {
	require := require.New(t)

	require.Equal(8, BitsetWidth(0))
	require.Equal(8, BitsetWidth(56))
	require.Equal(16, BitsetWidth(57))
}
