package iostream

import (
	"testing"

	"github.com/lakerow/rowbinary/endian"
	"github.com/lakerow/rowbinary/errs"
	"github.com/stretchr/testify/require"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	require := require.New(t)

	w := NewWriter(endian.WireDefaultEngine())
	w.WriteBool(true)
	w.WriteInt8(-5)
	w.WriteInt32(1000)
	w.WriteInt64(-9999999999)
	w.WriteString("hello")

	r := NewReader(w.Bytes(), endian.WireDefaultEngine())

	b, err := r.ReadBool()
	require.NoError(err)
	require.True(b)

	i8, err := r.ReadInt8()
	require.NoError(err)
	require.Equal(int8(-5), i8)

	i32, err := r.ReadInt32()
	require.NoError(err)
	require.Equal(int32(1000), i32)

	i64, err := r.ReadInt64()
	require.NoError(err)
	require.Equal(int64(-9999999999), i64)

	s, err := r.ReadString()
	require.NoError(err)
	require.Equal("hello", s)
}

func TestReaderEndOfStream(t *testing.T) {
	require := require.New(t)

	r := NewReader([]byte{1, 2}, endian.GetLittleEndianEngine())
	_, err := r.ReadInt32()
	require.ErrorIs(err, errs.ErrEndOfStream)
}

func TestReaderSeek(t *testing.T) {
	require := require.New(t)

	r := NewReader([]byte{1, 2, 3, 4, 5}, endian.GetLittleEndianEngine())
	require.NoError(r.SeekSet(3))
	require.Equal(3, r.Pos())
	require.NoError(r.SeekCur(-1))
	require.Equal(2, r.Pos())
	require.NoError(r.SeekEnd(-1))
	require.Equal(4, r.Pos())
}

func TestByteOrderToggle(t *testing.T) {
	require := require.New(t)

	w := NewWriter(endian.GetBigEndianEngine())
	w.WriteInt32(0x01020304)
	require.Equal([]byte{0x01, 0x02, 0x03, 0x04}, w.Bytes())

	w2 := NewWriter(endian.GetLittleEndianEngine())
	w2.WriteInt32(0x01020304)
	require.Equal([]byte{0x04, 0x03, 0x02, 0x01}, w2.Bytes())
}
