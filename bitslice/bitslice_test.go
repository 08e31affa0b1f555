package bitslice

import (
	"testing"

	"github.com/lakerow/rowbinary/errs"
	"github.com/stretchr/testify/require"
)

func buildIndex(t *testing.T, values []uint64) *Index {
	t.Helper()
	require := require.New(t)

	idx, err := New(len(values), 5)
	require.NoError(err)
	for i, v := range values {
		require.NoError(idx.Set(i, v))
	}

	return idx
}

func collect(b *Bitmap) []int {
	var out []int
	b.Each(func(i int) { out = append(out, i) })

	return out
}

func TestEqual(t *testing.T) {
	require := require.New(t)

	idx := buildIndex(t, []uint64{3, 7, 3, 9, 3})
	require.Equal([]int{0, 2, 4}, collect(idx.Equal(3)))
}

func TestGreaterThan(t *testing.T) {
	require := require.New(t)

	idx := buildIndex(t, []uint64{1, 5, 9, 2, 9})
	require.Equal([]int{2, 4}, collect(idx.GreaterThan(5)))
}

func TestGreaterOrEqual(t *testing.T) {
	require := require.New(t)

	idx := buildIndex(t, []uint64{1, 5, 9, 2, 9})
	require.Equal([]int{1, 2, 4}, collect(idx.GreaterOrEqual(5)))
}

func TestLessThan(t *testing.T) {
	require := require.New(t)

	idx := buildIndex(t, []uint64{1, 5, 9, 2, 9})
	require.Equal([]int{0, 3}, collect(idx.LessThan(5)))
}

func TestLessOrEqual(t *testing.T) {
	require := require.New(t)

	idx := buildIndex(t, []uint64{1, 5, 9, 2, 9})
	require.Equal([]int{0, 1, 3}, collect(idx.LessOrEqual(5)))
}

func TestBoundaryValuesAllPlanes(t *testing.T) {
	require := require.New(t)

	idx := buildIndex(t, []uint64{0, 31, 16})
	require.Equal([]int{0}, collect(idx.Equal(0)))
	require.Equal([]int{1}, collect(idx.Equal(31)))
	require.Equal([]int{1, 2}, collect(idx.GreaterOrEqual(16)))
}

func TestSetRejectsOutOfRangeRow(t *testing.T) {
	require := require.New(t)

	idx, err := New(2, 4)
	require.NoError(err)
	err = idx.Set(5, 1)
	require.ErrorIs(err, errs.ErrIndexOutOfRange)
}

func TestSetRejectsValueExceedingWidth(t *testing.T) {
	require := require.New(t)

	idx, err := New(2, 3)
	require.NoError(err)
	err = idx.Set(0, 8)
	require.Error(err)
}

func TestNewRejectsInvalidBitWidth(t *testing.T) {
	require := require.New(t)

	_, err := New(4, 0)
	require.Error(err)

	_, err = New(4, 64)
	require.Error(err)
}

func TestUnsetRowsExcludedFromAllComparisons(t *testing.T) {
	require := require.New(t)

	idx, err := New(3, 4)
	require.NoError(err)
	require.NoError(idx.Set(0, 5))
	// row 1 left unset (no value present)
	require.NoError(idx.Set(2, 2))

	require.Equal([]int{0}, collect(idx.GreaterOrEqual(5)))
	require.Equal([]int{2}, collect(idx.LessThan(5)))
}

func TestBitmapBooleanOps(t *testing.T) {
	require := require.New(t)

	a := NewBitmap(8)
	b := NewBitmap(8)
	a.Set(0, true)
	a.Set(1, true)
	b.Set(1, true)
	b.Set(2, true)

	require.Equal([]int{1}, collect(a.And(b)))
	require.Equal([]int{0, 1, 2}, collect(a.Or(b)))
	require.Equal([]int{0}, collect(a.AndNot(b)))
	require.Equal(6, a.Not().PopCount())
}
