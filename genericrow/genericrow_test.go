package genericrow

import (
	"testing"

	"github.com/lakerow/rowbinary/predicate"
	"github.com/lakerow/rowbinary/rowtype"
	"github.com/stretchr/testify/require"
)

func TestNewRowAllNull(t *testing.T) {
	require := require.New(t)

	r := New([]rowtype.FieldType{rowtype.TypeInt, rowtype.TypeString})
	require.Equal(2, r.Arity())

	isNull, err := r.IsNullAt(0)
	require.NoError(err)
	require.True(isNull)
}

func TestSetAndGet(t *testing.T) {
	require := require.New(t)

	r := New([]rowtype.FieldType{rowtype.TypeInt})
	require.NoError(r.Set(0, rowtype.Int64(rowtype.TypeInt, 42)))

	lit, err := r.LiteralAt(0)
	require.NoError(err)
	require.Equal(int64(42), lit.AsInt64())
}

func TestEquals(t *testing.T) {
	require := require.New(t)

	r1 := New([]rowtype.FieldType{rowtype.TypeInt})
	r2 := New([]rowtype.FieldType{rowtype.TypeInt})
	require.NoError(r1.Set(0, rowtype.Int64(rowtype.TypeInt, 1)))
	require.NoError(r2.Set(0, rowtype.Int64(rowtype.TypeInt, 1)))

	eq, err := r1.Equals(r2)
	require.NoError(err)
	require.True(eq)
}

func TestSatisfiesPredicateRowSource(t *testing.T) {
	require := require.New(t)

	r := New([]rowtype.FieldType{rowtype.TypeInt})
	require.NoError(r.Set(0, rowtype.Int64(rowtype.TypeInt, 7)))

	p := predicate.Leaf(predicate.OpEqual, 0, rowtype.TypeInt, rowtype.Int64(rowtype.TypeInt, 7))
	v, err := p.EvalRow(r)
	require.NoError(err)
	require.True(v)
}

func TestIndexOutOfRange(t *testing.T) {
	require := require.New(t)

	r := New([]rowtype.FieldType{rowtype.TypeInt})
	_, err := r.LiteralAt(5)
	require.Error(err)
}
