package predicate

import (
	"testing"

	"github.com/lakerow/rowbinary/rowtype"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	nulls  []bool
	values []rowtype.Literal
}

func (f fakeRow) FieldCount() int { return len(f.values) }
func (f fakeRow) IsNullAt(i int) (bool, error) {
	return f.nulls[i], nil
}
func (f fakeRow) LiteralAt(i int) (rowtype.Literal, error) {
	return f.values[i], nil
}

func TestEvalRowEqual(t *testing.T) {
	require := require.New(t)

	row := fakeRow{
		nulls:  []bool{false},
		values: []rowtype.Literal{rowtype.Int64(rowtype.TypeInt, 42)},
	}

	p := Leaf(OpEqual, 0, rowtype.TypeInt, rowtype.Int64(rowtype.TypeInt, 42))
	v, err := p.EvalRow(row)
	require.NoError(err)
	require.True(v)

	p2 := Leaf(OpEqual, 0, rowtype.TypeInt, rowtype.Int64(rowtype.TypeInt, 7))
	v2, err := p2.EvalRow(row)
	require.NoError(err)
	require.False(v2)
}

func TestEvalRowNullHandling(t *testing.T) {
	require := require.New(t)

	row := fakeRow{
		nulls:  []bool{true},
		values: []rowtype.Literal{rowtype.Null(rowtype.TypeInt)},
	}

	isNull := IsNullLeaf(0, rowtype.TypeInt)
	v, err := isNull.EvalRow(row)
	require.NoError(err)
	require.True(v)

	eq := Leaf(OpEqual, 0, rowtype.TypeInt, rowtype.Int64(rowtype.TypeInt, 1))
	v2, err := eq.EvalRow(row)
	require.NoError(err)
	require.False(v2)
}

func TestEvalRowBetween(t *testing.T) {
	require := require.New(t)

	row := fakeRow{nulls: []bool{false}, values: []rowtype.Literal{rowtype.Int64(rowtype.TypeInt, 5)}}
	p := Between(0, rowtype.TypeInt, rowtype.Int64(rowtype.TypeInt, 1), rowtype.Int64(rowtype.TypeInt, 10))

	v, err := p.EvalRow(row)
	require.NoError(err)
	require.True(v)
}

func TestAndOrShortCircuit(t *testing.T) {
	require := require.New(t)

	row := fakeRow{
		nulls:  []bool{false, false},
		values: []rowtype.Literal{rowtype.Int64(rowtype.TypeInt, 1), rowtype.Int64(rowtype.TypeInt, 2)},
	}

	p1 := Leaf(OpEqual, 0, rowtype.TypeInt, rowtype.Int64(rowtype.TypeInt, 1))
	p2 := Leaf(OpEqual, 1, rowtype.TypeInt, rowtype.Int64(rowtype.TypeInt, 99))

	and, err := And([]Predicate{p1, p2})
	require.NoError(err)
	v, err := and.EvalRow(row)
	require.NoError(err)
	require.False(v)

	or, err := Or([]Predicate{p1, p2})
	require.NoError(err)
	v2, err := or.EvalRow(row)
	require.NoError(err)
	require.True(v2)
}

func TestCompoundEmptyIsError(t *testing.T) {
	require := require.New(t)

	_, err := And(nil)
	require.Error(err)

	_, err = Or([]Predicate{})
	require.Error(err)
}

func TestCompoundSingleChildLifted(t *testing.T) {
	require := require.New(t)

	p1 := Leaf(OpEqual, 0, rowtype.TypeInt, rowtype.Int64(rowtype.TypeInt, 1))
	and, err := And([]Predicate{p1})
	require.NoError(err)
	require.True(and.IsLeaf())
}

func TestNegateLeafAndBetween(t *testing.T) {
	require := require.New(t)

	eq := Leaf(OpEqual, 0, rowtype.TypeInt, rowtype.Int64(rowtype.TypeInt, 1))
	require.Equal(OpNotEqual, eq.Negate().op)

	between := Between(0, rowtype.TypeInt, rowtype.Int64(rowtype.TypeInt, 1), rowtype.Int64(rowtype.TypeInt, 10))
	neg := between.Negate()
	require.False(neg.IsLeaf())
	require.Equal(KindOr, neg.kind)
	require.Equal(OpLessThan, neg.children[0].op)
	require.Equal(OpGreaterThan, neg.children[1].op)
}

func TestNegateCompoundDeMorgan(t *testing.T) {
	require := require.New(t)

	p1 := Leaf(OpEqual, 0, rowtype.TypeInt, rowtype.Int64(rowtype.TypeInt, 1))
	p2 := Leaf(OpLessThan, 1, rowtype.TypeInt, rowtype.Int64(rowtype.TypeInt, 5))
	and, err := And([]Predicate{p1, p2})
	require.NoError(err)

	neg := and.Negate()
	require.Equal(KindOr, neg.kind)
	require.Equal(OpNotEqual, neg.children[0].op)
	require.Equal(OpGreaterOrEqual, neg.children[1].op)
}

type fakeStats struct {
	rowCount  int64
	hasValue  bool
	min, max  rowtype.Literal
	nullCount int64
}

func (f fakeStats) FieldCount() int      { return 1 }
func (f fakeStats) RowCount() int64      { return f.rowCount }
func (f fakeStats) HasValue(int) (bool, error) { return f.hasValue, nil }
func (f fakeStats) Min(int) (rowtype.Literal, error) { return f.min, nil }
func (f fakeStats) Max(int) (rowtype.Literal, error) { return f.max, nil }
func (f fakeStats) NullCount(int) (int64, error)     { return f.nullCount, nil }

func TestEvalStatsEqualInRange(t *testing.T) {
	require := require.New(t)

	stats := fakeStats{
		rowCount: 100,
		hasValue: true,
		min:      rowtype.Int64(rowtype.TypeInt, 1),
		max:      rowtype.Int64(rowtype.TypeInt, 10),
	}

	p := Leaf(OpEqual, 0, rowtype.TypeInt, rowtype.Int64(rowtype.TypeInt, 5))
	v, err := p.EvalStats(stats)
	require.NoError(err)
	require.True(v)

	pOut := Leaf(OpEqual, 0, rowtype.TypeInt, rowtype.Int64(rowtype.TypeInt, 50))
	v2, err := pOut.EvalStats(stats)
	require.NoError(err)
	require.False(v2)
}

func TestEvalStatsIsNull(t *testing.T) {
	require := require.New(t)

	stats := fakeStats{rowCount: 10, nullCount: 3, hasValue: true,
		min: rowtype.Int64(rowtype.TypeInt, 1), max: rowtype.Int64(rowtype.TypeInt, 2)}

	v, err := IsNullLeaf(0, rowtype.TypeInt).EvalStats(stats)
	require.NoError(err)
	require.True(v)
}

func TestEvalStatsFieldIndexOutOfRange(t *testing.T) {
	require := require.New(t)

	stats := fakeStats{rowCount: 1}
	p := Leaf(OpEqual, 5, rowtype.TypeInt, rowtype.Int64(rowtype.TypeInt, 1))
	_, err := p.EvalStats(stats)
	require.ErrorIs(err, ErrFieldIndexOutOfRange)
}

func TestHashStability(t *testing.T) {
	require := require.New(t)

	p1 := Leaf(OpEqual, 0, rowtype.TypeInt, rowtype.Int64(rowtype.TypeInt, 1))
	p2 := Leaf(OpEqual, 0, rowtype.TypeInt, rowtype.Int64(rowtype.TypeInt, 1))
	require.Equal(p1.Hash(), p2.Hash())

	p3 := Leaf(OpEqual, 1, rowtype.TypeInt, rowtype.Int64(rowtype.TypeInt, 1))
	require.NotEqual(p1.Hash(), p3.Hash())
}
