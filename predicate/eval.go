package predicate

import (
	"errors"
	"fmt"

	"github.com/lakerow/rowbinary/rowtype"
)

// ErrFieldIndexOutOfRange is returned when a predicate references a field
// index beyond the evaluation substrate's field count.
var ErrFieldIndexOutOfRange = errors.New("predicate: field index out of range")

// RowSource is the single-row evaluation substrate:
// a binary row plus enough schema knowledge to read field i as a typed,
// possibly-null literal.
type RowSource interface {
	FieldCount() int
	IsNullAt(field int) (bool, error)
	LiteralAt(field int) (rowtype.Literal, error)
}

// ColumnarSource is the columnar mask evaluation substrate: a column-oriented
// struct-array of rowCount rows.
type ColumnarSource interface {
	FieldCount() int
	RowCount() int
	IsNullAt(field, row int) (bool, error)
	LiteralAt(field, row int) (rowtype.Literal, error)
}

// StatsSource is the min/max/null-count evaluation substrate: per-field
// summary statistics plus the total row count.
type StatsSource interface {
	FieldCount() int
	RowCount() int64
	HasValue(field int) (bool, error)
	Min(field int) (rowtype.Literal, error)
	Max(field int) (rowtype.Literal, error)
	NullCount(field int) (int64, error)
}

// EvalRow evaluates p against a single row.
func (p Predicate) EvalRow(src RowSource) (bool, error) {
	if p.isLeaf {
		return p.evalRowLeaf(src)
	}

	switch p.kind {
	case KindAnd:
		for _, c := range p.children {
			v, err := c.EvalRow(src)
			if err != nil {
				return false, err
			}
			if !v {
				return false, nil
			}
		}

		return true, nil
	case KindOr:
		for _, c := range p.children {
			v, err := c.EvalRow(src)
			if err != nil {
				return false, err
			}
			if v {
				return true, nil
			}
		}

		return false, nil
	default:
		return false, fmt.Errorf("predicate: unknown compound kind %d", p.kind)
	}
}

func (p Predicate) evalRowLeaf(src RowSource) (bool, error) {
	if p.fieldIdx < 0 || p.fieldIdx >= src.FieldCount() {
		return false, ErrFieldIndexOutOfRange
	}

	isNull, err := src.IsNullAt(p.fieldIdx)
	if err != nil {
		return false, err
	}

	switch p.op {
	case OpIsNull:
		return isNull, nil
	case OpIsNotNull:
		return !isNull, nil
	}

	if isNull {
		return false, nil
	}

	if hasNullLiteral(p.op, p.literals) {
		return false, nil
	}

	field, err := src.LiteralAt(p.fieldIdx)
	if err != nil {
		return false, err
	}

	switch p.op {
	case OpEqual:
		c, err := rowtype.Compare(field, p.literals[0])

		return err == nil && c == 0, err
	case OpNotEqual:
		c, err := rowtype.Compare(field, p.literals[0])

		return err == nil && c != 0, err
	case OpLessThan:
		c, err := rowtype.Compare(field, p.literals[0])

		return err == nil && c < 0, err
	case OpLessOrEqual:
		c, err := rowtype.Compare(field, p.literals[0])

		return err == nil && c <= 0, err
	case OpGreaterThan:
		c, err := rowtype.Compare(field, p.literals[0])

		return err == nil && c > 0, err
	case OpGreaterOrEqual:
		c, err := rowtype.Compare(field, p.literals[0])

		return err == nil && c >= 0, err
	case OpIn:
		return literalIn(field, p.literals)
	case OpNotIn:
		found, err := literalIn(field, p.literals)

		return !found, err
	case OpBetween:
		clo, err := rowtype.Compare(field, p.literals[0])
		if err != nil {
			return false, err
		}
		chi, err := rowtype.Compare(field, p.literals[1])
		if err != nil {
			return false, err
		}

		return clo >= 0 && chi <= 0, nil
	default:
		return false, fmt.Errorf("predicate: unsupported op %v", p.op)
	}
}

func literalIn(field rowtype.Literal, set []rowtype.Literal) (bool, error) {
	for _, v := range set {
		if v.IsNull() {
			continue
		}
		c, err := rowtype.Compare(field, v)
		if err != nil {
			return false, err
		}
		if c == 0 {
			return true, nil
		}
	}

	return false, nil
}

// hasNullLiteral reports whether op's non-null-literal operands (i.e. every
// op but IsNull/IsNotNull/In/NotIn) include a null literal: any predicate
// with a null literal operand (other than In/NotIn) evaluates
// to false everywhere, including stats."
func hasNullLiteral(op Op, literals []rowtype.Literal) bool {
	if op == OpIn || op == OpNotIn {
		return false
	}
	for _, l := range literals {
		if l.IsNull() {
			return true
		}
	}

	return false
}

// EvalColumnar evaluates p over every row of a columnar substrate,
// returning a boolean mask of length src.RowCount().
func (p Predicate) EvalColumnar(src ColumnarSource) ([]bool, error) {
	n := src.RowCount()
	mask := make([]bool, n)
	for i := 0; i < n; i++ {
		v, err := p.evalColumnarRow(src, i)
		if err != nil {
			return nil, err
		}
		mask[i] = v
	}

	return mask, nil
}

func (p Predicate) evalColumnarRow(src ColumnarSource, row int) (bool, error) {
	if p.isLeaf {
		if p.fieldIdx < 0 || p.fieldIdx >= src.FieldCount() {
			return false, ErrFieldIndexOutOfRange
		}

		return p.evalRowLeaf(columnarRowAdapter{src: src, row: row, fieldCount: src.FieldCount()})
	}

	switch p.kind {
	case KindAnd:
		for _, c := range p.children {
			v, err := c.evalColumnarRow(src, row)
			if err != nil {
				return false, err
			}
			if !v {
				return false, nil
			}
		}

		return true, nil
	case KindOr:
		for _, c := range p.children {
			v, err := c.evalColumnarRow(src, row)
			if err != nil {
				return false, err
			}
			if v {
				return true, nil
			}
		}

		return false, nil
	default:
		return false, fmt.Errorf("predicate: unknown compound kind %d", p.kind)
	}
}

// columnarRowAdapter presents one row of a ColumnarSource as a RowSource, so
// evalRowLeaf can be shared between the row and columnar substrates.
type columnarRowAdapter struct {
	src        ColumnarSource
	row        int
	fieldCount int
}

func (a columnarRowAdapter) FieldCount() int { return a.fieldCount }

func (a columnarRowAdapter) IsNullAt(field int) (bool, error) {
	return a.src.IsNullAt(field, a.row)
}

func (a columnarRowAdapter) LiteralAt(field int) (rowtype.Literal, error) {
	return a.src.LiteralAt(field, a.row)
}

// EvalStats evaluates p's "could match" stats semantics: a conservative
// over-approximation suitable for pruning, not an exact row-level result.
func (p Predicate) EvalStats(src StatsSource) (bool, error) {
	if p.isLeaf {
		return p.evalStatsLeaf(src)
	}

	switch p.kind {
	case KindAnd:
		for _, c := range p.children {
			v, err := c.EvalStats(src)
			if err != nil {
				return false, err
			}
			if !v {
				return false, nil
			}
		}

		return true, nil
	case KindOr:
		for _, c := range p.children {
			v, err := c.EvalStats(src)
			if err != nil {
				return false, err
			}
			if v {
				return true, nil
			}
		}

		return false, nil
	default:
		return false, fmt.Errorf("predicate: unknown compound kind %d", p.kind)
	}
}

func (p Predicate) evalStatsLeaf(src StatsSource) (bool, error) {
	if p.fieldIdx < 0 || p.fieldIdx >= src.FieldCount() {
		return false, ErrFieldIndexOutOfRange
	}

	rowCount := src.RowCount()

	nullCount, err := src.NullCount(p.fieldIdx)
	if err != nil {
		return false, err
	}

	switch p.op {
	case OpIsNull:
		return nullCount > 0, nil
	case OpIsNotNull:
		return nullCount < rowCount, nil
	}

	if hasNullLiteral(p.op, p.literals) {
		return false, nil
	}

	hasValue, err := src.HasValue(p.fieldIdx)
	if err != nil {
		return false, err
	}
	if !hasValue {
		// Every value is null; no non-null comparison can match.
		return false, nil
	}

	minV, err := src.Min(p.fieldIdx)
	if err != nil {
		return false, err
	}
	maxV, err := src.Max(p.fieldIdx)
	if err != nil {
		return false, err
	}

	switch p.op {
	case OpEqual:
		lo, err := rowtype.Compare(minV, p.literals[0])
		if err != nil {
			return false, err
		}
		hi, err := rowtype.Compare(p.literals[0], maxV)
		if err != nil {
			return false, err
		}

		return lo <= 0 && hi <= 0 && nullCount < rowCount, nil
	case OpNotEqual:
		sameSingleton := false
		if c1, err := rowtype.Compare(minV, maxV); err == nil && c1 == 0 {
			if c2, err := rowtype.Compare(minV, p.literals[0]); err == nil && c2 == 0 {
				sameSingleton = true
			}
		}

		return !sameSingleton && nullCount < rowCount, nil
	case OpLessThan:
		c, err := rowtype.Compare(minV, p.literals[0])

		return err == nil && c < 0, err
	case OpLessOrEqual:
		c, err := rowtype.Compare(minV, p.literals[0])

		return err == nil && c <= 0, err
	case OpGreaterThan:
		c, err := rowtype.Compare(maxV, p.literals[0])

		return err == nil && c > 0, err
	case OpGreaterOrEqual:
		c, err := rowtype.Compare(maxV, p.literals[0])

		return err == nil && c >= 0, err
	case OpIn:
		for _, v := range p.literals {
			if v.IsNull() {
				continue
			}
			lo, err := rowtype.Compare(minV, v)
			if err != nil {
				return false, err
			}
			hi, err := rowtype.Compare(v, maxV)
			if err != nil {
				return false, err
			}
			if lo <= 0 && hi <= 0 {
				return true, nil
			}
		}

		return false, nil
	case OpNotIn:
		if c, err := rowtype.Compare(minV, maxV); err == nil && c < 0 {
			return true, nil
		}
		// min == max: could match only if that singleton sits outside the set.
		found, err := literalIn(minV, p.literals)

		return !found, err
	case OpBetween:
		lo, hi := p.literals[0], p.literals[1]
		if lo.IsNull() || hi.IsNull() {
			return false, nil
		}

		cMin, err := rowtype.Compare(minV, hi)
		if err != nil {
			return false, err
		}
		cMax, err := rowtype.Compare(maxV, lo)
		if err != nil {
			return false, err
		}

		return cMin <= 0 && cMax >= 0, nil
	default:
		return false, fmt.Errorf("predicate: unsupported op %v", p.op)
	}
}
