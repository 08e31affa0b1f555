// Package columnar implements the columnar view adapters: thin
// wrappers that present plain Go slices of column values as
// row/array-shaped views, including dictionary decoding, over a generic
// "typed value in, typed value out" encoder/decoder interface pair adapted
// to a columnar storage boundary.
package columnar

import (
	"github.com/lakerow/rowbinary/errs"
	"github.com/lakerow/rowbinary/rowtype"
)

// Column is a single field's vector of values across all rows in a batch: a
// capability trait narrowed to what a column vector can answer.
type Column interface {
	Len() int
	Type() rowtype.FieldType
	IsNullAt(i int) (bool, error)
	Literal(i int) (rowtype.Literal, error)
}

// NumericColumn adapts a fixed-width numeric vector (bool, int8/16/32/64,
// float32/64, or a numeric-identifier date) plus an optional null bitmap
// into a Column. A nil nulls slice means no element is ever null.
type NumericColumn[T any] struct {
	typ     rowtype.FieldType
	values  []T
	nulls   []bool
	toLit   func(T) rowtype.Literal
}

// NewNumericColumn builds a NumericColumn for field type t, converting each
// value to a rowtype.Literal via toLit.
func NewNumericColumn[T any](t rowtype.FieldType, values []T, nulls []bool, toLit func(T) rowtype.Literal) *NumericColumn[T] {
	return &NumericColumn[T]{typ: t, values: values, nulls: nulls, toLit: toLit}
}

func (c *NumericColumn[T]) Len() int               { return len(c.values) }
func (c *NumericColumn[T]) Type() rowtype.FieldType { return c.typ }

func (c *NumericColumn[T]) IsNullAt(i int) (bool, error) {
	if i < 0 || i >= len(c.values) {
		return false, errs.ErrIndexOutOfRange
	}
	if c.nulls == nil {
		return false, nil
	}

	return c.nulls[i], nil
}

func (c *NumericColumn[T]) Literal(i int) (rowtype.Literal, error) {
	isNull, err := c.IsNullAt(i)
	if err != nil {
		return rowtype.Literal{}, err
	}
	if isNull {
		return rowtype.Null(c.typ), nil
	}

	return c.toLit(c.values[i]), nil
}

// StringColumn adapts a plain (non-dictionary-encoded) string or binary
// vector into a Column.
type StringColumn struct {
	typ    rowtype.FieldType
	values []string
	nulls  []bool
}

// NewStringColumn builds a StringColumn for TypeString or TypeBinary.
func NewStringColumn(t rowtype.FieldType, values []string, nulls []bool) *StringColumn {
	return &StringColumn{typ: t, values: values, nulls: nulls}
}

func (c *StringColumn) Len() int               { return len(c.values) }
func (c *StringColumn) Type() rowtype.FieldType { return c.typ }

func (c *StringColumn) IsNullAt(i int) (bool, error) {
	if i < 0 || i >= len(c.values) {
		return false, errs.ErrIndexOutOfRange
	}
	if c.nulls == nil {
		return false, nil
	}

	return c.nulls[i], nil
}

func (c *StringColumn) Literal(i int) (rowtype.Literal, error) {
	isNull, err := c.IsNullAt(i)
	if err != nil {
		return rowtype.Literal{}, err
	}
	if isNull {
		return rowtype.Null(c.typ), nil
	}
	if c.typ == rowtype.TypeBinary {
		return rowtype.Binary([]byte(c.values[i])), nil
	}

	return rowtype.String(c.values[i]), nil
}

// DictionaryColumn adapts a dictionary-encoded string vector: a small
// distinct-value dictionary plus a per-row index into it. A negative index denotes a null row
// independent of the nulls bitmap, matching common dictionary-encoding
// conventions; both forms are accepted.
type DictionaryColumn struct {
	dictionary []string
	indices    []int32
	nulls      []bool
}

// NewDictionaryColumn builds a DictionaryColumn over dictionary, indexed by
// indices. nulls may be nil if no explicit null bitmap accompanies indices.
func NewDictionaryColumn(dictionary []string, indices []int32, nulls []bool) *DictionaryColumn {
	return &DictionaryColumn{dictionary: dictionary, indices: indices, nulls: nulls}
}

func (c *DictionaryColumn) Len() int               { return len(c.indices) }
func (c *DictionaryColumn) Type() rowtype.FieldType { return rowtype.TypeString }

func (c *DictionaryColumn) IsNullAt(i int) (bool, error) {
	if i < 0 || i >= len(c.indices) {
		return false, errs.ErrIndexOutOfRange
	}
	if c.indices[i] < 0 {
		return true, nil
	}

	return c.nulls != nil && c.nulls[i], nil
}

func (c *DictionaryColumn) Literal(i int) (rowtype.Literal, error) {
	isNull, err := c.IsNullAt(i)
	if err != nil {
		return rowtype.Literal{}, err
	}
	if isNull {
		return rowtype.Null(rowtype.TypeString), nil
	}

	idx := c.indices[i]
	if int(idx) >= len(c.dictionary) {
		return rowtype.Literal{}, errs.ErrIndexOutOfRange
	}

	return rowtype.String(c.dictionary[idx]), nil
}

// Table adapts a set of Columns sharing a common row count into the
// predicate package's ColumnarSource substrate.
type Table struct {
	columns  []Column
	rowCount int
}

// NewTable builds a Table from columns, all of which must report the same
// Len(); rowCount is taken from the first column, or 0 if columns is empty.
func NewTable(columns []Column) (*Table, error) {
	rowCount := 0
	if len(columns) > 0 {
		rowCount = columns[0].Len()
	}
	for _, c := range columns {
		if c.Len() != rowCount {
			return nil, errs.ErrColumnLengthMismatch
		}
	}

	return &Table{columns: columns, rowCount: rowCount}, nil
}

// FieldCount returns the number of columns.
func (t *Table) FieldCount() int { return len(t.columns) }

// RowCount returns the shared row count.
func (t *Table) RowCount() int { return t.rowCount }

func (t *Table) checkField(field int) error {
	if field < 0 || field >= len(t.columns) {
		return errs.ErrIndexOutOfRange
	}

	return nil
}

// IsNullAt reports whether row i of the given field is null.
func (t *Table) IsNullAt(field, row int) (bool, error) {
	if err := t.checkField(field); err != nil {
		return false, err
	}

	return t.columns[field].IsNullAt(row)
}

// LiteralAt reads row i of the given field as a typed literal.
func (t *Table) LiteralAt(field, row int) (rowtype.Literal, error) {
	if err := t.checkField(field); err != nil {
		return rowtype.Literal{}, err
	}

	return t.columns[field].Literal(row)
}

// FieldType returns the declared type of the given column.
func (t *Table) FieldType(field int) (rowtype.FieldType, error) {
	if err := t.checkField(field); err != nil {
		return rowtype.TypeUnknown, err
	}

	return t.columns[field].Type(), nil
}
