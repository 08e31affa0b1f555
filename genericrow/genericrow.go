// Package genericrow implements the generic row: a tagged-union
// variant-value row used wherever a binary-packed row is overkill — row
// construction staging, data-evolution default materialization, and as a
// convenient predicate.RowSource for ad-hoc testing: an arity-sized slice
// of rowtype.Literal, since rows here are dynamically shaped by a
// caller-supplied
// schema rather than fixed at compile time.
package genericrow

import (
	"github.com/lakerow/rowbinary/errs"
	"github.com/lakerow/rowbinary/rowtype"
)

// Row is an exclusively-owned, non-reentrant variant-value row: a
// row-kind tag plus one rowtype.Literal per field. Unlike row.Row, it is not
// a shared immutable view — each Row value owns its fields slice.
type Row struct {
	kind   rowtype.RowKind
	fields []rowtype.Literal
}

// New returns a Row of the given arity with every field set to its declared
// null literal. types must have length arity; it records each field's type
// so SetNull and zero-valued fields render correctly.
func New(types []rowtype.FieldType) Row {
	fields := make([]rowtype.Literal, len(types))
	for i, t := range types {
		fields[i] = rowtype.Null(t)
	}

	return Row{fields: fields}
}

// Arity returns the row's field count.
func (r Row) Arity() int { return len(r.fields) }

// FieldCount satisfies predicate.RowSource.
func (r Row) FieldCount() int { return len(r.fields) }

// Kind returns the row's changelog kind.
func (r Row) Kind() rowtype.RowKind { return r.kind }

// SetKind overwrites the row's changelog kind.
func (r *Row) SetKind(k rowtype.RowKind) { r.kind = k }

func (r Row) checkIndex(i int) error {
	if i < 0 || i >= len(r.fields) {
		return errs.ErrIndexOutOfRange
	}

	return nil
}

// IsNullAt reports whether field i is null.
func (r Row) IsNullAt(i int) (bool, error) {
	if err := r.checkIndex(i); err != nil {
		return false, err
	}

	return r.fields[i].IsNull(), nil
}

// LiteralAt reads field i as a typed literal. Satisfies predicate.RowSource.
func (r Row) LiteralAt(i int) (rowtype.Literal, error) {
	if err := r.checkIndex(i); err != nil {
		return rowtype.Literal{}, err
	}

	return r.fields[i], nil
}

// Set overwrites field i with lit. The caller is responsible for lit's type
// matching the row's declared schema for that field; Set does not validate
// it, matching the writer's trust-the-caller posture elsewhere.
func (r *Row) Set(i int, lit rowtype.Literal) error {
	if err := r.checkIndex(i); err != nil {
		return err
	}
	r.fields[i] = lit

	return nil
}

// SetNull overwrites field i with a null literal of type t.
func (r *Row) SetNull(i int, t rowtype.FieldType) error {
	return r.Set(i, rowtype.Null(t))
}

// Equals reports whether r and other have identical kind and field literals.
func (r Row) Equals(other Row) (bool, error) {
	if r.kind != other.kind || len(r.fields) != len(other.fields) {
		return false, nil
	}

	for i := range r.fields {
		if r.fields[i].IsNull() != other.fields[i].IsNull() {
			return false, nil
		}
		if r.fields[i].IsNull() {
			continue
		}

		c, err := rowtype.Compare(r.fields[i], other.fields[i])
		if err != nil {
			return false, err
		}
		if c != 0 {
			return false, nil
		}
	}

	return true, nil
}
