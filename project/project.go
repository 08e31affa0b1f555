// Package project implements projected and data-evolution row views: a View
// remaps one row's field ordinals onto a different, evolved schema, with a
// -1 sentinel for columns the underlying row predates (always null).
// RowSet composites many such views in chronological order: an immutable,
// sorted collection of per-window sources walked by a single iterator.
package project

import (
	"iter"
	"slices"

	"github.com/lakerow/rowbinary/errs"
	"github.com/lakerow/rowbinary/rowtype"
)

// AlwaysNull is the remap-table sentinel marking a projected field that the
// underlying source predates: it always reads as null regardless of the
// source's own contents.
const AlwaysNull = -1

// Source is the minimal row-reading capability a View projects: satisfied by genericrow.Row or another View
// (row.Row has no FieldCount or LiteralAt method, so it does not satisfy it).
type Source interface {
	FieldCount() int
	IsNullAt(i int) (bool, error)
	LiteralAt(i int) (rowtype.Literal, error)
}

// View projects src's fields onto a new schema of len(remap) fields. remap[i]
// is either AlwaysNull or an index into src's field space.
type View struct {
	src   Source
	remap []int
	types []rowtype.FieldType
}

// New builds a View. types must have the same length as remap and supplies
// each projected field's type, used to construct a correctly-typed null
// literal for AlwaysNull slots and for source fields found null.
func New(src Source, remap []int, types []rowtype.FieldType) (View, error) {
	if len(remap) != len(types) {
		return View{}, errs.ErrInvalid
	}
	for _, r := range remap {
		if r != AlwaysNull && (r < 0 || r >= src.FieldCount()) {
			return View{}, errs.ErrRemapIndexOutOfRange
		}
	}

	return View{src: src, remap: remap, types: types}, nil
}

// FieldCount returns the projected arity.
func (v View) FieldCount() int { return len(v.remap) }

func (v View) checkIndex(i int) error {
	if i < 0 || i >= len(v.remap) {
		return errs.ErrIndexOutOfRange
	}

	return nil
}

// IsNullAt reports whether projected field i is null: true unconditionally
// for an AlwaysNull slot, else delegated to the underlying source.
func (v View) IsNullAt(i int) (bool, error) {
	if err := v.checkIndex(i); err != nil {
		return false, err
	}
	if v.remap[i] == AlwaysNull {
		return true, nil
	}

	return v.src.IsNullAt(v.remap[i])
}

// LiteralAt reads projected field i, returning a typed null for an
// AlwaysNull slot.
func (v View) LiteralAt(i int) (rowtype.Literal, error) {
	if err := v.checkIndex(i); err != nil {
		return rowtype.Literal{}, err
	}
	if v.remap[i] == AlwaysNull {
		return rowtype.Null(v.types[i]), nil
	}

	return v.src.LiteralAt(v.remap[i])
}

// Window pairs a Source with the start time of the schema version it
// belongs to, the unit a RowSet sorts and composites by.
type Window struct {
	StartUnixMillis int64
	Rows            []Source
}

// RowSet is an immutable, time-ordered composite of many schema-version
// windows, sorted by start time and iterated seamlessly: each window's rows
// are already projected onto the current schema by the caller before being
// added, so RowSet need
// only concatenate them in time order.
type RowSet struct {
	windows []Window
}

// NewRowSet copies windows, sorts them by start time, and returns the set.
func NewRowSet(windows []Window) RowSet {
	sorted := append([]Window(nil), windows...)
	slices.SortFunc(sorted, func(a, b Window) int {
		switch {
		case a.StartUnixMillis < b.StartUnixMillis:
			return -1
		case a.StartUnixMillis > b.StartUnixMillis:
			return 1
		default:
			return 0
		}
	})

	return RowSet{windows: sorted}
}

// All returns an iterator over (globalIndex, row) pairs across every window
// in chronological order; the global index counts rows from 0 across windows.
func (rs RowSet) All() iter.Seq2[int, Source] {
	return func(yield func(int, Source) bool) {
		idx := 0
		for _, w := range rs.windows {
			for _, r := range w.Rows {
				if !yield(idx, r) {
					return
				}
				idx++
			}
		}
	}
}

// Len returns the total row count across all windows.
func (rs RowSet) Len() int {
	n := 0
	for _, w := range rs.windows {
		n += len(w.Rows)
	}

	return n
}
