package partition

import (
	"github.com/lakerow/rowbinary/errs"
	"github.com/lakerow/rowbinary/row"
	"github.com/lakerow/rowbinary/rowopts"
	"github.com/lakerow/rowbinary/rowtype"
)

// BucketCalculator computes the bucket id for rows, keyed on a fixed set of
// bucket-key fields, per the three num_buckets sentinel modes.
type BucketCalculator struct {
	schema Schema
	cfg    *rowopts.Config
}

// NewBucketCalculator builds a BucketCalculator over schema, restricted to
// the bucket-key fields named in cfg's partition keys (bucket keys reuse the
// same ordered-field-selection logic as the partition computer).
func NewBucketCalculator(schema Schema, cfg *rowopts.Config) (*BucketCalculator, error) {
	c, err := New(schema, cfg)
	if err != nil {
		return nil, err
	}

	return &BucketCalculator{schema: c.schema, cfg: cfg}, nil
}

// BucketID computes the bucket id for one row of bucket-key values, keyed
// by field name:
//
//   - NumBucketsSingle: every row maps to bucket 0.
//   - NumBucketsDynamic: cross-partition dynamic bucketing, every row maps
//     to bucket 0 (the dynamic assignment itself happens outside this
//     calculator, at partition-assignment time).
//   - NumBucketsPostponed: bucket assignment is deferred; every row reports -2.
//   - otherwise: project the bucket-key fields into a fresh binary row,
//     then abs(row.Hash() % num_buckets).
func (b *BucketCalculator) BucketID(values map[string]string) (int, error) {
	switch b.cfg.NumBuckets() {
	case rowopts.NumBucketsSingle, rowopts.NumBucketsDynamic:
		return 0, nil
	case rowopts.NumBucketsPostponed:
		return rowopts.NumBucketsPostponed, nil
	}

	r, err := b.projectRow(values)
	if err != nil {
		return 0, err
	}

	h, err := r.Hash()
	if err != nil {
		return 0, err
	}

	bucket := int32(h) % int32(b.cfg.NumBuckets()) //nolint: gosec
	if bucket < 0 {
		bucket = -bucket
	}

	return int(bucket), nil
}

func (b *BucketCalculator) projectRow(values map[string]string) (row.Row, error) {
	w := row.NewWriter(len(b.schema))

	for i, f := range b.schema {
		raw, ok := values[f.Name]
		if !ok {
			w.Release()

			return row.Row{}, errs.ErrMissingPartitionKey
		}

		// Bucket-key projection reuses the same per-type string
		// conversion as the partition computer.
		computer := Computer{schema: b.schema, cfg: b.cfg}
		if err := computer.writeField(w, i, f, raw); err != nil {
			w.Release()

			return row.Row{}, err
		}
	}

	return w.Row(), nil
}

// BucketKeyColumns is a columnar batch of bucket-key values: one equal-length
// vector of typed literals per bucket-key field, keyed by field name.
type BucketKeyColumns map[string][]rowtype.Literal

// BucketIDs computes the bucket id for every row of a columnar bucket-key
// batch in one call, returning a plain []int32 of length equal to each
// column's length. Applies the same three num_buckets sentinel modes as
// BucketID, and projects each row's bucket-key fields into a fresh binary
// row via the same element writers WriteLiteral dispatches to.
func (b *BucketCalculator) BucketIDs(columns BucketKeyColumns) ([]int32, error) {
	n, err := b.columnLen(columns)
	if err != nil {
		return nil, err
	}

	out := make([]int32, n)

	switch b.cfg.NumBuckets() {
	case rowopts.NumBucketsSingle, rowopts.NumBucketsDynamic:
		return out, nil
	case rowopts.NumBucketsPostponed:
		for i := range out {
			out[i] = rowopts.NumBucketsPostponed
		}

		return out, nil
	}

	for i := 0; i < n; i++ {
		r, err := b.projectRowFromColumns(columns, i)
		if err != nil {
			return nil, err
		}

		h, err := r.Hash()
		if err != nil {
			return nil, err
		}

		bucket := int32(h) % int32(b.cfg.NumBuckets()) //nolint: gosec
		if bucket < 0 {
			bucket = -bucket
		}

		out[i] = bucket
	}

	return out, nil
}

// columnLen validates that every bucket-key field has a column present in
// columns and that all columns share one length, returning that length.
func (b *BucketCalculator) columnLen(columns BucketKeyColumns) (int, error) {
	n := -1

	for _, f := range b.schema {
		col, ok := columns[f.Name]
		if !ok {
			return 0, errs.ErrMissingPartitionKey
		}

		if n == -1 {
			n = len(col)
		} else if len(col) != n {
			return 0, errs.ErrColumnLengthMismatch
		}
	}

	if n == -1 {
		return 0, nil
	}

	return n, nil
}

func (b *BucketCalculator) projectRowFromColumns(columns BucketKeyColumns, rowIdx int) (row.Row, error) {
	w := row.NewWriter(len(b.schema))

	for i, f := range b.schema {
		lit := columns[f.Name][rowIdx]
		if err := w.WriteLiteral(i, lit); err != nil {
			w.Release()

			return row.Row{}, err
		}
	}

	return w.Row(), nil
}
