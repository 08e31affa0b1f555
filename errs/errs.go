// Package errs defines the sentinel errors shared across the rowbinary module.
//
// Every package wraps one of these sentinels with fmt.Errorf("%w: ...") to add
// call-site context while still letting callers match with errors.Is.
package errs

import "errors"

var (
	// ErrInvalid is returned for malformed input, schema/type mismatches, and
	// out-of-range indices.
	ErrInvalid = errors.New("invalid argument")

	// ErrNotImplemented is returned for a type that is otherwise valid but has
	// no converter coverage yet (e.g. a list-typed partition key).
	ErrNotImplemented = errors.New("not implemented")

	// ErrEndOfStream is returned by a stream read that cannot be satisfied.
	ErrEndOfStream = errors.New("end of stream")

	// ErrIndexOutOfRange is returned when a field/element ordinal falls outside
	// the substrate's declared arity.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNullLiteral is returned when a predicate operator that is not null-aware
	// receives a null literal operand.
	ErrNullLiteral = errors.New("null literal not supported by this operator")

	// ErrTypeMismatch is returned when two literals or a literal and a field
	// are compared across incompatible FieldTypes.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNullPrimitiveArray is returned by bulk-to-primitive-array conversions
	// when the source array contains a null element.
	ErrNullPrimitiveArray = errors.New("primitive array must not contain a null value")

	// ErrSegmentBoundsExceeded is returned when offset+size exceeds the total
	// size of a segment sequence.
	ErrSegmentBoundsExceeded = errors.New("segment bounds exceeded")

	// ErrEmptyCompound is returned by And()/Or() when given zero children.
	ErrEmptyCompound = errors.New("compound predicate requires at least one child")

	// ErrMissingPartitionKey is returned when a partition value map is missing
	// a configured partition field.
	ErrMissingPartitionKey = errors.New("missing partition key")

	// ErrInvalidBucketCount is returned for an unsupported num_buckets value.
	ErrInvalidBucketCount = errors.New("invalid bucket count")

	// ErrPostponedBucketUnsupported is returned when postponed bucket mode
	// (-2) is requested for an append-only table.
	ErrPostponedBucketUnsupported = errors.New("postponed bucket mode unsupported for append-only table")

	// ErrDynamicBucketUnsupported is returned when dynamic bucket mode (-1) is
	// requested for a primary-key table.
	ErrDynamicBucketUnsupported = errors.New("dynamic bucket mode unsupported for primary-key table")

	// ErrRemapIndexOutOfRange is returned when a projected row/array remap
	// table is indexed past its length.
	ErrRemapIndexOutOfRange = errors.New("remap index out of range")

	// ErrWriteTwice is returned when a writer detects the same field ordinal
	// written more than once in a single record (best-effort, debug-only check).
	ErrWriteTwice = errors.New("field already written")

	// ErrColumnLengthMismatch is returned when columnar.NewTable is given
	// columns that do not all report the same row count.
	ErrColumnLengthMismatch = errors.New("column length mismatch")
)
