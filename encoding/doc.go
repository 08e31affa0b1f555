// Package encoding defines the generic columnar encode/decode interface
// shape: ColumnarEncoder[T] / ColumnarDecoder[T],
// a typed write/read boundary over a byte buffer with sequential and
// random-access retrieval.
//
// The columnar package builds its column-vector view adapters
// (NumericColumn[T], StringColumn, DictionaryColumn, Table) around this
// same typed boundary shape, generalized from a single-column encoder/decoder
// pair to a multi-column table satisfying the predicate package's
// ColumnarSource interface.
package encoding
