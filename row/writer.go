package row

import (
	"math/big"

	"github.com/lakerow/rowbinary/errs"
	"github.com/lakerow/rowbinary/internal/pool"
	"github.com/lakerow/rowbinary/rowtype"
	"github.com/lakerow/rowbinary/segment"
)

// Writer builds a single binary row into a pooled, growable buffer. It is
// single-owner: one goroutine at a time may call its
// methods, and a half-written row must not be read concurrently. Call Row()
// to obtain a byte-wise complete view of the current contents;
// Row() always re-derives its view from the writer's current buffer, so it
// stays correct across any buffer growth that reallocates the backing array.
type Writer struct {
	buf    *pool.SegmentBuffer
	arity  int
	fixed  int
	cursor int
}

// NewWriter creates a Writer for a row of the given arity, drawing its buffer
// from the default pooled row-writer allocator.
func NewWriter(arity int) *Writer {
	w := &Writer{buf: pool.GetRowBuffer()}
	w.Reset(arity)

	return w
}

// Release returns the writer's buffer to the pool. The writer must not be
// used again afterward.
func (w *Writer) Release() {
	pool.PutRowBuffer(w.buf)
	w.buf = nil
}

// Reset clears the writer for building a fresh row, possibly of a different
// arity, reusing the backing buffer. The fixed part is explicitly zeroed,
// since a pooled buffer may carry bytes from a previous, larger row.
func (w *Writer) Reset(arity int) {
	w.arity = arity
	w.fixed = FixedPartSize(arity)
	w.cursor = w.fixed

	w.buf.Reset()
	w.buf.SetLength(w.fixed)
}

func (w *Writer) checkIndex(i int) error {
	if i < 0 || i >= w.arity {
		return errs.ErrIndexOutOfRange
	}

	return nil
}

func (w *Writer) slotOffset(i int) int {
	return BitsetWidth(w.arity) + i*8
}

// view builds a fresh single-segment Sequence over the writer's current
// buffer bytes, so callers always see a consistent, up-to-date window
// regardless of any growth that happened since the last call.
func (w *Writer) view() segment.Sequence {
	return segment.Single(segment.Wrap(w.buf.B))
}

// Row returns a view of the row as written so far. The returned Row's byte
// window aliases the writer's buffer at the moment of the call: a later write
// that grows and reallocates the buffer does not affect a Row obtained
// earlier, but a later in-place write (a fixed slot, a null bit or the kind
// byte) made before any such reallocation is visible through it.
func (w *Writer) Row() Row {
	return New(w.view(), 0, w.buf.Len(), w.arity)
}

// SetKind sets the row-kind header byte.
func (w *Writer) SetKind(k rowtype.RowKind) error {
	return segment.SetInt8(w.view(), 0, int8(k)) //nolint: gosec
}

// WriteNull marks field i null and zeros its fixed slot.
func (w *Writer) WriteNull(i int) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if err := segment.BitSet(w.view(), 0, i+headerSizeInBits); err != nil {
		return err
	}

	return segment.SetInt64(w.view(), w.slotOffset(i), 0)
}

func (w *Writer) clearNull(i int) error {
	return segment.BitUnset(w.view(), 0, i+headerSizeInBits)
}

// WriteBool writes field i as a bool.
func (w *Writer) WriteBool(i int, v bool) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if err := w.clearNull(i); err != nil {
		return err
	}

	return segment.SetBool(w.view(), w.slotOffset(i), v)
}

// WriteTinyInt writes field i as an int8.
func (w *Writer) WriteTinyInt(i int, v int8) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if err := w.clearNull(i); err != nil {
		return err
	}

	return segment.SetInt8(w.view(), w.slotOffset(i), v)
}

// WriteSmallInt writes field i as an int16.
func (w *Writer) WriteSmallInt(i int, v int16) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if err := w.clearNull(i); err != nil {
		return err
	}

	return segment.SetInt16(w.view(), w.slotOffset(i), v)
}

// WriteInt writes field i as an int32.
func (w *Writer) WriteInt(i int, v int32) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if err := w.clearNull(i); err != nil {
		return err
	}

	return segment.SetInt32(w.view(), w.slotOffset(i), v)
}

// WriteLong writes field i as an int64.
func (w *Writer) WriteLong(i int, v int64) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if err := w.clearNull(i); err != nil {
		return err
	}

	return segment.SetInt64(w.view(), w.slotOffset(i), v)
}

// WriteFloat writes field i as a float32.
func (w *Writer) WriteFloat(i int, v float32) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if err := w.clearNull(i); err != nil {
		return err
	}

	return segment.SetFloat32(w.view(), w.slotOffset(i), v)
}

// WriteDouble writes field i as a float64.
func (w *Writer) WriteDouble(i int, v float64) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if err := w.clearNull(i); err != nil {
		return err
	}

	return segment.SetFloat64(w.view(), w.slotOffset(i), v)
}

// WriteDate writes field i as a raw day-number int32.
func (w *Writer) WriteDate(i int, v int32) error { return w.WriteInt(i, v) }

// appendTail appends payload to the variable tail, 8-byte padding it so every
// tail entry starts on a word boundary, and returns its offset
// from the start of the row.
func (w *Writer) appendTail(payload []byte) (offset int) {
	offset = w.buf.Len()
	w.buf.MustWrite(payload)

	pad := (8 - len(payload)%8) % 8
	if pad > 0 {
		var padding [8]byte
		w.buf.MustWrite(padding[:pad])
	}

	return offset
}

// writeVarLen writes field i's variable-length payload, choosing the inline
// compact form for payloads of compactPayloadMaxLen bytes or fewer and an
// offset+length tail entry otherwise.
func (w *Writer) writeVarLen(i int, payload []byte) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if err := w.clearNull(i); err != nil {
		return err
	}

	if len(payload) <= compactPayloadMaxLen {
		slot := encodeCompactSlot(payload)

		return segment.CopyFromBytes(w.view(), w.slotOffset(i), slot[:])
	}

	offset := w.appendTail(payload)

	return segment.SetInt64(w.view(), w.slotOffset(i), encodeOffsetLengthSlot(offset, len(payload)))
}

// WriteBinary writes field i as a binary payload.
func (w *Writer) WriteBinary(i int, v []byte) error { return w.writeVarLen(i, v) }

// WriteString writes field i as a UTF-8 string.
func (w *Writer) WriteString(i int, v string) error { return w.writeVarLen(i, []byte(v)) }

// WriteDecimal writes field i's unscaled value. precision<=18 selects the
// compact inline int64 form (the caller guarantees v fits); precision>18
// writes the minimal-length big-endian two's-complement encoding of v to the
// variable tail and records its actual byte length in the slot, matching
// java.math.BigInteger.toByteArray() semantics.
func (w *Writer) WriteDecimal(i int, v *big.Int, precision int32) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if err := w.clearNull(i); err != nil {
		return err
	}

	if precision <= 18 {
		return segment.SetInt64(w.view(), w.slotOffset(i), v.Int64())
	}

	payload := bigIntToTwosComplementBE(v)
	offset := w.appendTail(payload)

	return segment.SetInt64(w.view(), w.slotOffset(i), encodeOffsetLengthSlot(offset, len(payload)))
}

// WriteTimestamp writes field i's (epochMillis, nanoOfMillis) pair.
// precision<=3 selects the compact inline-millis form, discarding
// nanoOfMillis; precision in (3,6] reserves a dedicated non-length-prefixed
// 8-byte tail entry for epochMillis and rides nanoOfMillis in the slot's size
// half.
func (w *Writer) WriteTimestamp(i int, epochMillis int64, nanoOfMillis int32, precision int32) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if err := w.clearNull(i); err != nil {
		return err
	}

	if precision <= 3 {
		return segment.SetInt64(w.view(), w.slotOffset(i), epochMillis)
	}

	tailBytes := segment.EncodeNativeInt64(epochMillis)
	offset := w.appendTail(tailBytes[:])

	return segment.SetInt64(w.view(), w.slotOffset(i), encodeTimestampExpandedSlot(offset, nanoOfMillis))
}

// WriteLiteral writes field i from a typed literal value, dispatching to the
// matching WriteXxx method (or WriteNull for a null literal). For Decimal,
// the compact/expanded form is chosen by whether the unscaled value fits in
// an int64, since rowtype.Literal does not carry decimal precision
// separately from its unscaled value.
func (w *Writer) WriteLiteral(i int, lit rowtype.Literal) error {
	if lit.IsNull() {
		return w.WriteNull(i)
	}

	switch lit.Type() {
	case rowtype.TypeBoolean:
		return w.WriteBool(i, lit.AsInt64() != 0)
	case rowtype.TypeTinyInt:
		return w.WriteTinyInt(i, int8(lit.AsInt64())) //nolint: gosec
	case rowtype.TypeSmallInt:
		return w.WriteSmallInt(i, int16(lit.AsInt64())) //nolint: gosec
	case rowtype.TypeInt, rowtype.TypeDate:
		return w.WriteInt(i, int32(lit.AsInt64())) //nolint: gosec
	case rowtype.TypeBigInt:
		return w.WriteLong(i, lit.AsInt64())
	case rowtype.TypeFloat:
		return w.WriteFloat(i, float32(lit.AsFloat64()))
	case rowtype.TypeDouble:
		return w.WriteDouble(i, lit.AsFloat64())
	case rowtype.TypeString:
		return w.WriteString(i, lit.AsString())
	case rowtype.TypeBinary:
		return w.WriteBinary(i, lit.AsBinary())
	case rowtype.TypeDecimal:
		unscaled, _ := lit.AsDecimal()
		precision := int32(18)
		if !unscaled.IsInt64() {
			precision = 19
		}

		return w.WriteDecimal(i, unscaled, precision)
	case rowtype.TypeTimestamp:
		epochMillis, precision := lit.AsTimestamp()

		return w.WriteTimestamp(i, epochMillis, 0, precision)
	default:
		return errs.ErrNotImplemented
	}
}
