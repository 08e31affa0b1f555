package rowarray

import (
	"github.com/lakerow/rowbinary/errs"
	"github.com/lakerow/rowbinary/internal/pool"
	"github.com/lakerow/rowbinary/segment"
)

// Writer builds a single binary array into a pooled, growable buffer.
// Single-owner; call Array() for an immutable view of
// the current contents, re-derived fresh from the buffer on every call so it
// stays correct across a pool-triggered reallocation.
type Writer struct {
	buf         *pool.SegmentBuffer
	numElements int
	elementSize int
	fixed       int
}

// NewWriter creates a Writer for an array of numElements elements of
// elementSize bytes each (elementSize must be one of 1, 2, 4, 8), drawing its
// buffer from the default pooled array-writer allocator.
func NewWriter(numElements, elementSize int) *Writer {
	w := &Writer{buf: pool.GetArrayBuffer()}
	w.Reset(numElements, elementSize)

	return w
}

// Release returns the writer's buffer to the pool. The writer must not be
// used again afterward.
func (w *Writer) Release() {
	pool.PutArrayBuffer(w.buf)
	w.buf = nil
}

// Reset clears the writer for building a fresh array, possibly with a
// different element layout, reusing the backing buffer. The element count is
// written immediately so a reader constructed mid-write always sees a valid
// header.
func (w *Writer) Reset(numElements, elementSize int) {
	w.numElements = numElements
	w.elementSize = elementSize
	w.fixed = FixedPartSize(numElements, elementSize)

	w.buf.Reset()
	w.buf.SetLength(w.fixed)
	_ = segment.SetInt32(w.view(), 0, int32(numElements)) //nolint: gosec
}

func (w *Writer) checkIndex(i int) error {
	if i < 0 || i >= w.numElements {
		return errs.ErrIndexOutOfRange
	}

	return nil
}

func (w *Writer) slotOffset(i int) int {
	return NullBitsetOffset + BitsetWidth(w.numElements) + i*w.elementSize
}

func (w *Writer) view() segment.Sequence {
	return segment.Single(segment.Wrap(w.buf.B))
}

// Array returns an immutable view of the array as written so far.
func (w *Writer) Array() Array {
	return New(w.view(), 0, w.buf.Len(), w.numElements, w.elementSize)
}

// WriteNull marks element i null and zeros its fixed slot.
func (w *Writer) WriteNull(i int) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if err := segment.BitSet(w.view(), NullBitsetOffset, i); err != nil {
		return err
	}

	var zero [8]byte

	return segment.CopyFromBytes(w.view(), w.slotOffset(i), zero[:w.elementSize])
}

func (w *Writer) clearNull(i int) error {
	return segment.BitUnset(w.view(), NullBitsetOffset, i)
}

// WriteBool writes element i as a bool (elementSize must be 1).
func (w *Writer) WriteBool(i int, v bool) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if err := w.clearNull(i); err != nil {
		return err
	}

	return segment.SetBool(w.view(), w.slotOffset(i), v)
}

// WriteTinyInt writes element i as an int8 (elementSize must be 1).
func (w *Writer) WriteTinyInt(i int, v int8) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if err := w.clearNull(i); err != nil {
		return err
	}

	return segment.SetInt8(w.view(), w.slotOffset(i), v)
}

// WriteSmallInt writes element i as an int16 (elementSize must be 2).
func (w *Writer) WriteSmallInt(i int, v int16) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if err := w.clearNull(i); err != nil {
		return err
	}

	return segment.SetInt16(w.view(), w.slotOffset(i), v)
}

// WriteInt writes element i as an int32 (elementSize must be 4).
func (w *Writer) WriteInt(i int, v int32) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if err := w.clearNull(i); err != nil {
		return err
	}

	return segment.SetInt32(w.view(), w.slotOffset(i), v)
}

// WriteLong writes element i as an int64 (elementSize must be 8).
func (w *Writer) WriteLong(i int, v int64) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if err := w.clearNull(i); err != nil {
		return err
	}

	return segment.SetInt64(w.view(), w.slotOffset(i), v)
}

// WriteFloat writes element i as a float32 (elementSize must be 4).
func (w *Writer) WriteFloat(i int, v float32) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if err := w.clearNull(i); err != nil {
		return err
	}

	return segment.SetFloat32(w.view(), w.slotOffset(i), v)
}

// WriteDouble writes element i as a float64 (elementSize must be 8).
func (w *Writer) WriteDouble(i int, v float64) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if err := w.clearNull(i); err != nil {
		return err
	}

	return segment.SetFloat64(w.view(), w.slotOffset(i), v)
}

// appendTail appends payload to the variable tail, 8-byte padding it, and
// returns its offset from the start of the array.
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

// writeVarLen writes element i's variable-length payload (elementSize must be
// 8), choosing the inline compact form for short payloads and an
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

// WriteBinary writes element i as a binary payload.
func (w *Writer) WriteBinary(i int, v []byte) error { return w.writeVarLen(i, v) }

// WriteString writes element i as a UTF-8 string.
func (w *Writer) WriteString(i int, v string) error { return w.writeVarLen(i, []byte(v)) }
