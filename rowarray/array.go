// Package rowarray implements the binary array: a
// packed, possibly multi-segment image of
//
//	[ int32 num_elements | null bitset, padded to 4-byte words | num_elements × element_size | variable tail ]
//
// Unlike the binary row (package row), an array carries no header byte: its
// null bit for element i sits directly at bit i of the bitset region, which
// itself starts right after the leading num_elements int32.
package rowarray

import (
	"github.com/lakerow/rowbinary/errs"
	"github.com/lakerow/rowbinary/internal/pool"
	"github.com/lakerow/rowbinary/section"
	"github.com/lakerow/rowbinary/segment"
)

// NullBitsetOffset is the fixed byte offset of the null bitset, right after
// the leading int32 element count.
const NullBitsetOffset = 4

// BitsetWidth returns the byte width of the null-bitset region for an array of
// numElements elements, rounded up to 4-byte words.
func BitsetWidth(numElements int) int {
	return ((numElements + 31) / 32) * 4
}

// FixedPartSize returns the byte size of an array's fixed part (count +
// bitset + numElements slots of elementSize bytes each), before any variable
// tail.
func FixedPartSize(numElements, elementSize int) int {
	return NullBitsetOffset + BitsetWidth(numElements) + numElements*elementSize
}

// Array is a section with schema <element_size, num_elements>.
type Array struct {
	section.Section
	numElements int
	elementSize int
}

// New wraps segs[offset:offset+size] as an Array with the given element
// layout.
func New(segs segment.Sequence, offset, size, numElements, elementSize int) Array {
	return Array{
		Section:     section.New(segs, offset, size),
		numElements: numElements,
		elementSize: elementSize,
	}
}

// Len returns the element count.
func (a Array) Len() int { return a.numElements }

// ElementSize returns the per-element fixed slot width.
func (a Array) ElementSize() int { return a.elementSize }

// Size returns the array's total byte size, including its variable tail.
func (a Array) Size() int { return a.Length }

func (a Array) bitsetWidth() int { return BitsetWidth(a.numElements) }

func (a Array) slotOffset(i int) int {
	return a.Offset + NullBitsetOffset + a.bitsetWidth() + i*a.elementSize
}

func (a Array) checkIndex(i int) error {
	if i < 0 || i >= a.numElements {
		return errs.ErrIndexOutOfRange
	}

	return nil
}

// IsNullAt reports whether element i is null.
func (a Array) IsNullAt(i int) (bool, error) {
	if err := a.checkIndex(i); err != nil {
		return false, err
	}

	return segment.BitGet(a.Segs, a.Offset+NullBitsetOffset, i)
}

// AnyNull reports whether any element in the array is null, OR-scanning the
// bitset region.
func (a Array) AnyNull() (bool, error) {
	width := a.bitsetWidth()
	for w := 0; w < width; w += 4 {
		v, err := segment.GetInt32(a.Segs, a.Offset+NullBitsetOffset+w)
		if err != nil {
			return false, err
		}
		if v != 0 {
			return true, nil
		}
	}

	return false, nil
}

// Equals reports byte-wise equality over the section window.
func (a Array) Equals(other Array) (bool, error) {
	return a.Section.Equals(other.Section)
}

// Hash computes MurmurHash3-x86-32 over the array's section window.
func (a Array) Hash() (uint32, error) {
	return a.Section.Hash()
}

// GetBool reads element i as a bool (elementSize must be 1).
func (a Array) GetBool(i int) (bool, error) {
	if err := a.checkIndex(i); err != nil {
		return false, err
	}

	return segment.GetBool(a.Segs, a.slotOffset(i))
}

// GetTinyInt reads element i as an int8 (elementSize must be 1).
func (a Array) GetTinyInt(i int) (int8, error) {
	if err := a.checkIndex(i); err != nil {
		return 0, err
	}

	return segment.GetInt8(a.Segs, a.slotOffset(i))
}

// GetSmallInt reads element i as an int16 (elementSize must be 2).
func (a Array) GetSmallInt(i int) (int16, error) {
	if err := a.checkIndex(i); err != nil {
		return 0, err
	}

	return segment.GetInt16(a.Segs, a.slotOffset(i))
}

// GetInt reads element i as an int32 (elementSize must be 4).
func (a Array) GetInt(i int) (int32, error) {
	if err := a.checkIndex(i); err != nil {
		return 0, err
	}

	return segment.GetInt32(a.Segs, a.slotOffset(i))
}

// GetLong reads element i as an int64 (elementSize must be 8).
func (a Array) GetLong(i int) (int64, error) {
	if err := a.checkIndex(i); err != nil {
		return 0, err
	}

	return segment.GetInt64(a.Segs, a.slotOffset(i))
}

// GetFloat reads element i as a float32 (elementSize must be 4).
func (a Array) GetFloat(i int) (float32, error) {
	if err := a.checkIndex(i); err != nil {
		return 0, err
	}

	return segment.GetFloat32(a.Segs, a.slotOffset(i))
}

// GetDouble reads element i as a float64 (elementSize must be 8).
func (a Array) GetDouble(i int) (float64, error) {
	if err := a.checkIndex(i); err != nil {
		return 0, err
	}

	return segment.GetFloat64(a.Segs, a.slotOffset(i))
}

// readRawSlot copies the elementSize raw bytes of element i's slot (elementSize
// must be 8 for variable-length element kinds).
func (a Array) readRawSlot(i int) ([8]byte, error) {
	var raw [8]byte
	if err := a.checkIndex(i); err != nil {
		return raw, err
	}

	err := segment.CopyToBytes(a.Segs, a.slotOffset(i), raw[:])

	return raw, err
}

func (a Array) decodeOffsetLength(i int) (offset, length int, err error) {
	v, err := segment.GetInt64(a.Segs, a.slotOffset(i))
	if err != nil {
		return 0, 0, err
	}

	uv := uint64(v)
	offset = int((uv >> 32) & 0x7FFFFFFF) //nolint: gosec
	length = int(uv & 0xFFFFFFFF)         //nolint: gosec

	return offset, length, nil
}

// GetBinary reads element i as a binary string, dispatching on the slot's
// mark bit exactly as the binary row does.
func (a Array) GetBinary(i int) ([]byte, error) {
	raw, err := a.readRawSlot(i)
	if err != nil {
		return nil, err
	}

	mark := raw[markByteIndex]
	if mark&0x80 != 0 {
		length := int(mark & 0x7F)

		return segment.GetBytes(a.Segs, a.slotOffset(i)+payloadStartIdx, length)
	}

	offset, length, err := a.decodeOffsetLength(i)
	if err != nil {
		return nil, err
	}

	return segment.GetBytes(a.Segs, a.Offset+offset, length)
}

// GetString reads element i as a UTF-8 string.
func (a Array) GetString(i int) (string, error) {
	b, err := a.GetBinary(i)

	return string(b), err
}

// ToLongArray bulk-extracts every element as an int64, failing if any element
// is null. The result is drawn from the shared int64 slice pool;
// callers that want to retain it beyond the immediate call should copy it.
func (a Array) ToLongArray() ([]int64, func(), error) {
	any, err := a.AnyNull()
	if err != nil {
		return nil, func() {}, err
	}
	if any {
		return nil, func() {}, errs.ErrNullPrimitiveArray
	}

	out, cleanup := pool.GetInt64Slice(a.numElements)
	for i := 0; i < a.numElements; i++ {
		v, err := a.GetLong(i)
		if err != nil {
			cleanup()

			return nil, func() {}, err
		}
		out[i] = v
	}

	return out, cleanup, nil
}

// ToIntArray bulk-extracts every element as an int32, failing if any element
// is null.
func (a Array) ToIntArray() ([]int32, error) {
	any, err := a.AnyNull()
	if err != nil {
		return nil, err
	}
	if any {
		return nil, errs.ErrNullPrimitiveArray
	}

	out := make([]int32, a.numElements)
	for i := 0; i < a.numElements; i++ {
		v, err := a.GetInt(i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// ToDoubleArray bulk-extracts every element as a float64, failing if any
// element is null.
func (a Array) ToDoubleArray() ([]float64, func(), error) {
	any, err := a.AnyNull()
	if err != nil {
		return nil, func() {}, err
	}
	if any {
		return nil, func() {}, errs.ErrNullPrimitiveArray
	}

	out, cleanup := pool.GetFloat64Slice(a.numElements)
	for i := 0; i < a.numElements; i++ {
		v, err := a.GetDouble(i)
		if err != nil {
			cleanup()

			return nil, func() {}, err
		}
		out[i] = v
	}

	return out, cleanup, nil
}
