// Package row implements the binary row: a packed, possibly multi-segment
// record image of
//
//	[ header byte | null bitset, padded to 8-byte words | arity × 8-byte slots | variable tail ]
//
// Header byte occupies byte 0. The null bit for field i lives at bit i+8 of the
// bitset region (i.e. byte 1 bit 0 for field 0), so the bitset's first byte is
// reserved for the row-kind header and never carries a null flag.
package row

import (
	"math/big"

	"github.com/lakerow/rowbinary/endian"
	"github.com/lakerow/rowbinary/errs"
	"github.com/lakerow/rowbinary/rowtype"
	"github.com/lakerow/rowbinary/section"
	"github.com/lakerow/rowbinary/segment"
)

// headerSizeInBits is the single reserved header byte, counted in bits so the
// bitset-width formula below reads the same as the reference implementation.
const headerSizeInBits = 8

// BitsetWidth returns the byte width of the null-bitset region (including the
// header byte) for a row of the given arity, rounded up to 8-byte words.
//
// The formula is the integer-division form of ceil((arity+headerSizeInBits)/64)*8:
// for arity 0 this yields one 8-byte word, matching the empty-row edge case.
func BitsetWidth(arity int) int {
	return ((arity + 63 + headerSizeInBits) / 64) * 8
}

// FixedPartSize returns the total size, in bytes, of a row's fixed part
// (bitset + arity fixed slots), before any variable tail.
func FixedPartSize(arity int) int {
	return BitsetWidth(arity) + arity*8
}

// hostBigEndian and the derived mark/payload byte positions are computed once:
// the variable-length inline encoding's byte ordering mirrors host endianness,
// since rows are an in-process memory representation, never a wire format
// in their own right.
var (
	hostBigEndian   = endian.IsNativeBigEndian()
	markByteIndex   = markByteIdx()
	payloadStartIdx = payloadStartIdxFn()
	anyNullMask     = anyNullMaskFn()
)

func markByteIdx() int {
	if hostBigEndian {
		return 0
	}

	return 7
}

func payloadStartIdxFn() int {
	if hostBigEndian {
		return 1
	}

	return 0
}

// anyNullMaskFn isolates everything in the first bitset qword except the
// row-kind header byte, so AnyNull() never treats a
// non-zero header value as a null flag.
func anyNullMaskFn() uint64 {
	if hostBigEndian {
		return 0x00FFFFFFFFFFFFFF
	}

	return 0xFFFFFFFFFFFFFF00
}

// Row is a section with schema <arity>. It is a thin value type over
// a shared, immutable segment.Sequence; freely shareable across goroutines
// once construction completes.
type Row struct {
	section.Section
	arity int
}

// New wraps segs[offset:offset+size] as a Row of the given arity. The caller
// is responsible for ensuring the window was produced by a legal Writer
// sequence.
func New(segs segment.Sequence, offset, size, arity int) Row {
	return Row{Section: section.New(segs, offset, size), arity: arity}
}

// emptyRowBuf backs the process-wide empty-row singleton.
var emptyRowBuf = make([]byte, BitsetWidth(0))

// Empty returns the process-wide singleton row of arity 0: a fully-padded,
// one-qword bitset and zero fixed slots.
func Empty() Row {
	return New(segment.Single(segment.Wrap(emptyRowBuf)), 0, len(emptyRowBuf), 0)
}

// Arity returns the row's declared field count.
func (r Row) Arity() int { return r.arity }

// Size returns the row's total byte size, including its variable tail.
func (r Row) Size() int { return r.Length }

// Segments returns the underlying segment sequence and base offset, for
// callers (serializer, hashing) that need the raw window.
func (r Row) Segments() (segment.Sequence, int, int) { return r.Segs, r.Offset, r.Length }

func (r Row) bitsetWidth() int { return BitsetWidth(r.arity) }

func (r Row) slotOffset(i int) int {
	return r.Offset + r.bitsetWidth() + i*8
}

func (r Row) checkIndex(i int) error {
	if i < 0 || i >= r.arity {
		return errs.ErrIndexOutOfRange
	}

	return nil
}

// Kind returns the row's changelog kind, stored in the header byte.
func (r Row) Kind() (rowtype.RowKind, error) {
	b, err := segment.GetInt8(r.Segs, r.Offset)

	return rowtype.RowKind(b), err //nolint: gosec
}

// SetKind overwrites the row's changelog kind. Setting is permitted post hoc;
// no destroy operation is exposed.
func (r Row) SetKind(k rowtype.RowKind) error {
	return segment.SetInt8(r.Segs, r.Offset, int8(k)) //nolint: gosec
}

// IsNullAt reports whether field i is null.
func (r Row) IsNullAt(i int) (bool, error) {
	if err := r.checkIndex(i); err != nil {
		return false, err
	}

	return segment.BitGet(r.Segs, r.Offset, i+headerSizeInBits)
}

// SetNullAt marks field i null and zeros its fixed slot, so hashing and
// equality are stable regardless of whether a field is null or legitimately
// zero-valued.
func (r Row) SetNullAt(i int) error {
	if err := r.checkIndex(i); err != nil {
		return err
	}
	if err := segment.BitSet(r.Segs, r.Offset, i+headerSizeInBits); err != nil {
		return err
	}

	var zero8 [8]byte

	return segment.CopyFromBytes(r.Segs, r.slotOffset(i), zero8[:])
}

func (r Row) clearNullAt(i int) error {
	return segment.BitUnset(r.Segs, r.Offset, i+headerSizeInBits)
}

// AnyNull reports whether any field in the row is null, OR-scanning the
// bitset 8 bytes at a time with the first qword masked to exclude the header
// byte.
func (r Row) AnyNull() (bool, error) {
	width := r.bitsetWidth()
	for w := 0; w < width; w += 8 {
		v, err := segment.GetInt64(r.Segs, r.Offset+w)
		if err != nil {
			return false, err
		}

		uv := uint64(v)
		if w == 0 {
			uv &= anyNullMask
		}
		if uv != 0 {
			return true, nil
		}
	}

	return false, nil
}

// Equals reports byte-wise equality over the section window.
func (r Row) Equals(other Row) (bool, error) {
	return r.Section.Equals(other.Section)
}

// Hash computes MurmurHash3-x86-32 over the row's section window. Multi-segment
// rows are implicitly handled by segment.Hash's scratch-buffer fallback.
func (r Row) Hash() (uint32, error) {
	return r.Section.Hash()
}

// --- fixed-width getters ---

// GetBool reads field i as a bool.
func (r Row) GetBool(i int) (bool, error) {
	if err := r.checkIndex(i); err != nil {
		return false, err
	}

	return segment.GetBool(r.Segs, r.slotOffset(i))
}

// GetTinyInt reads field i as an int8.
func (r Row) GetTinyInt(i int) (int8, error) {
	if err := r.checkIndex(i); err != nil {
		return 0, err
	}

	return segment.GetInt8(r.Segs, r.slotOffset(i))
}

// GetSmallInt reads field i as an int16.
func (r Row) GetSmallInt(i int) (int16, error) {
	if err := r.checkIndex(i); err != nil {
		return 0, err
	}

	return segment.GetInt16(r.Segs, r.slotOffset(i))
}

// GetInt reads field i as an int32 (also used for the numeric-identifier Date
// type; callers surface it as a date only at a higher level).
func (r Row) GetInt(i int) (int32, error) {
	if err := r.checkIndex(i); err != nil {
		return 0, err
	}

	return segment.GetInt32(r.Segs, r.slotOffset(i))
}

// GetLong reads field i as an int64.
func (r Row) GetLong(i int) (int64, error) {
	if err := r.checkIndex(i); err != nil {
		return 0, err
	}

	return segment.GetInt64(r.Segs, r.slotOffset(i))
}

// GetFloat reads field i as a float32.
func (r Row) GetFloat(i int) (float32, error) {
	if err := r.checkIndex(i); err != nil {
		return 0, err
	}

	return segment.GetFloat32(r.Segs, r.slotOffset(i))
}

// GetDouble reads field i as a float64.
func (r Row) GetDouble(i int) (float64, error) {
	if err := r.checkIndex(i); err != nil {
		return 0, err
	}

	return segment.GetFloat64(r.Segs, r.slotOffset(i))
}

// GetDate reads field i as a raw day-number int32.
func (r Row) GetDate(i int) (int32, error) { return r.GetInt(i) }

// --- variable-length getters ---

// readRawSlot copies the 8 raw bytes of field i's slot, without interpreting them.
func (r Row) readRawSlot(i int) ([8]byte, error) {
	var raw [8]byte
	if err := r.checkIndex(i); err != nil {
		return raw, err
	}

	err := segment.CopyToBytes(r.Segs, r.slotOffset(i), raw[:])

	return raw, err
}

// decodeOffsetLength reinterprets a slot already known to be non-compact as
// [mark=0 | 31-bit offset | 32-bit length].
func (r Row) decodeOffsetLength(i int) (offset, length int, err error) {
	v, err := segment.GetInt64(r.Segs, r.slotOffset(i))
	if err != nil {
		return 0, 0, err
	}

	uv := uint64(v)
	offset = int((uv >> 32) & 0x7FFFFFFF) //nolint: gosec
	length = int(uv & 0xFFFFFFFF)         //nolint: gosec

	return offset, length, nil
}

// GetBinary reads field i as a binary string:
// inline payloads (<=7 bytes) are read directly from the slot; larger
// payloads are read from the variable tail at the slot's recorded offset.
func (r Row) GetBinary(i int) ([]byte, error) {
	raw, err := r.readRawSlot(i)
	if err != nil {
		return nil, err
	}

	mark := raw[markByteIndex]
	if mark&0x80 != 0 {
		length := int(mark & 0x7F)

		return segment.GetBytes(r.Segs, r.slotOffset(i)+payloadStartIdx, length)
	}

	offset, length, err := r.decodeOffsetLength(i)
	if err != nil {
		return nil, err
	}

	return segment.GetBytes(r.Segs, r.Offset+offset, length)
}

// GetString reads field i as a UTF-8 string.
func (r Row) GetString(i int) (string, error) {
	b, err := r.GetBinary(i)

	return string(b), err
}

// GetDecimalUnscaled reads field i as a decimal's unscaled integer value.
// precision selects the compact (<=18, inline int64) or expanded (big-endian
// two's-complement tail bytes) representation.
func (r Row) GetDecimalUnscaled(i int, precision int32) (*big.Int, error) {
	if err := r.checkIndex(i); err != nil {
		return nil, err
	}

	if precision <= 18 {
		v, err := segment.GetInt64(r.Segs, r.slotOffset(i))
		if err != nil {
			return nil, err
		}

		return big.NewInt(v), nil
	}

	offset, length, err := r.decodeOffsetLength(i)
	if err != nil {
		return nil, err
	}

	raw, err := segment.GetBytes(r.Segs, r.Offset+offset, length)
	if err != nil {
		return nil, err
	}

	return bigIntFromTwosComplementBE(raw), nil
}

// GetTimestamp reads field i as (epochMillis, nanoOfMillis). precision<=3
// selects the compact inline-millis form; precision in (3,6] selects the
// expanded form whose nanosecond remainder rides in the slot's size half and
// whose millisecond value lives in a dedicated tail slot.
func (r Row) GetTimestamp(i int, precision int32) (epochMillis int64, nanoOfMillis int32, err error) {
	if err := r.checkIndex(i); err != nil {
		return 0, 0, err
	}

	if precision <= 3 {
		v, err := segment.GetInt64(r.Segs, r.slotOffset(i))

		return v, 0, err
	}

	offset, nanoHalf, err := r.decodeOffsetLength(i)
	if err != nil {
		return 0, 0, err
	}

	ms, err := segment.GetInt64(r.Segs, r.Offset+offset)

	return ms, int32(nanoHalf), err //nolint: gosec
}
