package segment

import (
	"math"

	"github.com/lakerow/rowbinary/endian"
	"github.com/lakerow/rowbinary/errs"
	"github.com/lakerow/rowbinary/internal/murmur"
)

// nativeEngine reads/writes fixed slots in host-native byte order:
// get_value<T>/put_value<T> never need wire-endian awareness, only the stream
// layer does.
var nativeEngine = endian.NativeEngine()

// GetBytes reads n bytes starting at offset, reassembling across segment
// boundaries when necessary. The returned slice is a fresh copy when the read
// straddles segments; it aliases the backing segment when it does not.
func GetBytes(sq Sequence, offset, n int) ([]byte, error) {
	if offset < 0 || n < 0 || offset+n > sq.TotalSize() {
		return nil, errs.ErrSegmentBoundsExceeded
	}

	if sq.IsSingleSegment(offset, n) {
		return sq[0].buf[offset : offset+n], nil
	}

	out := make([]byte, n)
	if err := CopyToBytes(sq, offset, out); err != nil {
		return nil, err
	}

	return out, nil
}

// CopyToBytes copies len(dst) bytes starting at offset in sq into dst, walking
// segment boundaries as needed.
func CopyToBytes(sq Sequence, offset int, dst []byte) error {
	n := len(dst)
	if offset < 0 || n < 0 || offset+n > sq.TotalSize() {
		return errs.ErrSegmentBoundsExceeded
	}

	if sq.IsSingleSegment(offset, n) {
		copy(dst, sq[0].buf[offset:offset+n])

		return nil
	}

	segIdx, segOff := sq.locate(offset)
	written := 0
	for written < n && segIdx < len(sq) {
		seg := sq[segIdx].buf
		avail := len(seg) - segOff
		toCopy := n - written
		if toCopy > avail {
			toCopy = avail
		}

		copy(dst[written:written+toCopy], seg[segOff:segOff+toCopy])
		written += toCopy
		segIdx++
		segOff = 0
	}

	if written != n {
		return errs.ErrSegmentBoundsExceeded
	}

	return nil
}

// CopyFromBytes copies src into sq starting at offset, walking segment
// boundaries as needed.
func CopyFromBytes(sq Sequence, offset int, src []byte) error {
	n := len(src)
	if offset < 0 || n < 0 || offset+n > sq.TotalSize() {
		return errs.ErrSegmentBoundsExceeded
	}

	if sq.IsSingleSegment(offset, n) {
		copy(sq[0].buf[offset:offset+n], src)

		return nil
	}

	segIdx, segOff := sq.locate(offset)
	written := 0
	for written < n && segIdx < len(sq) {
		seg := sq[segIdx].buf
		avail := len(seg) - segOff
		toCopy := n - written
		if toCopy > avail {
			toCopy = avail
		}

		copy(seg[segOff:segOff+toCopy], src[written:written+toCopy])
		written += toCopy
		segIdx++
		segOff = 0
	}

	if written != n {
		return errs.ErrSegmentBoundsExceeded
	}

	return nil
}

// getWord reads size bytes at offset and decodes them as a host-native-order
// unsigned word, reassembling across a segment boundary via CopyToBytes
// when necessary. size must be 1, 2, 4, or 8.
func getWord(sq Sequence, offset, size int) (uint64, error) {
	var tmp [8]byte
	if sq.IsSingleSegment(offset, size) {
		copy(tmp[:size], sq[0].buf[offset:offset+size])
	} else if err := CopyToBytes(sq, offset, tmp[:size]); err != nil {
		return 0, err
	}

	return decodeNative(tmp[:size]), nil
}

func putWord(sq Sequence, offset int, v uint64, size int) error {
	var tmp [8]byte
	encodeNative(tmp[:size], v)

	if sq.IsSingleSegment(offset, size) {
		copy(sq[0].buf[offset:offset+size], tmp[:size])

		return nil
	}

	return CopyFromBytes(sq, offset, tmp[:size])
}

func decodeNative(b []byte) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(nativeEngine.Uint16(b))
	case 4:
		return uint64(nativeEngine.Uint32(b))
	case 8:
		return nativeEngine.Uint64(b)
	default:
		panic("segment: unsupported word size")
	}
}

func encodeNative(dst []byte, v uint64) {
	switch len(dst) {
	case 1:
		dst[0] = byte(v)
	case 2:
		nativeEngine.PutUint16(dst, uint16(v))
	case 4:
		nativeEngine.PutUint32(dst, uint32(v))
	case 8:
		nativeEngine.PutUint64(dst, v)
	default:
		panic("segment: unsupported word size")
	}
}

// EncodeNativeInt64 encodes v in host-native byte order. It is exposed for
// callers (writers) that append raw tail bytes directly to a growing buffer
// outside of a Sequence, before that buffer is wrapped as a segment.
func EncodeNativeInt64(v int64) [8]byte {
	var b [8]byte
	encodeNative(b[:], uint64(v))

	return b
}

// DecodeNativeInt64 decodes b (must be 8 bytes) as a host-native-order int64.
func DecodeNativeInt64(b []byte) int64 {
	return int64(decodeNative(b))
}

// GetBool reads a bool at offset (0x00 = false, any other byte = true).
func GetBool(sq Sequence, offset int) (bool, error) {
	w, err := getWord(sq, offset, 1)

	return w != 0, err
}

// SetBool writes a bool at offset.
func SetBool(sq Sequence, offset int, v bool) error {
	var b uint64
	if v {
		b = 1
	}

	return putWord(sq, offset, b, 1)
}

// GetInt8 reads a signed byte at offset.
func GetInt8(sq Sequence, offset int) (int8, error) {
	w, err := getWord(sq, offset, 1)

	return int8(w), err //nolint: gosec
}

// SetInt8 writes a signed byte at offset.
func SetInt8(sq Sequence, offset int, v int8) error {
	return putWord(sq, offset, uint64(uint8(v)), 1)
}

// GetInt16 reads a host-native int16 at offset.
func GetInt16(sq Sequence, offset int) (int16, error) {
	w, err := getWord(sq, offset, 2)

	return int16(w), err //nolint: gosec
}

// SetInt16 writes a host-native int16 at offset.
func SetInt16(sq Sequence, offset int, v int16) error {
	return putWord(sq, offset, uint64(uint16(v)), 2)
}

// GetInt32 reads a host-native int32 at offset.
func GetInt32(sq Sequence, offset int) (int32, error) {
	w, err := getWord(sq, offset, 4)

	return int32(w), err //nolint: gosec
}

// SetInt32 writes a host-native int32 at offset.
func SetInt32(sq Sequence, offset int, v int32) error {
	return putWord(sq, offset, uint64(uint32(v)), 4)
}

// GetInt64 reads a host-native int64 at offset.
func GetInt64(sq Sequence, offset int) (int64, error) {
	w, err := getWord(sq, offset, 8)

	return int64(w), err
}

// SetInt64 writes a host-native int64 at offset.
func SetInt64(sq Sequence, offset int, v int64) error {
	return putWord(sq, offset, uint64(v), 8)
}

// GetFloat32 reads a float32 at offset. The slow (multi-segment) path
// reassembles the raw int32 bits first, then bit-casts, to preserve IEEE
// encoding exactly.
func GetFloat32(sq Sequence, offset int) (float32, error) {
	w, err := getWord(sq, offset, 4)

	return math.Float32frombits(uint32(w)), err
}

// SetFloat32 writes a float32 at offset.
func SetFloat32(sq Sequence, offset int, v float32) error {
	return putWord(sq, offset, uint64(math.Float32bits(v)), 4)
}

// GetFloat64 reads a float64 at offset, reassembling the raw int64 bits first
// when the read straddles a segment boundary.
func GetFloat64(sq Sequence, offset int) (float64, error) {
	w, err := getWord(sq, offset, 8)

	return math.Float64frombits(w), err
}

// SetFloat64 writes a float64 at offset.
func SetFloat64(sq Sequence, offset int, v float64) error {
	return putWord(sq, offset, math.Float64bits(v), 8)
}

// BitGet reads the bit at baseOffset + bitIndex/8, bit position bitIndex%8.
func BitGet(sq Sequence, baseOffset, bitIndex int) (bool, error) {
	byteOff := baseOffset + bitIndex/8
	b, err := GetInt8(sq, byteOff)
	if err != nil {
		return false, err
	}

	return byte(b)&(1<<uint(bitIndex%8)) != 0, nil
}

// BitSet sets the bit at baseOffset + bitIndex/8, bit position bitIndex%8.
func BitSet(sq Sequence, baseOffset, bitIndex int) error {
	byteOff := baseOffset + bitIndex/8
	b, err := GetInt8(sq, byteOff)
	if err != nil {
		return err
	}

	return SetInt8(sq, byteOff, b|int8(1<<uint(bitIndex%8))) //nolint: gosec
}

// BitUnset clears the bit at baseOffset + bitIndex/8, bit position bitIndex%8.
func BitUnset(sq Sequence, baseOffset, bitIndex int) error {
	byteOff := baseOffset + bitIndex/8
	b, err := GetInt8(sq, byteOff)
	if err != nil {
		return err
	}

	return SetInt8(sq, byteOff, b&^int8(1<<uint(bitIndex%8))) //nolint: gosec
}

// Equals reports whether the len-byte windows at (sq1,off1) and (sq2,off2) are
// byte-wise identical. It tries a one-shot compare when both sides lie in
// their first segment, else reads each window out with GetBytes (copying any
// window that straddles segments) and compares the two slices.
func Equals(sq1 Sequence, off1 int, sq2 Sequence, off2 int, length int) (bool, error) {
	if sq1.IsSingleSegment(off1, length) && sq2.IsSingleSegment(off2, length) {
		a := sq1[0].buf[off1 : off1+length]
		b := sq2[0].buf[off2 : off2+length]

		return bytesEqual(a, b), nil
	}

	a, err := GetBytes(sq1, off1, length)
	if err != nil {
		return false, err
	}

	b, err := GetBytes(sq2, off2, length)
	if err != nil {
		return false, err
	}

	return bytesEqual(a, b), nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// Find performs a naive byte-level substring search for (sq2,off2,n2) within
// (sq1,off1,n1), with a fast path when both are single-segment (first-byte
// probe then Equals). It returns the offset within sq1 of the first match, or
// -1 if not found.
func Find(sq1 Sequence, off1, n1 int, sq2 Sequence, off2, n2 int) (int, error) {
	if n2 == 0 {
		return off1, nil
	}
	if n2 > n1 {
		return -1, nil
	}

	if sq1.IsSingleSegment(off1, n1) && sq2.IsSingleSegment(off2, n2) {
		hay := sq1[0].buf[off1 : off1+n1]
		needle := sq2[0].buf[off2 : off2+n2]
		first := needle[0]
		for i := 0; i+n2 <= len(hay); i++ {
			if hay[i] != first {
				continue
			}
			if bytesEqual(hay[i:i+n2], needle) {
				return off1 + i, nil
			}
		}

		return -1, nil
	}

	needle, err := GetBytes(sq2, off2, n2)
	if err != nil {
		return -1, err
	}

	for i := 0; i+n2 <= n1; i++ {
		window, err := GetBytes(sq1, off1+i, n2)
		if err != nil {
			return -1, err
		}
		if bytesEqual(window, needle) {
			return off1 + i, nil
		}
	}

	return -1, nil
}

// HashByWords computes MurmurHash3-x86-32 over a region whose length is a
// multiple of 4 (the word-aligned fast path), materializing multi-segment
// regions into a scratch buffer first.
func HashByWords(sq Sequence, offset, length int) (uint32, error) {
	b, err := GetBytes(sq, offset, length)
	if err != nil {
		return 0, err
	}

	return murmur.SumWords(b, murmur.Seed), nil
}

// Hash computes MurmurHash3-x86-32 over an arbitrary-length region, dispatching
// to the word-aligned fast path when length%4==0.
func Hash(sq Sequence, offset, length int) (uint32, error) {
	if length%4 == 0 {
		return HashByWords(sq, offset, length)
	}

	b, err := GetBytes(sq, offset, length)
	if err != nil {
		return 0, err
	}

	return murmur.Sum32(b, murmur.Seed), nil
}
