// Package segment implements the memory-segment and segment-sequence
// utilities: word-addressable windows over owned byte buffers, with
// cross-segment copy, equality, hashing, and bit get/set that transparently
// straddle segment boundaries.
//
// A Segment is a fixed-size byte window, cheaply cloneable by sharing the
// underlying buffer (Go slices already give us that for free: a Segment value
// is just a slice header). A Sequence is an ordered list of segments where every
// segment but possibly the last shares one common "page size" — the divisor used
// for segment/offset arithmetic.
package segment

// Segment is an owned, fixed-size byte window.
type Segment struct {
	buf []byte
}

// New allocates a zero-filled Segment of the given size.
func New(size int) Segment {
	return Segment{buf: make([]byte, size)}
}

// Wrap creates a Segment that shares b's backing array without copying.
func Wrap(b []byte) Segment {
	return Segment{buf: b}
}

// Bytes returns the segment's backing byte slice. Callers must not retain it
// past a subsequent grow of the owning writer.
func (s Segment) Bytes() []byte { return s.buf }

// Len returns the segment's byte size.
func (s Segment) Len() int { return len(s.buf) }

// Clone returns a Segment with a private copy of the backing bytes.
func (s Segment) Clone() Segment {
	out := make([]byte, len(s.buf))
	copy(out, s.buf)

	return Segment{buf: out}
}

// Sequence is an ordered list of segments. For any well-formed record,
// offset+size <= Sequence.TotalSize(). All segments but possibly the last share
// the same size (PageSize); the first segment's size is the divisor used for
// segment/offset arithmetic.
type Sequence []Segment

// Single returns a single-segment Sequence wrapping one Segment.
func Single(s Segment) Sequence { return Sequence{s} }

// PageSize returns the page size used for segment/offset arithmetic: the size
// of the first segment, or 0 for an empty sequence.
func (sq Sequence) PageSize() int {
	if len(sq) == 0 {
		return 0
	}

	return sq[0].Len()
}

// TotalSize returns the sum of all segment sizes.
func (sq Sequence) TotalSize() int {
	total := 0
	for _, s := range sq {
		total += s.Len()
	}

	return total
}

// IsSingleSegment reports whether the window [offset, offset+size) lies
// entirely within the first segment — the fast path most routines special-case.
func (sq Sequence) IsSingleSegment(offset, size int) bool {
	return len(sq) > 0 && offset >= 0 && offset+size <= sq[0].Len()
}

// locate resolves a global offset to a (segment index, offset within that
// segment) pair using the page size derived from the first segment.
func (sq Sequence) locate(offset int) (segIdx, segOff int) {
	pageSize := sq.PageSize()
	if pageSize == 0 {
		return 0, offset
	}

	segIdx = offset / pageSize
	segOff = offset - segIdx*pageSize

	return segIdx, segOff
}
