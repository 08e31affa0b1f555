// Package section implements the binary section: the
// shared {segments, offset, size_in_bytes} triple that is the base of every
// packed record (binary row, binary array): a small, fixed-shape value type
// with plain accessors, generalized to the generic window
// every packed binary record needs.
package section

import "github.com/lakerow/rowbinary/segment"

// Section is a binary section: a window [offset, offset+length) over a shared
// segment sequence. It carries no schema of its own — row and array layer
// structs embed it and interpret the window according to their own layout.
//
// The byte length field is named Length, not Size, so that embedding types
// are free to expose their own Size() method without a field/method name
// collision.
type Section struct {
	Segs   segment.Sequence
	Offset int
	Length int
}

// New wraps segs[offset:offset+length] as a Section.
func New(segs segment.Sequence, offset, length int) Section {
	return Section{Segs: segs, Offset: offset, Length: length}
}

// Equals reports byte-wise equality over the two sections' declared windows
//.
func (s Section) Equals(other Section) (bool, error) {
	if s.Length != other.Length {
		return false, nil
	}

	return segment.Equals(s.Segs, s.Offset, other.Segs, other.Offset, s.Length)
}

// Hash computes MurmurHash3-x86-32 over the section's window.
func (s Section) Hash() (uint32, error) {
	return segment.Hash(s.Segs, s.Offset, s.Length)
}
