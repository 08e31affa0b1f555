// Package section implements the binary section:
// the {segments, offset, size_in_bytes} triple that is the base of every
// packed record in the row/array binary layer.
//
// A Section carries no schema of its own. The row and array
// packages embed it and interpret its byte window according to their own
// fixed-part / variable-tail layout. Equality is byte-wise over the
// declared window; Hash computes MurmurHash3-x86-32 over the same window,
// via internal/murmur, for use as a cache or collision-detection key.
package section
