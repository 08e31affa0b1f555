// Package murmur implements MurmurHash3-x86-32, used by the row hashing layer
// to stay bit-exact with a reference implementation of the same row/array
// hashing scheme in another language. Unlike internal/hash (xxHash64, used
// for partition-tuple interning keys),
// this algorithm is mandated by the wire-format spec and cannot be swapped for a
// faster or more idiomatic alternative without breaking cross-language hash parity.
package murmur

const (
	c1 uint32 = 0xcc9e2d51
	c2 uint32 = 0x1b873593
)

// Seed is the default seed used for row/array hashing throughout the module.
const Seed uint32 = 42

// Sum32 computes MurmurHash3-x86-32 of data using the given seed.
func Sum32(data []byte, seed uint32) uint32 {
	h := seed
	n := len(data)
	nblocks := n / 4

	for i := 0; i < nblocks; i++ {
		k := leUint32(data[i*4 : i*4+4])
		h = mixBody(h, k)
	}

	var k1 uint32
	tail := data[nblocks*4:]
	switch len(tail) {
	case 3:
		k1 ^= uint32(tail[2]) << 16
		fallthrough
	case 2:
		k1 ^= uint32(tail[1]) << 8
		fallthrough
	case 1:
		k1 ^= uint32(tail[0])
		k1 *= c1
		k1 = rotl32(k1, 15)
		k1 *= c2
		h ^= k1
	}

	h ^= uint32(n) //nolint: gosec
	h = fmix32(h)

	return h
}

// SumWords computes MurmurHash3-x86-32 over data whose length is a multiple of 4,
// the word-aligned fast path. data must have len%4==0;
// callers that cannot guarantee this must use Sum32 instead.
func SumWords(data []byte, seed uint32) uint32 {
	h := seed
	nblocks := len(data) / 4

	for i := 0; i < nblocks; i++ {
		k := leUint32(data[i*4 : i*4+4])
		h = mixBody(h, k)
	}

	h ^= uint32(len(data)) //nolint: gosec
	h = fmix32(h)

	return h
}

func mixBody(h, k uint32) uint32 {
	k *= c1
	k = rotl32(k, 15)
	k *= c2

	h ^= k
	h = rotl32(h, 13)
	h = h*5 + 0xe6546b64

	return h
}

func fmix32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16

	return h
}

func rotl32(x uint32, r uint8) uint32 {
	return (x << r) | (x >> (32 - r))
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
