package row

import "math/big"

// compactPayloadMaxLen is the largest binary payload that fits inline in a
// slot alongside its 1-byte mark.
const compactPayloadMaxLen = 7

// encodeCompactSlot packs a <=7-byte payload directly into an 8-byte slot,
// with the mark byte (0x80 | len) at markByteIndex and the payload bytes
// starting at payloadStartIdx, growing away from the mark byte.
func encodeCompactSlot(payload []byte) [8]byte {
	var slot [8]byte
	slot[markByteIndex] = 0x80 | byte(len(payload)) //nolint: gosec
	copy(slot[payloadStartIdx:], payload)

	return slot
}

// encodeOffsetLengthSlot packs a non-compact slot as [mark=0 | 31-bit offset |
// 32-bit length], mark occupying the slot's top bit.
func encodeOffsetLengthSlot(offset, length int) int64 {
	uv := ((uint64(offset) & 0x7FFFFFFF) << 32) | (uint64(length) & 0xFFFFFFFF) //nolint: gosec

	return int64(uv) //nolint: gosec
}

// encodeTimestampExpandedSlot packs the expanded-timestamp slot as [mark=0 |
// 31-bit tail offset | 32-bit nanoOfMillis], reusing the offset+length slot
// layout with nanoOfMillis riding in the length half.
func encodeTimestampExpandedSlot(tailOffset int, nanoOfMillis int32) int64 {
	return encodeOffsetLengthSlot(tailOffset, int(nanoOfMillis))
}

// bigIntFromTwosComplementBE decodes raw as a big-endian two's-complement
// integer, matching java.math.BigInteger(byte[]) semantics: an
// empty slice decodes to zero, and a set top bit in the first byte indicates
// a negative value.
func bigIntFromTwosComplementBE(raw []byte) *big.Int {
	if len(raw) == 0 {
		return big.NewInt(0)
	}

	v := new(big.Int).SetBytes(raw)
	if raw[0]&0x80 == 0 {
		return v
	}

	// Negative: v currently holds the unsigned magnitude of the two's-complement
	// bit pattern. Subtract 2^(8*len(raw)) to recover the signed value.
	mod := new(big.Int).Lsh(big.NewInt(1), uint(len(raw))*8) //nolint: gosec

	return v.Sub(v, mod)
}

// minimalTwosComplementWidth returns the fewest bytes that can hold v in
// big-endian two's-complement form: the smallest n such that
// -2^(8n-1) <= v <= 2^(8n-1)-1, with zero taking a single byte. This mirrors
// java.math.BigInteger.toByteArray()'s minimal-length sizing.
func minimalTwosComplementWidth(v *big.Int) int {
	if v.Sign() == 0 {
		return 1
	}

	for n := 1; ; n++ {
		bits := uint(8*n - 1)
		hi := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bits), big.NewInt(1))
		lo := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), bits))
		if v.Cmp(lo) >= 0 && v.Cmp(hi) <= 0 {
			return n
		}
	}
}

// bigIntToTwosComplementBE encodes v as the minimal-length big-endian
// two's-complement byte slice that round-trips losslessly, matching
// java.math.BigInteger.toByteArray() semantics: a lone zero byte for zero,
// and a leading sign byte only when needed to disambiguate the top bit.
func bigIntToTwosComplementBE(v *big.Int) []byte {
	width := minimalTwosComplementWidth(v)
	out := make([]byte, width)

	if v.Sign() >= 0 {
		b := v.Bytes()
		copy(out[width-len(b):], b)

		return out
	}

	mod := new(big.Int).Lsh(big.NewInt(1), uint(width)*8) //nolint: gosec
	twos := new(big.Int).Add(v, mod)
	b := twos.Bytes()
	// Fill leading bytes with 0xFF, matching sign extension of a negative
	// two's-complement value.
	for i := range out {
		out[i] = 0xFF
	}
	copy(out[width-len(b):], b)

	return out
}
