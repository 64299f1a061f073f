package varint

import (
	"math/bits"

	"github.com/joshuapare/slotkit/internal/buf"
)

// MaxLen is the maximum number of bytes one encoded value occupies.
const MaxLen = 9

// Len returns the total encoded length announced by a value's first byte.
// Always in [1, MaxLen].
func Len(first byte) int {
	return bits.LeadingZeros8(^first) + 1
}

// EncodedLen returns the number of bytes Put would use for v.
func EncodedLen(v uint64) int {
	bitlen := 64 - bits.LeadingZeros64(v)
	n := (bitlen + 6) / 7
	switch {
	case n <= 1:
		return 1
	case n >= MaxLen:
		return MaxLen
	default:
		return n
	}
}

// Put encodes v into b and returns the number of bytes written. Panics when
// b is shorter than EncodedLen(v), matching binary.PutUvarint.
func Put(b []byte, v uint64) int {
	n := EncodedLen(v)
	if len(b) < n {
		panic("varint: buffer too small")
	}
	switch {
	case n == 1:
		b[0] = byte(v)
	case n < MaxLen:
		// The length prefix occupies the top n-1 bits of byte 0 plus a zero
		// terminator bit; the value's top bits share the remainder of byte 0.
		prefix := byte(uint16(0xFF) << (MaxLen - n))
		msbMask := byte(0xFF >> n)
		var tmp [8]byte
		buf.PutU64BE(tmp[:], v)
		copy(b[:n], tmp[8-n:])
		b[0] = b[0]&msbMask | prefix
	default:
		b[0] = 0xFF
		buf.PutU64BE(b[1:], v)
	}
	return n
}

// Append encodes v and appends it to dst, returning the extended slice.
func Append(dst []byte, v uint64) []byte {
	var tmp [MaxLen]byte
	n := Put(tmp[:], v)
	return append(dst, tmp[:n]...)
}

// Uint decodes a value from the start of b, returning the value and the
// number of bytes consumed. n is 0 when b is empty or shorter than the
// length its first byte announces.
func Uint(b []byte) (v uint64, n int) {
	if len(b) == 0 {
		return 0, 0
	}
	n = Len(b[0])
	if len(b) < n {
		return 0, 0
	}
	return decode(b[:n]), n
}

// decode reads one value from exactly len(b) in [1, MaxLen] bytes.
func decode(b []byte) uint64 {
	n := len(b)
	if n == MaxLen {
		// First byte is 0xFF: its value bits mask to nothing, the rest is a
		// plain big-endian uint64.
		return buf.U64BE(b[1:])
	}
	var tmp [8]byte
	copy(tmp[8-n:], b)
	tmp[8-n] &= byte(0xFF >> n)
	return buf.U64BE(tmp[:])
}
