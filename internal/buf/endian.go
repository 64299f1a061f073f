// Package buf contains helpers for endian-safe decoding routines.
package buf

import "encoding/binary"

// U64BE reads a big-endian uint64 from b. Returns 0 when b is too short.
func U64BE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// PutU64BE writes a big-endian uint64 into the first 8 bytes of b.
// Panics when b is too short, matching encoding/binary semantics.
func PutU64BE(b []byte, v uint64) {
	binary.BigEndian.PutUint64(b[:8], v)
}
