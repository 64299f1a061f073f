package varint

// Zigzag maps a signed integer to an unsigned one so that values of small
// magnitude, positive or negative, encode in few bytes:
// 0, -1, 1, -2, 2, ... map to 0, 1, 2, 3, 4, ...
func Zigzag(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// Unzigzag inverts Zigzag.
func Unzigzag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// EncodedLenInt returns the number of bytes PutInt would use for v.
func EncodedLenInt(v int64) int {
	return EncodedLen(Zigzag(v))
}

// PutInt encodes v into b with the zigzag transform and returns the number
// of bytes written. Panics when b is too short.
func PutInt(b []byte, v int64) int {
	return Put(b, Zigzag(v))
}

// AppendInt zigzag-encodes v and appends it to dst.
func AppendInt(dst []byte, v int64) []byte {
	return Append(dst, Zigzag(v))
}

// Int decodes a zigzag-encoded value from the start of b. n is 0 under the
// same conditions as Uint.
func Int(b []byte) (v int64, n int) {
	u, n := Uint(b)
	if n == 0 {
		return 0, 0
	}
	return Unzigzag(u), n
}
