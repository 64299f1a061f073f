// Package varint implements a prefix-coded variable-length integer format.
//
// Unlike the LEB128-style format in encoding/binary, the total length of a
// value is announced entirely by its first byte: the number of leading one
// bits in byte 0 is the number of bytes that follow. The remaining bits of
// byte 0 and all following bytes hold the value, big-endian.
//
//	0ddddddd                1 byte,  7 value bits
//	10dddddd B              2 bytes, 14 value bits
//	110ddddd B B            3 bytes, 21 value bits
//	...
//	11111110 B*7            8 bytes, 56 value bits
//	11111111 B*8            9 bytes, full 64 value bits
//
// A decoder therefore knows the full length after one byte, with no
// per-byte continuation checks. The widest value costs MaxLen (9) bytes.
//
// Signed integers use the zigzag transform (PutInt, Int), which maps small
// negative magnitudes to small unsigned codes.
package varint
