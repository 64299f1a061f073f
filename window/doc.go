// Package window provides a fixed-size sliding bitmap for duplicate
// detection over a stream of mostly-increasing integer indexes.
//
// A Window tracks one bit per index across a contiguous range starting at
// First(). Insert reports whether an index is new; indexes past the tracked
// range slide the window forward, discarding the oldest history. Indexes that
// fall below First() after a slide are reported as duplicates even if they
// were never seen, which is the safe answer for a dedup filter over a
// best-effort stream.
package window
