package window

import "math/bits"

// IndexIterator walks the set indexes of a Window in ascending order. The
// window must not be modified during iteration.
type IndexIterator struct {
	w   *Window
	idx uint64
}

// Indexes returns an iterator positioned at the start of the tracked range.
func (w *Window) Indexes() *IndexIterator {
	return &IndexIterator{w: w, idx: w.first}
}

// Next returns the next set index, or ok = false when the tracked range is
// exhausted.
func (it *IndexIterator) Next() (uint64, bool) {
	w := it.w
	if it.idx < w.first {
		it.idx = w.first
	}
	adj := it.idx - w.first
	for {
		wordIdx := adj / wordBits
		if wordIdx >= uint64(len(w.words)) {
			return 0, false
		}
		rest := w.words[wordIdx] >> (adj % wordBits)
		if rest == 0 {
			adj = (wordIdx + 1) * wordBits
			continue
		}
		adj += uint64(bits.TrailingZeros64(rest))
		idx := w.first + adj
		it.idx = idx + 1
		return idx, true
	}
}
