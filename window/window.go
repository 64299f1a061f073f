package window

import (
	"fmt"
	"strings"
)

const wordBits = 64

// Window is a sliding bitmap over the index range
// [First(), First()+64*words). It is not safe for concurrent use.
type Window struct {
	words []uint64
	first uint64
}

// New returns an empty window tracking words*64 indexes starting at 0.
// words must be at least 1.
func New(words int) *Window {
	if words < 1 {
		panic(fmt.Sprintf("window: need at least one word, got %d", words))
	}
	return &Window{words: make([]uint64, words)}
}

// First returns the lowest index the window still tracks. Indexes below it
// are treated as already seen.
func (w *Window) First() uint64 {
	return w.first
}

// CanInsert reports whether Insert(index) would return true: the index is at
// or above First() and its bit is not set. Indexes beyond the tracked range
// are insertable (the insert will slide the window).
func (w *Window) CanInsert(index uint64) bool {
	if index < w.first {
		return false
	}
	adj := index - w.first
	wordIdx := adj / wordBits
	if wordIdx >= uint64(len(w.words)) {
		return true
	}
	return w.words[wordIdx]&(1<<(adj%wordBits)) == 0
}

// Insert marks index as seen and reports whether it was new. Returns false
// for duplicates and for indexes below First(). An index past the tracked
// range slides the window forward first, dropping the oldest history.
func (w *Window) Insert(index uint64) bool {
	if index < w.first {
		return false
	}
	adj := index - w.first
	wordIdx := adj / wordBits
	if wordIdx >= uint64(len(w.words)) {
		w.slide(wordIdx)
		adj = index - w.first
		wordIdx = adj / wordBits
	}
	mask := uint64(1) << (adj % wordBits)
	word := &w.words[wordIdx]
	fresh := *word&mask == 0
	*word |= mask
	return fresh
}

// slide advances the window so the word holding an out-of-range wordIdx lands
// just past the retained history. Roughly the newer half of the words
// survives; the rest is discarded and their indexes become "seen".
func (w *Window) slide(wordIdx uint64) {
	n := uint64(len(w.words))
	keep := (n + 1) / 2
	if keep >= n {
		keep = n - 1
	}
	// wordIdx >= n > keep, so the shift is at least one word and the
	// incoming index lands at word keep afterwards.
	shift := wordIdx - keep
	if shift < n {
		copy(w.words, w.words[shift:])
		clear(w.words[n-shift:])
	} else {
		clear(w.words)
	}
	w.first += shift * wordBits
}

// String renders the set indexes for diagnostics.
func (w *Window) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Window{first=%d set=[", w.first)
	it := w.Indexes()
	sep := ""
	for idx, ok := it.Next(); ok; idx, ok = it.Next() {
		sb.WriteString(sep)
		fmt.Fprintf(&sb, "%d", idx)
		sep = " "
	}
	sb.WriteString("]}")
	return sb.String()
}
