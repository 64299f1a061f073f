package slots

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// slot is one storage location. mu is the sole gate for every other field.
// next links the slot into the free list and is meaningful only while the
// slot is vacant and linked (it is stale while the slot is claimed).
type slot[T any] struct {
	mu       sync.Mutex
	occupied bool
	next     uint64
	value    T
}

// Pool is a fixed-capacity slot pool. The zero value is not usable; construct
// with New.
//
// The free list is an intrusive stack threaded through the next fields of
// vacant slots. head names the first vacant key, or Cap() when the pool is
// exhausted. Every head update is a compare-and-swap: a pop must not overwrite
// a key pushed concurrently by a release, or that key leaks out of the list.
type Pool[T any] struct {
	slots []slot[T]
	head  atomic.Uint64

	stats poolStats
}

// poolStats holds internal counters for instrumentation and tests.
type poolStats struct {
	Reserves  atomic.Int64 // successful Reserve calls
	Retries   atomic.Int64 // Reserve attempts that lost a race and restarted
	Exhausted atomic.Int64 // Reserve calls that found the pool full
	Releases  atomic.Int64 // keys pushed back onto the free list
}

// PoolStats is a point-in-time snapshot of pool counters.
type PoolStats struct {
	Reserves  int64
	Retries   int64
	Exhausted int64
	Releases  int64
}

// New builds a pool with capacity slots, all vacant, pre-linked into the free
// list in index order. capacity may be zero; a zero-capacity pool reports
// exhaustion on every Reserve. Negative capacity panics.
func New[T any](capacity int) *Pool[T] {
	if capacity < 0 {
		panic(fmt.Sprintf("slots: negative capacity %d", capacity))
	}
	p := &Pool[T]{slots: make([]slot[T], capacity)}
	for i := range p.slots {
		p.slots[i].next = uint64(i + 1)
	}
	return p
}

// Cap returns the immutable slot count.
func (p *Pool[T]) Cap() int {
	return len(p.slots)
}

// sentinel is the head value meaning "free list ends here".
func (p *Pool[T]) sentinel() uint64 {
	return uint64(len(p.slots))
}

// Reserve claims one vacant slot, returning a guard that owns the slot's
// lock. ok is false when no slot is vacant. Reserve never sleeps on a slot
// lock: it retries against the current head and returns exhaustion only when
// the free list is empty, so a surplus Reserve terminates even while every
// claimed slot's guard stays live.
//
// The pop is lock-then-verify: the head is read without any slot lock, the
// named slot is locked, and the claim counts only if the slot is still vacant
// and the head still names it. Losing either check means another goroutine
// popped the slot or pushed a newer head first, and the attempt restarts with
// a fresh read.
func (p *Pool[T]) Reserve() (*Reserved[T], bool) {
	for {
		k := p.head.Load()
		if k >= p.sentinel() {
			p.stats.Exhausted.Add(1)
			return nil, false
		}
		s := &p.slots[k]
		if s.mu.TryLock() {
			if !s.occupied && p.head.CompareAndSwap(k, s.next) {
				p.stats.Reserves.Add(1)
				return &Reserved[T]{ref: slotRef[T]{pool: p, slot: s, key: k}}, true
			}
			// Either another goroutine completed this pop first (slot now
			// occupied) or a concurrent release pushed a newer head between
			// our read and the swap. Both mean the head has moved: start
			// over.
			s.mu.Unlock()
		}
		// On a failed TryLock the holder is either a racing claim about to
		// move the head or a guard whose claim already moved it. Queueing on
		// the lock could wait on a guard that never releases; re-reading the
		// head cannot.
		p.stats.Retries.Add(1)
		runtime.Gosched()
	}
}

// Get locks the slot at key and returns an Occupied guard for reading or
// mutating the value in place. ok is false when key is out of range or the
// slot is vacant. Get calls on distinct keys never block each other.
func (p *Pool[T]) Get(key int) (*Occupied[T], bool) {
	if key < 0 || key >= len(p.slots) {
		return nil, false
	}
	s := &p.slots[key]
	s.mu.Lock()
	if !s.occupied {
		s.mu.Unlock()
		return nil, false
	}
	return &Occupied[T]{ref: slotRef[T]{pool: p, slot: s, key: uint64(key)}}, true
}

// Take removes and returns the value at key, relinking the slot into the free
// list immediately. ok is false under the same conditions as Get.
func (p *Pool[T]) Take(key int) (T, bool) {
	occ, ok := p.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	v, res := occ.Take()
	res.Release()
	return v, true
}

// Insert reserves a slot, stores v, and returns the assigned key with the
// slot unlocked so other goroutines can Get it. ok is false when the pool is
// full.
func (p *Pool[T]) Insert(v T) (int, bool) {
	res, ok := p.Reserve()
	if !ok {
		return 0, false
	}
	occ := res.Insert(v)
	key := occ.Key()
	occ.Release()
	return key, true
}

// Stats returns a snapshot of internal counters.
func (p *Pool[T]) Stats() PoolStats {
	return PoolStats{
		Reserves:  p.stats.Reserves.Load(),
		Retries:   p.stats.Retries.Load(),
		Exhausted: p.stats.Exhausted.Load(),
		Releases:  p.stats.Releases.Load(),
	}
}
