package slots

// slotRef is the state shared by both guard kinds: the pool, the locked slot,
// and its key. The slot's mutex is held for the whole life of the guard chain
// built over one slotRef; consuming calls (Insert, Take) pass the held lock to
// the next guard without unlocking.
type slotRef[T any] struct {
	pool *Pool[T]
	slot *slot[T]
	key  uint64
}

// release pushes the key back onto the free list and drops the slot lock.
// The push is a compare-and-swap loop: link this slot to the current head,
// then publish this key as the new head only if the head is still the one we
// linked to. A plain store here would drop concurrently pushed keys.
func (ref slotRef[T]) release() {
	p := ref.pool
	for {
		h := p.head.Load()
		ref.slot.next = h
		if p.head.CompareAndSwap(h, ref.key) {
			break
		}
	}
	p.stats.Releases.Add(1)
	ref.slot.mu.Unlock()
}

// Reserved owns a claimed, vacant slot. It must end in exactly one Insert or
// Release call; the methods panic on reuse after that, since a spent guard no
// longer holds the slot's lock and touching the slot through it would corrupt
// the pool.
type Reserved[T any] struct {
	ref   slotRef[T]
	spent bool
}

// Key returns the reserved slot's key.
func (r *Reserved[T]) Key() int {
	return int(r.ref.key)
}

// Insert stores v, marks the slot occupied, and converts the guard. The held
// lock carries over to the returned Occupied guard.
func (r *Reserved[T]) Insert(v T) *Occupied[T] {
	if r.spent {
		panic("slots: Insert on spent Reserved guard")
	}
	r.spent = true
	r.ref.slot.value = v
	r.ref.slot.occupied = true
	return &Occupied[T]{ref: r.ref}
}

// Release returns the key to the free list and unlocks the slot. The key may
// be handed to another goroutine by a later Reserve the moment Release
// returns.
func (r *Reserved[T]) Release() {
	if r.spent {
		panic("slots: Release on spent Reserved guard")
	}
	r.spent = true
	r.ref.release()
}

// Occupied owns a locked slot holding a value. It must end in exactly one
// Take or Release call. Releasing an Occupied guard only drops the lock; the
// value stays in the slot for later Get calls.
type Occupied[T any] struct {
	ref   slotRef[T]
	spent bool
}

// Key returns the occupied slot's key.
func (o *Occupied[T]) Key() int {
	return int(o.ref.key)
}

// Value returns a pointer to the stored value. The pointer is valid only
// while the guard is live; reads and writes through it are serialized by the
// slot lock the guard holds.
func (o *Occupied[T]) Value() *T {
	if o.spent {
		panic("slots: Value on spent Occupied guard")
	}
	return &o.ref.slot.value
}

// Take removes the value and returns it together with a Reserved guard for
// the same key, so the caller can re-populate the slot or release it. The
// held lock carries over to the returned guard.
func (o *Occupied[T]) Take() (T, *Reserved[T]) {
	if o.spent {
		panic("slots: Take on spent Occupied guard")
	}
	o.spent = true
	s := o.ref.slot
	if !s.occupied {
		// The guard held the lock since Get/Insert observed the value, so a
		// vacant slot here is pool corruption, not a caller race.
		panic("slots: Occupied guard over vacant slot")
	}
	v := s.value
	var zero T
	s.value = zero
	s.occupied = false
	return v, &Reserved[T]{ref: o.ref}
}

// Release unlocks the slot, leaving the value in place.
func (o *Occupied[T]) Release() {
	if o.spent {
		panic("slots: Release on spent Occupied guard")
	}
	o.spent = true
	o.ref.slot.mu.Unlock()
}
