// Package slots provides a fixed-capacity, concurrency-safe slot pool keyed
// by small integer indices.
//
// # Overview
//
// A Pool owns a fixed array of slots, each guarded by its own mutex, threaded
// together with an intrusive free list. Goroutines race to claim a vacant slot,
// populate it, share its key with other goroutines, and eventually release the
// slot back for reuse. No pool-wide lock exists: operations on different keys
// never contend, and the free-list head is a single atomic word.
//
// # Lifecycle
//
// Each slot moves through a fixed lifecycle:
//
//	vacant (in free list)
//	  → Reserve() → Reserved (claimed, empty)
//	  → Reserved.Insert() → Occupied (holds a value)
//	  → Occupied.Take() → Reserved (value removed, still claimed)
//	  → Reserved.Release() → vacant (back in free list)
//
// Releasing an Occupied guard leaves the value in place; only releasing a
// Reserved guard returns the key to the free list.
//
// # Guards
//
// Reserve and Get hand out guard values (Reserved, Occupied) that hold the
// slot's lock until consumed or released. Go has no deterministic destruction,
// so release is explicit: every guard must end in exactly one of its consuming
// calls (Insert, Take) or Release. Guards are not safe for concurrent use and
// must not be shared between goroutines.
//
// # Keys
//
// Keys are indices in [0, Cap()). A key is an address, not an identity: once
// the holder releases a key it may be reassigned to an unrelated occupant.
// Callers that need stale-key detection must layer a generation counter on
// top of the key.
//
// # Exhaustion
//
// Reserve and Insert report a full pool through their ok result rather than
// blocking. Exhaustion is backpressure, not an error; the retry or rejection
// policy belongs to the caller.
//
// # Thread Safety
//
// Pool methods are safe for concurrent use. Get and Take block only while
// waiting for one slot's lock; Reserve never queues on a slot lock at all,
// retrying against the current free-list head instead. No operation ever
// holds two slot locks at once, so slot locks cannot deadlock against each
// other.
//
// # Usage Example
//
//	pool := slots.New[*Conn](256)
//
//	key, ok := pool.Insert(conn)
//	if !ok {
//	    // pool full, shed load
//	}
//
//	if occ, ok := pool.Get(key); ok {
//	    occ.Value().LastSeen = time.Now()
//	    occ.Release()
//	}
//
//	if conn, ok := pool.Take(key); ok {
//	    conn.Close()
//	}
package slots
