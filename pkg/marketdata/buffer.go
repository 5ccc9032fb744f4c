package marketdata

import "time"

type pendingEntry struct {
	occupied bool
	sequence uint64
	payload  []byte
	arrived  time.Time
}

// reorderBuffer holds out-of-order envelopes awaiting their turn, indexed
// by sequence modulo its capacity. A slot collision — a new sequence
// mapping to a slot already holding a different, undelivered sequence —
// evicts the occupant and reports it as a ReorderOverflow, which is the
// buffer's way of bounding memory under a feed that has fallen far behind.
type reorderBuffer struct {
	slots []pendingEntry
	r     uint64
}

func newReorderBuffer(capacity int) *reorderBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &reorderBuffer{
		slots: make([]pendingEntry, capacity),
		r:     uint64(capacity),
	}
}

func (b *reorderBuffer) index(seq uint64) uint64 { return seq % b.r }

// Contains reports whether seq is currently buffered (not yet delivered).
func (b *reorderBuffer) Contains(seq uint64) bool {
	e := &b.slots[b.index(seq)]
	return e.occupied && e.sequence == seq
}

// Put buffers seq/payload, returning the sequence it evicted if the slot
// was already occupied by a different pending entry.
func (b *reorderBuffer) Put(seq uint64, payload []byte, now time.Time) (evicted uint64, didEvict bool) {
	e := &b.slots[b.index(seq)]
	if e.occupied && e.sequence != seq {
		evicted, didEvict = e.sequence, true
	}
	e.occupied = true
	e.sequence = seq
	e.payload = payload
	e.arrived = now
	return
}

// Take removes and returns seq's payload if buffered.
func (b *reorderBuffer) Take(seq uint64) ([]byte, bool) {
	e := &b.slots[b.index(seq)]
	if !e.occupied || e.sequence != seq {
		return nil, false
	}
	payload := e.payload
	*e = pendingEntry{}
	return payload, true
}

// LowestPending returns the smallest buffered sequence greater than after,
// and whether one exists.
func (b *reorderBuffer) LowestPending(after uint64) (uint64, bool) {
	var found uint64
	ok := false
	for _, e := range b.slots {
		if !e.occupied || e.sequence <= after {
			continue
		}
		if !ok || e.sequence < found {
			found, ok = e.sequence, true
		}
	}
	return found, ok
}
