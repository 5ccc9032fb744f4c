package channel

import (
	"fmt"
	"sync/atomic"

	"github.com/luxfi/sbe/internal/obs/metric"
)

// cacheLinePadded wraps a single atomic counter in its own cache line so
// the producer's and consumer's indices never collide on the same line —
// skipping this padding still works, it just collapses to cache-ping-pong
// under contention.
type cacheLinePadded struct {
	v   atomic.Uint64
	_   [56]byte // pads the 8-byte atomic.Uint64 out to 64 bytes
}

// SPSC is a bounded single-producer single-consumer ring buffer. Send and
// Recv are wait-free: no locks, no CAS, just an atomic load/store pair per
// call.
type SPSC[T any] struct {
	buf      []T
	mask     uint64
	capacity uint64
	producer cacheLinePadded
	consumer cacheLinePadded
	closed   atomic.Bool
	metrics  *metric.Registry
}

// WithMetrics attaches a metric.Registry that Send/Recv/Close bump
// allocation-free counters on. Optional; a channel with no registry
// attached skips the bookkeeping entirely.
func (s *SPSC[T]) WithMetrics(r *metric.Registry) *SPSC[T] {
	s.metrics = r
	return s
}

// NewSPSC allocates an SPSC channel of the given capacity, which must be a
// power of two so index masking can replace modulo on the hot path.
func NewSPSC[T any](capacity int) (*SPSC[T], error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, fmt.Errorf("channel: capacity %d is not a power of two", capacity)
	}
	return &SPSC[T]{
		buf:      make([]T, capacity),
		mask:     uint64(capacity - 1),
		capacity: uint64(capacity),
	}, nil
}

// Send stores v for the consumer. Returns ErrFull if the ring is at
// capacity, ErrClosed if Close has already been called.
func (s *SPSC[T]) Send(v T) error {
	if s.closed.Load() {
		return ErrClosed
	}
	p := s.producer.v.Load()
	c := s.consumer.v.Load() // acquire: observe consumer's progress
	if p-c == s.capacity {
		s.bump(CounterFull)
		return ErrFull
	}
	s.buf[p&s.mask] = v
	s.producer.v.Store(p + 1) // release: publish the element
	s.bump(CounterSent)
	return nil
}

// Recv returns the next element without blocking. Returns ErrEmpty if the
// producer has not published anything new, ErrClosed once the channel is
// closed and fully drained.
func (s *SPSC[T]) Recv() (T, error) {
	var zero T
	c := s.consumer.v.Load()
	p := s.producer.v.Load() // acquire: observe producer's progress
	if c == p {
		if s.closed.Load() {
			return zero, ErrClosed
		}
		return zero, ErrEmpty
	}
	v := s.buf[c&s.mask]
	s.consumer.v.Store(c + 1) // release: free the slot
	s.bump(CounterRecv)
	return v, nil
}

func (s *SPSC[T]) bump(name string) {
	if s.metrics != nil {
		s.metrics.Counter(name).Inc(1)
	}
}

// RecvSpin busy-waits for the next element, for latency-critical consumers
// that would rather burn a core than park. Returns ErrClosed once the
// channel is closed and drained.
func (s *SPSC[T]) RecvSpin() (T, error) {
	for {
		v, err := s.Recv()
		if err == nil || err == ErrClosed {
			return v, err
		}
	}
}

// Len returns the number of buffered, unread elements.
func (s *SPSC[T]) Len() int {
	return int(s.producer.v.Load() - s.consumer.v.Load())
}

// Close marks the channel closed. Already-buffered elements remain
// receivable; Recv reports ErrClosed only once they are drained.
func (s *SPSC[T]) Close() {
	s.closed.Store(true)
	s.bump(CounterClosed)
}
