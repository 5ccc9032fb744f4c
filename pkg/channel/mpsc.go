package channel

import (
	"fmt"
	"sync/atomic"

	"github.com/luxfi/sbe/internal/obs/metric"
)

// MPSC is a bounded multi-producer single-consumer ring buffer. Producers
// contend for a slot via CAS on the reservation counter; ordering between
// producers is determined by CAS success order, not call order. The
// consumer advances past contiguous ready flags, so a producer that wins
// the CAS for a later slot but finishes writing first cannot be observed
// out of turn.
type MPSC[T any] struct {
	buf      []T
	ready    []atomic.Uint32
	mask     uint64
	capacity uint64
	reserve  cacheLinePadded
	consumer cacheLinePadded
	closed   atomic.Bool
	metrics  *metric.Registry
}

// WithMetrics attaches a metric.Registry that Send/Recv/Close bump
// allocation-free counters on.
func (m *MPSC[T]) WithMetrics(r *metric.Registry) *MPSC[T] {
	m.metrics = r
	return m
}

func (m *MPSC[T]) bump(name string) {
	if m.metrics != nil {
		m.metrics.Counter(name).Inc(1)
	}
}

// NewMPSC allocates an MPSC channel of the given power-of-two capacity.
func NewMPSC[T any](capacity int) (*MPSC[T], error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, fmt.Errorf("channel: capacity %d is not a power of two", capacity)
	}
	return &MPSC[T]{
		buf:      make([]T, capacity),
		ready:    make([]atomic.Uint32, capacity),
		mask:     uint64(capacity - 1),
		capacity: uint64(capacity),
	}, nil
}

// Send reserves a slot via CAS and publishes v into it. Returns ErrFull if
// every slot is currently occupied, ErrClosed if Close has been called.
func (m *MPSC[T]) Send(v T) error {
	if m.closed.Load() {
		return ErrClosed
	}
	for {
		p := m.reserve.v.Load()
		c := m.consumer.v.Load()
		if p-c >= m.capacity {
			m.bump(CounterFull)
			return ErrFull
		}
		if m.reserve.v.CompareAndSwap(p, p+1) {
			idx := p & m.mask
			m.buf[idx] = v
			m.ready[idx].Store(1)
			m.bump(CounterSent)
			return nil
		}
	}
}

// Recv returns the next element in reservation order. Returns ErrEmpty if
// the slot the consumer is waiting on has not been published yet — either
// because nothing has arrived, or because a producer reserved a later slot
// and is still writing its payload.
func (m *MPSC[T]) Recv() (T, error) {
	var zero T
	c := m.consumer.v.Load()
	idx := c & m.mask
	if m.ready[idx].Load() == 0 {
		if m.closed.Load() && c == m.reserve.v.Load() {
			return zero, ErrClosed
		}
		return zero, ErrEmpty
	}
	v := m.buf[idx]
	m.ready[idx].Store(0)
	m.consumer.v.Store(c + 1)
	m.bump(CounterRecv)
	return v, nil
}

// RecvSpin busy-waits for the next element.
func (m *MPSC[T]) RecvSpin() (T, error) {
	for {
		v, err := m.Recv()
		if err == nil || err == ErrClosed {
			return v, err
		}
	}
}

// Close marks the channel closed. Buffered elements remain receivable.
func (m *MPSC[T]) Close() {
	m.closed.Store(true)
	m.bump(CounterClosed)
}
