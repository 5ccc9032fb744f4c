package channel

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/luxfi/sbe/internal/obs/metric"
)

// Broadcast is a single ring buffer with one producer cursor and N
// independent subscriber cursors. Each subscriber sees every published
// message at most once. A lossless subscriber makes Publish report
// ErrFull rather than let that subscriber fall behind by more than the
// ring's capacity; a lossy subscriber is instead allowed to lag, and
// Publish simply overwrites slots it hasn't read yet — those get counted
// in its Dropped total the next time it calls Recv.
type Broadcast[T any] struct {
	buf      []T
	mask     uint64
	capacity uint64
	producer cacheLinePadded

	mu   sync.RWMutex
	subs []*subscriber

	metrics *metric.Registry
}

// WithMetrics attaches a metric.Registry that Publish/Recv bump
// allocation-free counters on.
func (b *Broadcast[T]) WithMetrics(r *metric.Registry) *Broadcast[T] {
	b.metrics = r
	return b
}

func (b *Broadcast[T]) bump(name string) {
	if b.metrics != nil {
		b.metrics.Counter(name).Inc(1)
	}
}

type subscriber struct {
	cursor  cacheLinePadded
	dropped atomic.Uint64
	lossy   bool
}

// Subscription is a subscriber's handle onto a Broadcast channel.
type Subscription[T any] struct {
	bc  *Broadcast[T]
	sub *subscriber
}

// NewBroadcast allocates a broadcast channel of the given power-of-two
// capacity.
func NewBroadcast[T any](capacity int) (*Broadcast[T], error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, fmt.Errorf("channel: capacity %d is not a power of two", capacity)
	}
	return &Broadcast[T]{
		buf:      make([]T, capacity),
		mask:     uint64(capacity - 1),
		capacity: uint64(capacity),
	}, nil
}

// Subscribe registers a new subscriber starting at the current publish
// position — it sees only messages published after this call. lossy
// selects the subscriber's overflow behavior.
func (b *Broadcast[T]) Subscribe(lossy bool) *Subscription[T] {
	sub := &subscriber{lossy: lossy}
	sub.cursor.v.Store(b.producer.v.Load())

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	return &Subscription[T]{bc: b, sub: sub}
}

// Unsubscribe removes s from the broadcast's subscriber list. After this
// call s can no longer be made to block a lossless Publish.
func (b *Broadcast[T]) Unsubscribe(s *Subscription[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subs {
		if sub == s.sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish writes v to the ring. Returns ErrFull if any lossless subscriber
// has not yet consumed enough of the ring to make room for v.
func (b *Broadcast[T]) Publish(v T) error {
	p := b.producer.v.Load()

	b.mu.RLock()
	for _, sub := range b.subs {
		if sub.lossy {
			continue
		}
		if p-sub.cursor.v.Load() >= b.capacity {
			b.mu.RUnlock()
			b.bump(CounterFull)
			return ErrFull
		}
	}
	b.mu.RUnlock()

	b.buf[p&b.mask] = v
	b.producer.v.Store(p + 1)
	b.bump(CounterSent)
	return nil
}

// Recv returns the next message for this subscription, skipping forward
// (and counting as dropped) any messages the producer overwrote before
// this lossy subscriber could read them.
func (s *Subscription[T]) Recv() (T, error) {
	var zero T
	c := s.sub.cursor.v.Load()
	p := s.bc.producer.v.Load()
	if c == p {
		return zero, ErrEmpty
	}
	if s.sub.lossy && p-c > s.bc.capacity {
		skipped := p - c - s.bc.capacity
		s.sub.dropped.Add(skipped)
		c = p - s.bc.capacity
		s.bc.bump(CounterDropped)
	}
	v := s.bc.buf[c&s.bc.mask]
	s.sub.cursor.v.Store(c + 1)
	s.bc.bump(CounterRecv)
	return v, nil
}

// RecvSpin busy-waits for the next message.
func (s *Subscription[T]) RecvSpin() T {
	for {
		v, err := s.Recv()
		if err == nil {
			return v
		}
	}
}

// Dropped returns the number of messages this subscription has lost to
// producer overwrite. Always zero for a lossless subscription.
func (s *Subscription[T]) Dropped() uint64 {
	return s.sub.dropped.Load()
}
