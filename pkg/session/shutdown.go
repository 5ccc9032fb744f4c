package session

import (
	"sync"
	"time"
)

// ShutdownToken signals every task owned by a Server or Client to stop,
// then gives them a grace period to drain outbound queues before the
// engine drops whatever sessions remain.
type ShutdownToken struct {
	ch    chan struct{}
	once  sync.Once
	grace time.Duration
}

// NewShutdownToken creates a token with the given grace period.
func NewShutdownToken(grace time.Duration) *ShutdownToken {
	return &ShutdownToken{ch: make(chan struct{}), grace: grace}
}

// Done returns a channel closed once Signal has been called.
func (t *ShutdownToken) Done() <-chan struct{} { return t.ch }

// Signal requests shutdown; idempotent.
func (t *ShutdownToken) Signal() {
	t.once.Do(func() { close(t.ch) })
}

// IsSignaled reports whether Signal has been called.
func (t *ShutdownToken) IsSignaled() bool {
	select {
	case <-t.ch:
		return true
	default:
		return false
	}
}

// WaitGrace blocks until wg is done or the grace period elapses, whichever
// comes first, and reports which happened.
func (t *ShutdownToken) WaitGrace(wg *sync.WaitGroup) (drained bool) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(t.grace):
		return false
	}
}
