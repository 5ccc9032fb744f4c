// Package channel implements bounded, wait-free-on-the-uncontended-path
// ring-buffer channels: SPSC, MPSC, and a fan-out Broadcast, the transport
// primitive generated SBE decoders hand messages to on their way to
// application handlers.
package channel

import "errors"

// ErrFull is returned by Send when the ring has no free slot. Overflow
// never blocks; callers decide whether to retry, drop, or escalate.
var ErrFull = errors.New("channel: full")

// ErrClosed is returned by Send/Recv once Close has been called and,
// for Recv, once every buffered element has been drained.
var ErrClosed = errors.New("channel: closed")

// ErrEmpty is returned by the non-blocking Recv when no element is ready.
var ErrEmpty = errors.New("channel: empty")
