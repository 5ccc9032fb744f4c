package session

import (
	"net"
	"sync/atomic"
	"time"

	"github.com/luxfi/sbe/pkg/channel"
)

// Session owns one accepted or connected TCP connection: its outbound
// queue, the reader/writer tasks draining it, and the state a Responder
// needs to enqueue without touching the socket directly.
type Session struct {
	id       ID
	conn     net.Conn
	outbound *channel.SPSC[[]byte]
	notify   chan struct{}
	closed   atomic.Bool
	done     chan struct{}
}

func newSession(id ID, conn net.Conn, outboundCap int) *Session {
	if outboundCap <= 0 || outboundCap&(outboundCap-1) != 0 {
		outboundCap = 1024
	}
	outbound, err := channel.NewSPSC[[]byte](outboundCap)
	if err != nil {
		// outboundCap is normalized to a power of two above; this
		// path is unreachable but kept explicit rather than ignored.
		outbound, _ = channel.NewSPSC[[]byte](1024)
	}
	return &Session{
		id:       id,
		conn:     conn,
		outbound: outbound,
		notify:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// ID returns the session's assigned identifier.
func (s *Session) ID() ID { return s.id }

// Responder returns the sbe.Responder bound to this session's outbound
// queue. It is cheap to copy; multiple callers may hold one.
func (s *Session) Responder() *sessionResponder {
	return &sessionResponder{session: s}
}

// Close marks the session closed and wakes the writer so it can drain and
// exit.
func (s *Session) Close() {
	if s.closed.CompareAndSwap(false, true) {
		s.outbound.Close()
		s.wake()
		s.conn.Close()
	}
}

func (s *Session) wake() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// sessionResponder implements sbe.Responder by enqueueing onto the owning
// session's outbound SPSC channel.
type sessionResponder struct {
	session *Session
}

func (r *sessionResponder) Enqueue(data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	if err := r.session.outbound.Send(cp); err != nil {
		return err
	}
	r.session.wake()
	return nil
}

// writerLoop drains the outbound channel to conn until the session closes.
// It parks on notify between drains rather than spinning, waking on every
// enqueue or at least once per idle tick so a late Close is still observed
// promptly.
func (s *Session) writerLoop() {
	defer close(s.done)
	const idleTick = 200 * time.Millisecond
	for {
		payload, err := s.outbound.Recv()
		switch err {
		case nil:
			if werr := WriteFrame(s.conn, payload); werr != nil {
				s.Close()
				return
			}
			continue
		case channel.ErrClosed:
			return
		}
		select {
		case <-s.notify:
		case <-time.After(idleTick):
		}
	}
}
