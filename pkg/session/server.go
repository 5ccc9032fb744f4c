package session

import (
	"encoding/binary"
	"net"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/luxfi/sbe/internal/obs"
	"github.com/luxfi/sbe/pkg/sbe"
)

// ServerBuilder assembles a Server's configuration before Build.
type ServerBuilder struct {
	cfg     ServerConfig
	handler Handler
	metrics *Metrics
	log     zerolog.Logger
}

// NewServerBuilder starts from DefaultServerConfig.
func NewServerBuilder() *ServerBuilder {
	return &ServerBuilder{cfg: DefaultServerConfig(), log: obs.New("session.server")}
}

func (b *ServerBuilder) Bind(addr string) *ServerBuilder {
	b.cfg.BindAddr = addr
	return b
}

func (b *ServerBuilder) MaxConnections(n int) *ServerBuilder {
	b.cfg.MaxConnections = n
	return b
}

func (b *ServerBuilder) InboundBufferSize(n int) *ServerBuilder {
	b.cfg.InboundBufferSize = n
	return b
}

func (b *ServerBuilder) OutboundChannelCapacity(n int) *ServerBuilder {
	b.cfg.OutboundChannelCap = n
	return b
}

func (b *ServerBuilder) MaxFrameLen(n uint32) *ServerBuilder {
	b.cfg.MaxFrameLen = n
	return b
}

// ByteOrder sets the byte order used to decode the SBE message header
// prefixing dispatched frames. Defaults to little-endian.
func (b *ServerBuilder) ByteOrder(order binary.ByteOrder) *ServerBuilder {
	b.cfg.ByteOrder = order
	return b
}

func (b *ServerBuilder) Handler(h Handler) *ServerBuilder {
	b.handler = h
	return b
}

func (b *ServerBuilder) Metrics(m *Metrics) *ServerBuilder {
	b.metrics = m
	return b
}

func (b *ServerBuilder) Config(cfg ServerConfig) *ServerBuilder {
	b.cfg = cfg
	return b
}

// Build validates the builder and returns a ready-to-Run Server.
func (b *ServerBuilder) Build() (*Server, error) {
	if b.handler == nil {
		b.handler = HandlerFuncs{}
	}
	if b.metrics == nil {
		b.metrics = NewMetrics("sbe_session")
	}
	return &Server{
		cfg:      b.cfg,
		handler:  b.handler,
		metrics:  b.metrics,
		log:      b.log,
		sessions: make(map[ID]*Session),
	}, nil
}

// Server is the TCP accept loop: one reader and one writer task per
// accepted connection, a monotonic session id counter, and a shared
// shutdown token.
type Server struct {
	cfg      ServerConfig
	handler  Handler
	metrics  *Metrics
	log      zerolog.Logger
	listener net.Listener

	mu       sync.RWMutex
	sessions map[ID]*Session
	nextID   atomic.Uint64

	wg sync.WaitGroup
}

// Run binds the listener and accepts connections until the shutdown token
// is signaled. It blocks until every session has drained or the grace
// period elapsed.
func (s *Server) Run(token *ShutdownToken) error {
	ln, err := net.Listen("tcp", s.cfg.BindAddr)
	if err != nil {
		return &TransportError{Kind: BindFailed, Cause: err}
	}
	s.listener = ln
	s.log.Info().Str("addr", ln.Addr().String()).Msg("session server listening")

	go func() {
		<-token.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if token.IsSignaled() {
				break
			}
			s.log.Error().Err(err).Msg("accept failed")
			continue
		}

		s.mu.RLock()
		active := len(s.sessions)
		s.mu.RUnlock()
		if active >= s.cfg.MaxConnections {
			conn.Close()
			s.log.Warn().Int("active", active).Msg("rejecting connection: too many sessions")
			continue
		}

		s.acceptSession(conn, token)
	}

	token.WaitGrace(&s.wg)
	s.mu.Lock()
	for _, sess := range s.sessions {
		sess.Close()
	}
	s.mu.Unlock()
	return nil
}

func (s *Server) acceptSession(conn net.Conn, token *ShutdownToken) {
	id := ID(s.nextID.Add(1))
	sess := newSession(id, conn, s.cfg.OutboundChannelCap)

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	s.metrics.SessionsStarted.Inc()
	s.metrics.SessionsActive.Inc()

	s.handler.OnSessionStart(id)

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		sess.writerLoop()
	}()
	go func() {
		defer s.wg.Done()
		s.readerLoop(sess, token)
		s.removeSession(id)
	}()
}

func (s *Server) readerLoop(sess *Session, token *ShutdownToken) {
	defer sess.Close()
	dec := NewFrameDecoder(s.cfg.MaxFrameLen)
	buf := make([]byte, s.cfg.InboundBufferSize)
	responder := sess.Responder()

	for {
		if token.IsSignaled() {
			return
		}
		n, err := sess.conn.Read(buf)
		if n > 0 {
			frames, ferr := dec.Push(buf[:n])
			for _, f := range frames {
				s.dispatch(sess, f, responder)
			}
			if ferr != nil {
				s.metrics.FrameErrors.Inc()
				s.log.Error().Err(ferr).Uint64("session", uint64(sess.id)).Msg("frame decode error")
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// dispatch decodes the SBE message header prefixing frame and invokes the
// handler. frame aliases the decoder's internal buffer, so a copy is made
// before handing the payload to application code, which may retain it.
func (s *Server) dispatch(sess *Session, frame []byte, responder *sessionResponder) {
	if len(frame) < sbe.MessageHeaderSize {
		s.metrics.FrameErrors.Inc()
		s.log.Warn().Uint64("session", uint64(sess.id)).Int("len", len(frame)).Msg("frame shorter than message header")
		return
	}
	payload := make([]byte, len(frame))
	copy(payload, frame)

	header := sbe.DecodeMessageHeader(payload, s.cfg.ByteOrder)
	s.metrics.MessagesReceived.Inc()
	s.handler.OnMessage(sess.id, header, payload, responder)
}

func (s *Server) removeSession(id ID) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return
	}
	sess.Close()
	s.metrics.SessionsEnded.Inc()
	s.metrics.SessionsActive.Dec()
	s.handler.OnSessionEnd(id)
}

// ActiveSessions returns the number of currently tracked sessions.
func (s *Server) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
