package session

import (
	"errors"
	"math/rand"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/luxfi/sbe/internal/obs"
	"github.com/luxfi/sbe/pkg/channel"
)

// ClientBuilder assembles a Client's configuration before Connect.
type ClientBuilder struct {
	cfg     ClientConfig
	metrics *Metrics
	log     zerolog.Logger
}

// NewClientBuilder starts from DefaultClientConfig.
func NewClientBuilder() *ClientBuilder {
	return &ClientBuilder{cfg: DefaultClientConfig(), log: obs.New("session.client")}
}

func (b *ClientBuilder) ConnectTo(addr string) *ClientBuilder {
	b.cfg.ConnectAddr = addr
	return b
}

func (b *ClientBuilder) ConnectTimeout(d time.Duration) *ClientBuilder {
	b.cfg.ConnectTimeout = d
	return b
}

func (b *ClientBuilder) MaxReconnectAttempts(n uint32) *ClientBuilder {
	b.cfg.MaxReconnectAttempts = n
	return b
}

func (b *ClientBuilder) Backoff(cfg BackoffConfig) *ClientBuilder {
	b.cfg.Backoff = cfg
	return b
}

func (b *ClientBuilder) Metrics(m *Metrics) *ClientBuilder {
	b.metrics = m
	return b
}

func (b *ClientBuilder) Config(cfg ClientConfig) *ClientBuilder {
	b.cfg = cfg
	return b
}

// Connect builds the Client and starts its connection loop in the
// background, returning a handle the caller polls. The loop keeps
// reconnecting (bounded by MaxReconnectAttempts, or forever if Unbounded)
// until the handle's Disconnect is called.
func (b *ClientBuilder) Connect() (*ClientHandle, error) {
	if b.metrics == nil {
		b.metrics = NewMetrics("sbe_session_client")
	}
	handle, err := newClientHandle(b.cfg.OutboundChannelCap, b.cfg.OutboundChannelCap)
	if err != nil {
		return nil, err
	}
	c := &Client{cfg: b.cfg, metrics: b.metrics, log: b.log, handle: handle}
	go c.run()
	return handle, nil
}

// Client is the background connection loop backing a ClientHandle: it
// dials, frames, and reconnects with exponential backoff, and never blocks
// the application goroutine holding the handle.
type Client struct {
	cfg     ClientConfig
	metrics *Metrics
	log     zerolog.Logger
	handle  *ClientHandle

	rng  *rand.Rand
	rngM sync.Mutex
}

func (c *Client) run() {
	c.rng = rand.New(rand.NewSource(1))
	var attempt int
	for {
		if c.handle.token.IsSignaled() {
			return
		}
		attempt++
		conn, err := net.DialTimeout("tcp", c.cfg.ConnectAddr, c.cfg.ConnectTimeout)
		if err != nil {
			c.metrics.ConnectFailures.Inc()
			kind := ConnectFailed
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				kind = ConnectTimeout
			}
			c.handle.pushEvent(ClientEvent{Kind: EventError, Err: kind})
			if c.cfg.MaxReconnectAttempts != Unbounded && uint32(attempt) >= c.cfg.MaxReconnectAttempts {
				c.log.Error().Str("addr", c.cfg.ConnectAddr).Int("attempts", attempt).Msg("giving up reconnecting")
				return
			}
			c.metrics.ReconnectAttempts.Inc()
			delay := NextBackoffDelay(c.cfg.Backoff, attempt, c.rng)
			c.log.Warn().Err(err).Dur("retry_in", delay).Msg("connect failed")
			select {
			case <-c.handle.token.Done():
				return
			case <-time.After(delay):
			}
			continue
		}

		attempt = 0
		c.handle.pushEvent(ClientEvent{Kind: EventConnected})
		c.serve(conn)
		c.handle.pushEvent(ClientEvent{Kind: EventDisconnected})

		if c.handle.token.IsSignaled() || c.cfg.MaxReconnectAttempts == 0 {
			return
		}
	}
}

// serve drives one connected session's reader and writer loops until
// either fails or the handle is disconnected, then returns.
func (c *Client) serve(conn net.Conn) {
	var wg sync.WaitGroup
	stop := make(chan struct{})
	var once sync.Once
	closeOnce := func() { once.Do(func() { close(stop); conn.Close() }) }
	defer closeOnce()

	wg.Add(1)
	go func() {
		defer wg.Done()
		c.writeLoop(conn, stop, closeOnce)
	}()

	go func() {
		<-c.handle.token.Done()
		closeOnce()
	}()

	c.readLoop(conn, closeOnce)
	closeOnce()
	wg.Wait()
}

func (c *Client) readLoop(conn net.Conn, closeOnce func()) {
	dec := NewFrameDecoder(c.cfg.MaxFrameLen)
	buf := make([]byte, 64*1024)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			frames, ferr := dec.Push(buf[:n])
			for _, f := range frames {
				cp := make([]byte, len(f))
				copy(cp, f)
				c.metrics.MessagesReceived.Inc()
				c.handle.pushEvent(ClientEvent{Kind: EventMessage, Message: cp})
			}
			if ferr != nil {
				c.handle.pushEvent(ClientEvent{Kind: EventError, Err: FrameTooLarge})
				closeOnce()
				return
			}
		}
		if err != nil {
			closeOnce()
			return
		}
	}
}

func (c *Client) writeLoop(conn net.Conn, stop <-chan struct{}, closeOnce func()) {
	const idleTick = 200 * time.Millisecond
	for {
		select {
		case <-stop:
			return
		default:
		}
		payload, err := c.handle.outbound.Recv()
		switch err {
		case nil:
			if werr := WriteFrame(conn, payload); werr != nil {
				c.handle.pushEvent(ClientEvent{Kind: EventError, Err: Io})
				closeOnce()
				return
			}
			c.metrics.MessagesSent.Inc()
			continue
		case channel.ErrClosed:
			return
		}
		select {
		case <-stop:
			return
		case <-time.After(idleTick):
		}
	}
}
