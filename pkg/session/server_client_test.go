package session

import (
	"encoding/binary"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/sbe/pkg/sbe"
)

func TestServer_EndToEndSingleMessage(t *testing.T) {
	var mu sync.Mutex
	var received []sbe.MessageHeader

	srv, err := NewServerBuilder().
		Bind("127.0.0.1:0").
		Handler(HandlerFuncs{
			Message: func(id ID, header sbe.MessageHeader, payload []byte, responder sbe.Responder) {
				mu.Lock()
				received = append(received, header)
				mu.Unlock()
			},
		}).
		Build()
	require.NoError(t, err)

	token := NewShutdownToken(100 * time.Millisecond)
	ready := make(chan string, 1)
	go func() {
		ln, lerr := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, lerr)
		addr := ln.Addr().String()
		ln.Close()
		srv.cfg.BindAddr = addr
		ready <- addr
		_ = srv.Run(token)
	}()
	addr := <-ready
	// give the accept loop a moment to bind.
	var conn net.Conn
	for i := 0; i < 50; i++ {
		conn, err = net.Dial("tcp", addr)
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.NoError(t, err)
	defer conn.Close()

	payload := make([]byte, 56)
	binary.LittleEndian.PutUint16(payload[0:2], 48)
	binary.LittleEndian.PutUint16(payload[2:4], 1)
	binary.LittleEndian.PutUint16(payload[4:6], 1)
	binary.LittleEndian.PutUint16(payload[6:8], 0)

	require.NoError(t, WriteFrame(conn, payload))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	require.Equal(t, uint16(1), received[0].TemplateID)
	require.Equal(t, uint16(48), received[0].BlockLength)
	mu.Unlock()

	token.Signal()
}

func TestClient_ReconnectAttemptsAreBoundedAgainstClosedPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close() // nothing listens on addr from here on.

	handle, err := NewClientBuilder().
		ConnectTo(addr).
		ConnectTimeout(200 * time.Millisecond).
		MaxReconnectAttempts(3).
		Backoff(BackoffConfig{InitialDelay: 5 * time.Millisecond, Multiplier: 1.0, MaxDelay: 10 * time.Millisecond}).
		Connect()
	require.NoError(t, err)

	var errs int
	require.Eventually(t, func() bool {
		for {
			ev, ok := handle.Poll()
			if !ok {
				break
			}
			if ev.Kind == EventError && ev.Err == ConnectFailed {
				errs++
			}
		}
		return errs >= 3
	}, 2*time.Second, 10*time.Millisecond)

	require.GreaterOrEqual(t, errs, 3)

	// The client gives up after its third attempt, so no further failures
	// arrive even though the backoff would allow several more by now.
	time.Sleep(100 * time.Millisecond)
	for {
		ev, ok := handle.Poll()
		if !ok {
			break
		}
		if ev.Kind == EventError && ev.Err == ConnectFailed {
			errs++
		}
	}
	require.Equal(t, 3, errs)
}

func TestClient_ConnectsAndExchangesMessage(t *testing.T) {
	srv, err := NewServerBuilder().
		Bind("127.0.0.1:0").
		Handler(HandlerFuncs{
			Message: func(id ID, header sbe.MessageHeader, payload []byte, responder sbe.Responder) {
				require.NoError(t, responder.Enqueue(payload))
			},
		}).
		Build()
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()
	srv.cfg.BindAddr = addr

	token := NewShutdownToken(200 * time.Millisecond)
	go func() { _ = srv.Run(token) }()
	defer token.Signal()

	var handle *ClientHandle
	require.Eventually(t, func() bool {
		h, cerr := NewClientBuilder().ConnectTo(addr).ConnectTimeout(100 * time.Millisecond).Connect()
		if cerr != nil {
			return false
		}
		handle = h
		return true
	}, time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		ev, ok := handle.Poll()
		return ok && ev.Kind == EventConnected
	}, time.Second, 5*time.Millisecond)

	msg := []byte{1, 2, 3, 4}
	require.NoError(t, handle.Enqueue(msg))

	require.Eventually(t, func() bool {
		ev, ok := handle.Poll()
		return ok && ev.Kind == EventMessage && string(ev.Message) == string(msg)
	}, time.Second, 5*time.Millisecond)

	handle.Disconnect()
}
