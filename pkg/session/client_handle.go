package session

import "github.com/luxfi/sbe/pkg/channel"

// EventKind discriminates a ClientEvent's variant.
type EventKind int

const (
	EventConnected EventKind = iota
	EventDisconnected
	EventMessage
	EventError
)

// ClientEvent is the sum type a Client's background connection loop
// delivers to a ClientHandle's poll queue.
type ClientEvent struct {
	Kind    EventKind
	Message []byte        // set when Kind == EventMessage
	Err     TransportKind // set when Kind == EventError
}

// ClientHandle is the non-blocking façade an application holds onto: it
// enqueues outbound payloads and polls inbound events without ever
// blocking the caller's own goroutine.
type ClientHandle struct {
	outbound *channel.SPSC[[]byte]
	events   *channel.MPSC[ClientEvent]
	token    *ShutdownToken
}

func newClientHandle(outboundCap, eventCap int) (*ClientHandle, error) {
	outbound, err := channel.NewSPSC[[]byte](normalizeCap(outboundCap))
	if err != nil {
		return nil, err
	}
	events, err := channel.NewMPSC[ClientEvent](normalizeCap(eventCap))
	if err != nil {
		return nil, err
	}
	return &ClientHandle{
		outbound: outbound,
		events:   events,
		token:    NewShutdownToken(0),
	}, nil
}

func normalizeCap(n int) int {
	if n <= 0 || n&(n-1) != 0 {
		return 1024
	}
	return n
}

// Enqueue submits a payload for the client's writer task to frame and
// send. It returns channel.ErrFull if the outbound queue is saturated and
// channel.ErrClosed once Disconnect has been called.
func (h *ClientHandle) Enqueue(payload []byte) error {
	cp := make([]byte, len(payload))
	copy(cp, payload)
	return h.outbound.Send(cp)
}

// Poll returns the next pending ClientEvent without blocking. It returns
// ok == false when no event is currently available.
func (h *ClientHandle) Poll() (ev ClientEvent, ok bool) {
	v, err := h.events.Recv()
	if err != nil {
		return ClientEvent{}, false
	}
	return v, true
}

// Disconnect signals the client's connection loop to stop and close the
// underlying socket.
func (h *ClientHandle) Disconnect() {
	h.token.Signal()
	h.outbound.Close()
}

func (h *ClientHandle) pushEvent(ev ClientEvent) {
	// The event channel is sized generously relative to connection churn;
	// MPSC.Send returns ErrFull without evicting anything, so a full queue
	// drops this new event rather than blocking the connection loop.
	_ = h.events.Send(ev)
}
