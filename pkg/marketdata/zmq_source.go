package marketdata

import (
	"context"
	"time"

	zmq "github.com/pebbe/zmq4"
)

// ZMQFeedSource reads one side of an A/B market-data feed pair from a
// ZeroMQ SUB socket. Each message on the wire is the 8-byte little-endian
// sequence prefix produced by encodeEnvelope followed by the raw SBE
// payload.
type ZMQFeedSource struct {
	label  string
	ctx    *zmq.Context
	socket *zmq.Socket
}

// NewZMQFeedSource connects a SUB socket to addr and subscribes to every
// message on it. label tags envelopes it produces ("A" or "B").
func NewZMQFeedSource(label, addr string) (*ZMQFeedSource, error) {
	zctx, err := zmq.NewContext()
	if err != nil {
		return nil, err
	}
	socket, err := zctx.NewSocket(zmq.SUB)
	if err != nil {
		return nil, err
	}
	if err := socket.Connect(addr); err != nil {
		socket.Close()
		return nil, err
	}
	if err := socket.SetSubscribe(""); err != nil {
		socket.Close()
		return nil, err
	}
	// A bounded receive timeout lets Recv poll ctx cancellation instead of
	// blocking forever inside the ZMQ socket.
	if err := socket.SetRcvtimeo(200 * time.Millisecond); err != nil {
		socket.Close()
		return nil, err
	}
	return &ZMQFeedSource{label: label, ctx: zctx, socket: socket}, nil
}

func (f *ZMQFeedSource) Recv(ctx context.Context) (Envelope, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Envelope{}, err
		}
		raw, err := f.socket.RecvBytes(0)
		if err != nil {
			// The receive timeout set above turns a quiet socket into a
			// periodic error here so this loop can re-check ctx instead
			// of blocking forever.
			continue
		}
		return decodeEnvelope(f.label, raw)
	}
}

func (f *ZMQFeedSource) Close() error {
	err := f.socket.Close()
	f.ctx.Term()
	return err
}

// ZMQFeedPublisher is the PUB-side counterpart used by tests and
// standalone feed-generator tools to emit sequence-tagged market data.
type ZMQFeedPublisher struct {
	ctx    *zmq.Context
	socket *zmq.Socket
}

// NewZMQFeedPublisher binds a PUB socket at addr.
func NewZMQFeedPublisher(addr string) (*ZMQFeedPublisher, error) {
	zctx, err := zmq.NewContext()
	if err != nil {
		return nil, err
	}
	socket, err := zctx.NewSocket(zmq.PUB)
	if err != nil {
		return nil, err
	}
	if err := socket.Bind(addr); err != nil {
		socket.Close()
		return nil, err
	}
	return &ZMQFeedPublisher{ctx: zctx, socket: socket}, nil
}

// Publish sends sequence/payload as one ZMQ message.
func (p *ZMQFeedPublisher) Publish(seq uint64, payload []byte) error {
	_, err := p.socket.SendBytes(encodeEnvelope(seq, payload), 0)
	return err
}

func (p *ZMQFeedPublisher) Close() error {
	err := p.socket.Close()
	p.ctx.Term()
	return err
}
