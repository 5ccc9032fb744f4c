package marketdata

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/luxfi/sbe/pkg/channel"
)

// NATSFeedSource reads one side of an A/B feed pair from a NATS subject
// using a synchronous subscription, so Recv can honor ctx cancellation via
// NextMsgWithContext instead of registering a callback.
type NATSFeedSource struct {
	label string
	nc    *nats.Conn
	sub   *nats.Subscription
}

// NewNATSFeedSource connects to url and subscribes to subject.
func NewNATSFeedSource(label, url, subject string) (*NATSFeedSource, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	sub, err := nc.SubscribeSync(subject)
	if err != nil {
		nc.Close()
		return nil, err
	}
	return &NATSFeedSource{label: label, nc: nc, sub: sub}, nil
}

func (f *NATSFeedSource) Recv(ctx context.Context) (Envelope, error) {
	msg, err := f.sub.NextMsgWithContext(ctx)
	if err != nil {
		return Envelope{}, err
	}
	return decodeEnvelope(f.label, msg.Data)
}

func (f *NATSFeedSource) Close() error {
	if err := f.sub.Unsubscribe(); err != nil {
		f.nc.Close()
		return err
	}
	f.nc.Close()
	return nil
}

// NATSPublisher republishes the arbitrator's deduplicated output onto a
// NATS subject so consumers outside this process can subscribe to the
// single clean feed instead of racing the raw A/B pair themselves.
type NATSPublisher struct {
	nc      *nats.Conn
	subject string
}

// NewNATSPublisher connects to url for publishing on subject.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{nc: nc, subject: subject}, nil
}

// Publish republishes one deduplicated envelope.
func (p *NATSPublisher) Publish(env Envelope) error {
	return p.nc.Publish(p.subject, encodeEnvelope(env.Sequence, env.Payload))
}

// Run drains the arbitrator's output subscription and republishes every
// delivery until ctx is done or a publish fails. The output broadcast
// is non-blocking, so an empty read parks briefly rather than spinning.
func (p *NATSPublisher) Run(ctx context.Context, output *channel.Subscription[Envelope]) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		env, err := output.Recv()
		if err == nil {
			if perr := p.Publish(env); perr != nil {
				return perr
			}
			continue
		}
		// err is channel.ErrEmpty; a Subscription never closes.
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func (p *NATSPublisher) Close() error {
	p.nc.Close()
	return nil
}
