package marketdata

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeEnvelope_RoundTrip(t *testing.T) {
	raw := encodeEnvelope(42, []byte{1, 2, 3})
	env, err := decodeEnvelope("A", raw)
	require.NoError(t, err)
	require.Equal(t, uint64(42), env.Sequence)
	require.Equal(t, []byte{1, 2, 3}, env.Payload)
	require.Equal(t, "A", env.Feed)
}

func TestDecodeEnvelope_RejectsShortMessage(t *testing.T) {
	_, err := decodeEnvelope("A", []byte{1, 2, 3})
	require.Error(t, err)
}

// fakeFeedSource replays a fixed sequence of envelopes then reports EOF.
type fakeFeedSource struct {
	envs []Envelope
	i    int
}

func (f *fakeFeedSource) Recv(ctx context.Context) (Envelope, error) {
	if f.i >= len(f.envs) {
		return Envelope{}, errors.New("fakeFeedSource: exhausted")
	}
	e := f.envs[f.i]
	f.i++
	return e, nil
}

func (f *fakeFeedSource) Close() error { return nil }

func TestPump_IngestsUntilSourceFails(t *testing.T) {
	arb, err := NewArbitrator(DefaultConfig(), nil)
	require.NoError(t, err)
	sub := arb.Output().Subscribe(false)

	src := &fakeFeedSource{envs: []Envelope{
		{Sequence: 1, Payload: payloadFor(1)},
		{Sequence: 2, Payload: payloadFor(2)},
	}}

	err = Pump(context.Background(), arb, src)
	require.Error(t, err)

	env, err := sub.Recv()
	require.NoError(t, err)
	require.Equal(t, uint64(1), env.Sequence)
	env, err = sub.Recv()
	require.NoError(t, err)
	require.Equal(t, uint64(2), env.Sequence)
}
