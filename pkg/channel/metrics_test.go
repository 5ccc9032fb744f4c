package channel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/sbe/internal/obs/metric"
)

func TestSPSC_MetricsWiring(t *testing.T) {
	reg := metric.NewRegistry()
	s, err := NewSPSC[int](2)
	require.NoError(t, err)
	s.WithMetrics(reg)

	require.NoError(t, s.Send(1))
	require.NoError(t, s.Send(2))
	require.ErrorIs(t, s.Send(3), ErrFull)
	_, _ = s.Recv()
	s.Close()

	require.EqualValues(t, 2, reg.Counter(CounterSent).Count())
	require.EqualValues(t, 1, reg.Counter(CounterFull).Count())
	require.EqualValues(t, 1, reg.Counter(CounterRecv).Count())
	require.EqualValues(t, 1, reg.Counter(CounterClosed).Count())
}

func TestBroadcast_MetricsWiring(t *testing.T) {
	reg := metric.NewRegistry()
	b, err := NewBroadcast[int](2)
	require.NoError(t, err)
	b.WithMetrics(reg)

	sub := b.Subscribe(true)
	require.NoError(t, b.Publish(1))
	require.NoError(t, b.Publish(2))
	require.NoError(t, b.Publish(3)) // lossy sub now one behind capacity

	_, err = sub.Recv()
	require.NoError(t, err)

	require.EqualValues(t, 3, reg.Counter(CounterSent).Count())
	require.GreaterOrEqual(t, reg.Counter(CounterRecv).Count(), int64(1))
}
