package channel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBroadcast_TwoSubscribersReceiveSameOrder(t *testing.T) {
	bc, err := NewBroadcast[int](16)
	require.NoError(t, err)

	a := bc.Subscribe(false)
	b := bc.Subscribe(false)

	require.NoError(t, bc.Publish(42))
	require.NoError(t, bc.Publish(100))

	for _, sub := range []*Subscription[int]{a, b} {
		v1, err := sub.Recv()
		require.NoError(t, err)
		require.Equal(t, 42, v1)
		v2, err := sub.Recv()
		require.NoError(t, err)
		require.Equal(t, 100, v2)
	}
}

func TestBroadcast_LosslessBlocksOnSlowSubscriber(t *testing.T) {
	bc, err := NewBroadcast[int](4)
	require.NoError(t, err)
	sub := bc.Subscribe(false)

	for i := 0; i < 4; i++ {
		require.NoError(t, bc.Publish(i))
	}
	require.ErrorIs(t, bc.Publish(4), ErrFull)

	v, err := sub.Recv()
	require.NoError(t, err)
	require.Equal(t, 0, v)
	require.NoError(t, bc.Publish(4))
}

func TestBroadcast_LossySubscriberDropsAndCounts(t *testing.T) {
	bc, err := NewBroadcast[int](4)
	require.NoError(t, err)
	sub := bc.Subscribe(true)

	for i := 0; i < 8; i++ {
		require.NoError(t, bc.Publish(i))
	}

	v, err := sub.Recv()
	require.NoError(t, err)
	require.Equal(t, 4, v)
	require.Equal(t, uint64(4), sub.Dropped())
}

func TestBroadcast_Unsubscribe(t *testing.T) {
	bc, err := NewBroadcast[int](4)
	require.NoError(t, err)
	sub := bc.Subscribe(false)
	bc.Unsubscribe(sub)

	for i := 0; i < 10; i++ {
		require.NoError(t, bc.Publish(i))
	}
}
