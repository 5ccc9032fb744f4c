package channel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type tagged struct {
	producer int
	seq      int
}

func TestMPSC_PerProducerOrderPreserved(t *testing.T) {
	ch, err := NewMPSC[tagged](1024)
	require.NoError(t, err)

	const producers = 4
	const perProducer = 200

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				for ch.Send(tagged{producer: p, seq: i}) == ErrFull {
				}
			}
		}(p)
	}

	lastSeq := make([]int, producers)
	for i := range lastSeq {
		lastSeq[i] = -1
	}
	received := 0
	for received < producers*perProducer {
		v, err := ch.RecvSpin()
		require.NoError(t, err)
		require.Greater(t, v.seq, lastSeq[v.producer])
		lastSeq[v.producer] = v.seq
		received++
	}
	wg.Wait()
}

func TestMPSC_FullWhenSaturated(t *testing.T) {
	ch, err := NewMPSC[int](2)
	require.NoError(t, err)
	require.NoError(t, ch.Send(1))
	require.NoError(t, ch.Send(2))
	require.ErrorIs(t, ch.Send(3), ErrFull)
}
