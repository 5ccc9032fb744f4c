package marketdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func payloadFor(seq uint64) []byte {
	return []byte{byte(seq)}
}

func TestArbitrator_DedupesInterleavedFeeds(t *testing.T) {
	arb, err := NewArbitrator(Config{
		SeenSetSize:     16,
		ReorderCapacity: 16,
		GapTimeout:      time.Second,
		OutputCapacity:  16,
	}, nil)
	require.NoError(t, err)

	sub := arb.Output().Subscribe(false)

	feedA := []uint64{1, 2, 3, 5}
	feedB := []uint64{1, 3, 4, 5}
	for i := 0; i < 4; i++ {
		require.NoError(t, arb.Ingest(Envelope{Sequence: feedA[i], Payload: payloadFor(feedA[i]), Feed: "A"}))
		require.NoError(t, arb.Ingest(Envelope{Sequence: feedB[i], Payload: payloadFor(feedB[i]), Feed: "B"}))
	}

	var got []uint64
	for i := 0; i < 5; i++ {
		env, rerr := sub.Recv()
		require.NoError(t, rerr)
		got = append(got, env.Sequence)
	}
	require.Equal(t, []uint64{1, 2, 3, 4, 5}, got)
}

func TestArbitrator_LateDuplicateAfterDeliveryIsDropped(t *testing.T) {
	arb, err := NewArbitrator(DefaultConfig(), nil)
	require.NoError(t, err)
	sub := arb.Output().Subscribe(false)

	require.NoError(t, arb.Ingest(Envelope{Sequence: 1, Payload: payloadFor(1)}))
	require.NoError(t, arb.Ingest(Envelope{Sequence: 2, Payload: payloadFor(2)}))
	require.NoError(t, arb.Ingest(Envelope{Sequence: 1, Payload: payloadFor(1)})) // late dup

	_, err = sub.Recv()
	require.NoError(t, err)
	_, err = sub.Recv()
	require.NoError(t, err)
	_, err = sub.Recv()
	require.Error(t, err) // nothing else delivered
}

func TestArbitrator_GapDetectedAfterTimeout(t *testing.T) {
	var gapFrom, gapTo uint64
	sink := EventSinkFuncs{
		Gap: func(from, to uint64) { gapFrom, gapTo = from, to },
	}
	arb, err := NewArbitrator(Config{
		SeenSetSize:     16,
		ReorderCapacity: 16,
		GapTimeout:      50 * time.Millisecond,
		OutputCapacity:  16,
	}, sink)
	require.NoError(t, err)

	start := time.Now()
	require.NoError(t, arb.Ingest(Envelope{Sequence: 2, Payload: payloadFor(2)})) // seq 1 missing

	require.Nil(t, arb.CheckGap(start))
	gapEv := arb.CheckGap(start.Add(60 * time.Millisecond))
	require.NotNil(t, gapEv)
	require.Equal(t, uint64(1), gapFrom)
	require.Equal(t, uint64(1), gapTo)
	require.Equal(t, &GapDetectedError{From: 1, To: 1}, gapEv)

	// a second check within the same gap does not re-report.
	require.Nil(t, arb.CheckGap(start.Add(100*time.Millisecond)))
}

func TestArbitrator_ReorderBufferOverflowReported(t *testing.T) {
	var overflowed []uint64
	sink := EventSinkFuncs{
		Overflow: func(seq uint64) { overflowed = append(overflowed, seq) },
	}
	arb, err := NewArbitrator(Config{
		SeenSetSize:     16,
		ReorderCapacity: 2,
		GapTimeout:      time.Second,
		OutputCapacity:  16,
	}, sink)
	require.NoError(t, err)

	// seq 1 never arrives, so 3 and 5 collide in a 2-slot buffer (3%2==1, 5%2==1).
	require.NoError(t, arb.Ingest(Envelope{Sequence: 3, Payload: payloadFor(3)}))
	require.NoError(t, arb.Ingest(Envelope{Sequence: 5, Payload: payloadFor(5)}))

	require.Equal(t, []uint64{3}, overflowed)
}
