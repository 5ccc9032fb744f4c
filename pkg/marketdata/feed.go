package marketdata

import (
	"context"
	"encoding/binary"
	"fmt"
)

// FeedSource is one of the two redundant transports an Arbitrator reads
// from. Recv blocks until an envelope arrives, ctx is canceled, or the
// source fails.
type FeedSource interface {
	Recv(ctx context.Context) (Envelope, error)
	Close() error
}

// wireSeqPrefixSize is the width of the 8-byte little-endian sequence
// number every feed transport prefixes onto its payload, since neither
// ZeroMQ PUB/SUB nor a NATS subject carries an application sequence
// number of its own.
const wireSeqPrefixSize = 8

func encodeEnvelope(seq uint64, payload []byte) []byte {
	buf := make([]byte, wireSeqPrefixSize+len(payload))
	binary.LittleEndian.PutUint64(buf[:wireSeqPrefixSize], seq)
	copy(buf[wireSeqPrefixSize:], payload)
	return buf
}

func decodeEnvelope(feed string, raw []byte) (Envelope, error) {
	if len(raw) < wireSeqPrefixSize {
		return Envelope{}, fmt.Errorf("marketdata: feed message shorter than sequence prefix (%d bytes)", len(raw))
	}
	seq := binary.LittleEndian.Uint64(raw[:wireSeqPrefixSize])
	payload := make([]byte, len(raw)-wireSeqPrefixSize)
	copy(payload, raw[wireSeqPrefixSize:])
	return Envelope{Sequence: seq, Payload: payload, Feed: feed}, nil
}

// Pump reads from source until ctx is done or Recv fails, ingesting every
// envelope into arb. It's the glue a caller wires up per feed:
//
//	go marketdata.Pump(ctx, arb, feedA)
//	go marketdata.Pump(ctx, arb, feedB)
func Pump(ctx context.Context, arb *Arbitrator, source FeedSource) error {
	for {
		env, err := source.Recv(ctx)
		if err != nil {
			return err
		}
		if err := arb.Ingest(env); err != nil {
			return err
		}
	}
}
