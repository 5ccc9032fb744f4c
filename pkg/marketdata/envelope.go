package marketdata

// Envelope is a single sequence-numbered message as it arrives from a
// feed, before arbitration. Payload is the raw SBE-framed message body;
// the arbitrator never interprets it beyond the sequence number tag
// supplied alongside it by the FeedSource.
type Envelope struct {
	Sequence uint64
	Payload  []byte
	Feed     string // "A" or "B", or the publisher's own label
}

// Event pairs the gap and overflow notifications a recovery layer can act
// on. The Arbitrator itself reports them through its EventSink and does
// not produce Event values.
type Event struct {
	Gap      *GapDetectedError
	Overflow *ReorderOverflowError
}
