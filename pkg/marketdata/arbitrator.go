package marketdata

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/luxfi/sbe/internal/obs"
	"github.com/luxfi/sbe/pkg/channel"
)

// Arbitrator merges two redundant, independently-ordered feeds carrying
// the same sequence-numbered messages into one gap-tracked, deduplicated
// output. It has no notion of "feed A" or "feed B" beyond the label
// attached to each Envelope for logging — both feeds are ingested through
// the same Ingest call and raced against each other by delivery order.
type Arbitrator struct {
	mu               sync.Mutex
	highestDelivered uint64
	seen             *seenSet
	buf              *reorderBuffer
	gapTimeout       time.Duration
	gapStart         time.Time
	gapReported      bool

	sink   EventSink
	output *channel.Broadcast[Envelope]
	log    zerolog.Logger
}

// Config bundles an Arbitrator's tuning knobs.
type Config struct {
	// SeenSetSize bounds how many already-delivered sequences are
	// remembered to catch late duplicates from the slower feed.
	SeenSetSize int
	// ReorderCapacity (R) is the number of reorder-buffer slots. A pending
	// sequence occupies slot seq % R; a new sequence mapping to an occupied
	// slot evicts its occupant, even when fewer than R entries are pending.
	ReorderCapacity int
	// GapTimeout is how long a missing sequence must stay missing before
	// a GapDetected event fires.
	GapTimeout time.Duration
	// OutputCapacity sizes the lossless output broadcast channel; must be
	// a power of two.
	OutputCapacity int
}

// DefaultConfig returns reasonable defaults for a market-data feed pair.
func DefaultConfig() Config {
	return Config{
		SeenSetSize:     4096,
		ReorderCapacity: 256,
		GapTimeout:      500 * time.Millisecond,
		OutputCapacity:  4096,
	}
}

// NewArbitrator builds an Arbitrator publishing deduplicated, in-order
// envelopes to its output broadcast channel. sink may be nil to discard
// gap/overflow notifications.
func NewArbitrator(cfg Config, sink EventSink) (*Arbitrator, error) {
	output, err := channel.NewBroadcast[Envelope](cfg.OutputCapacity)
	if err != nil {
		return nil, err
	}
	if sink == nil {
		sink = EventSinkFuncs{}
	}
	return &Arbitrator{
		seen:       newSeenSet(cfg.SeenSetSize),
		buf:        newReorderBuffer(cfg.ReorderCapacity),
		gapTimeout: cfg.GapTimeout,
		sink:       sink,
		output:     output,
		log:        obs.New("marketdata.arbitrator"),
	}, nil
}

// Output returns the broadcast channel carrying the deduplicated,
// in-order stream. Subscribe before feeding envelopes to avoid missing
// early deliveries.
func (a *Arbitrator) Output() *channel.Broadcast[Envelope] { return a.output }

// Ingest processes one envelope arriving from either feed. Safe to call
// concurrently from both feeds' reader goroutines.
func (a *Arbitrator) Ingest(env Envelope) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	seq := env.Sequence
	if seq <= a.highestDelivered || a.seen.Contains(seq) || a.buf.Contains(seq) {
		return nil
	}

	if seq == a.highestDelivered+1 {
		a.deliverLocked(env)
		a.drainLocked()
		return nil
	}

	evicted, didEvict := a.buf.Put(seq, env.Payload, time.Now())
	if didEvict {
		a.sink.OnOverflow(evicted)
		a.log.Warn().Uint64("sequence", evicted).Msg("reorder buffer overflow")
	}
	if a.gapStart.IsZero() {
		a.gapStart = time.Now()
		a.gapReported = false
	}
	return nil
}

func (a *Arbitrator) deliverLocked(env Envelope) {
	a.highestDelivered = env.Sequence
	a.seen.Insert(env.Sequence)
	env.Feed = ""
	if err := a.output.Publish(env); err != nil {
		a.log.Error().Err(err).Uint64("sequence", env.Sequence).Msg("output channel full, dropping delivery")
	}
	a.gapStart = time.Time{}
	a.gapReported = false
}

func (a *Arbitrator) drainLocked() {
	for {
		payload, ok := a.buf.Take(a.highestDelivered + 1)
		if !ok {
			return
		}
		a.deliverLocked(Envelope{Sequence: a.highestDelivered + 1, Payload: payload})
	}
}

// CheckGap evaluates whether the currently outstanding gap, if any, has
// exceeded gapTimeout and reports it exactly once per gap via the sink.
// Call this periodically, e.g. from Run, or directly from a test with a
// synthetic clock advance.
func (a *Arbitrator) CheckGap(now time.Time) *GapDetectedError {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.gapStart.IsZero() || a.gapReported {
		return nil
	}
	if now.Sub(a.gapStart) < a.gapTimeout {
		return nil
	}
	from := a.highestDelivered + 1
	to := from
	if next, ok := a.buf.LowestPending(a.highestDelivered); ok {
		to = next - 1
	}
	a.gapReported = true
	a.sink.OnGap(from, to)
	return &GapDetectedError{From: from, To: to}
}

// Run polls CheckGap on checkInterval until ctx is done.
func (a *Arbitrator) Run(ctx context.Context, checkInterval time.Duration) {
	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			a.CheckGap(now)
		}
	}
}

// HighestDelivered returns the highest sequence delivered so far.
func (a *Arbitrator) HighestDelivered() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.highestDelivered
}
