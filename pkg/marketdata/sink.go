package marketdata

// EventSink receives gap and overflow notifications as the arbitrator
// observes them. A nil field on EventSinkFuncs is a no-op, matching the
// adapter pattern used by the session engine's Handler.
type EventSink interface {
	OnGap(from, to uint64)
	OnOverflow(sequence uint64)
}

type EventSinkFuncs struct {
	Gap      func(from, to uint64)
	Overflow func(sequence uint64)
}

func (s EventSinkFuncs) OnGap(from, to uint64) {
	if s.Gap != nil {
		s.Gap(from, to)
	}
}

func (s EventSinkFuncs) OnOverflow(sequence uint64) {
	if s.Overflow != nil {
		s.Overflow(sequence)
	}
}
