package sbe

import "sync"

// Responder is the sink a decoder hands reply frames to. session.Session
// provides one through its Responder method; tests use MemoryResponder.
type Responder interface {
	Enqueue(data []byte) error
}

// MemoryResponder collects every frame it is given, for use in codec and
// generated-code tests that need to assert on what would have been sent
// without standing up a real session.
type MemoryResponder struct {
	mu   sync.Mutex
	Sent [][]byte
}

func (m *MemoryResponder) Enqueue(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.Sent = append(m.Sent, cp)
	return nil
}

// Reset clears all recorded frames.
func (m *MemoryResponder) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = nil
}
