package session

import "github.com/luxfi/sbe/pkg/sbe"

// ID is a monotonically assigned session identifier, unique for the
// lifetime of a Server.
type ID uint64

// Handler is the application callback surface the server engine drives.
// OnMessage runs synchronously on the session's reader task and must not
// block — any blocking work belongs on a separate goroutine fed by the
// handler.
type Handler interface {
	OnSessionStart(id ID)
	OnMessage(id ID, header sbe.MessageHeader, payload []byte, responder sbe.Responder)
	OnSessionEnd(id ID)
}

// HandlerFuncs adapts plain functions to the Handler interface; a nil
// field is a no-op.
type HandlerFuncs struct {
	Start   func(id ID)
	Message func(id ID, header sbe.MessageHeader, payload []byte, responder sbe.Responder)
	End     func(id ID)
}

func (h HandlerFuncs) OnSessionStart(id ID) {
	if h.Start != nil {
		h.Start(id)
	}
}

func (h HandlerFuncs) OnMessage(id ID, header sbe.MessageHeader, payload []byte, responder sbe.Responder) {
	if h.Message != nil {
		h.Message(id, header, payload, responder)
	}
}

func (h HandlerFuncs) OnSessionEnd(id ID) {
	if h.End != nil {
		h.End(id)
	}
}
