package schema

import "fmt"

// Kind is the SchemaError taxonomy from the wire codec's error design.
type Kind uint8

const (
	ParseError Kind = iota
	DuplicateID
	UnresolvedReference
	OffsetMismatch
	InvalidByteOrder
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case DuplicateID:
		return "DuplicateId"
	case UnresolvedReference:
		return "UnresolvedReference"
	case OffsetMismatch:
		return "OffsetMismatch"
	case InvalidByteOrder:
		return "InvalidByteOrder"
	default:
		return "Unknown"
	}
}

// Error names the offending construct alongside its taxonomy kind, per the
// schema loader's "fail with a structured error naming the offending
// construct" contract.
type Error struct {
	Kind      Kind
	Construct string // e.g. "message Order", "field Order.price", "enum Side"
	Detail    string
}

func (e *Error) Error() string {
	if e.Construct == "" {
		return fmt.Sprintf("schema: %s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("schema: %s in %s: %s", e.Kind, e.Construct, e.Detail)
}
