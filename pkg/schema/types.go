package schema

import (
	"fmt"
	"math"
)

// ByteOrder is the wire byte order declared by a schema. A schema may not
// mix little- and big-endian primitives.
type ByteOrder uint8

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

func (b ByteOrder) String() string {
	if b == BigEndian {
		return "bigEndian"
	}
	return "littleEndian"
}

// ParseByteOrder resolves the XML attribute value.
func ParseByteOrder(s string) (ByteOrder, error) {
	switch s {
	case "littleEndian", "":
		return LittleEndian, nil
	case "bigEndian":
		return BigEndian, nil
	default:
		return LittleEndian, &Error{Kind: InvalidByteOrder, Detail: fmt.Sprintf("unknown byteOrder %q", s)}
	}
}

// Primitive is one of the SBE scalar primitive kinds.
type Primitive uint8

const (
	PrimInvalid Primitive = iota
	PrimInt8
	PrimInt16
	PrimInt32
	PrimInt64
	PrimUint8
	PrimUint16
	PrimUint32
	PrimUint64
	PrimFloat32
	PrimFloat64
	PrimChar
)

// Size returns the size in bytes of one element of the primitive.
func (p Primitive) Size() int {
	switch p {
	case PrimInt8, PrimUint8, PrimChar:
		return 1
	case PrimInt16, PrimUint16:
		return 2
	case PrimInt32, PrimUint32, PrimFloat32:
		return 4
	case PrimInt64, PrimUint64, PrimFloat64:
		return 8
	default:
		return 0
	}
}

// Unsigned reports whether the primitive is an unsigned integer kind, the
// only kind legal for enum/set underlying types and length prefixes.
func (p Primitive) Unsigned() bool {
	switch p {
	case PrimUint8, PrimUint16, PrimUint32, PrimUint64:
		return true
	default:
		return false
	}
}

// NullValue returns the conventional SBE null sentinel for the primitive:
// the max value for unsigned types, the min value for signed types, NaN for
// floats. Represented as the widest integer/float container; callers cast
// down to the concrete wire width.
func (p Primitive) NullValue() interface{} {
	switch p {
	case PrimInt8:
		return int64(-128)
	case PrimInt16:
		return int64(-32768)
	case PrimInt32:
		return int64(-2147483648)
	case PrimInt64:
		return int64(-9223372036854775808)
	case PrimUint8:
		return uint64(0xFF)
	case PrimUint16:
		return uint64(0xFFFF)
	case PrimUint32:
		return uint64(0xFFFFFFFF)
	case PrimUint64:
		return uint64(0xFFFFFFFFFFFFFFFF)
	case PrimFloat32:
		return math.Float32frombits(0x7FC00000)
	case PrimFloat64:
		return math.Float64frombits(0x7FF8000000000000)
	case PrimChar:
		return byte(0)
	default:
		return nil
	}
}

// ParsePrimitive resolves an XML primitiveType attribute value.
func ParsePrimitive(s string) (Primitive, error) {
	switch s {
	case "int8":
		return PrimInt8, nil
	case "int16":
		return PrimInt16, nil
	case "int32":
		return PrimInt32, nil
	case "int64":
		return PrimInt64, nil
	case "uint8":
		return PrimUint8, nil
	case "uint16":
		return PrimUint16, nil
	case "uint32":
		return PrimUint32, nil
	case "uint64":
		return PrimUint64, nil
	case "float":
		return PrimFloat32, nil
	case "double":
		return PrimFloat64, nil
	case "char":
		return PrimChar, nil
	default:
		return PrimInvalid, &Error{Kind: ParseError, Detail: fmt.Sprintf("unknown primitiveType %q", s)}
	}
}
