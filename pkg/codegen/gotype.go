package codegen

import (
	"fmt"

	"github.com/luxfi/sbe/pkg/schema"
)

// primInfo carries everything a template needs to emit a getter/setter pair
// for one primitive kind, so the template itself stays declarative.
type primInfo struct {
	GoType   string
	Size     int
	Getter   string // sbe.GetXxx, takes (buf, offset[, order])
	Setter   string // sbe.PutXxx
	Null     string // expression yielding the null sentinel
	Ordered  bool   // true if Getter/Setter take a binary.ByteOrder argument
}

func primitiveInfo(p schema.Primitive) (primInfo, error) {
	switch p {
	case schema.PrimUint8:
		return primInfo{"uint8", 1, "sbe.GetUint8", "sbe.PutUint8", "sbe.NullUint8", false}, nil
	case schema.PrimInt8:
		return primInfo{"int8", 1, "sbe.GetInt8", "sbe.PutInt8", "sbe.NullInt8", false}, nil
	case schema.PrimChar:
		return primInfo{"byte", 1, "sbe.GetChar", "sbe.PutChar", "sbe.NullUint8", false}, nil
	case schema.PrimUint16:
		return primInfo{"uint16", 2, "sbe.GetUint16", "sbe.PutUint16", "sbe.NullUint16", true}, nil
	case schema.PrimInt16:
		return primInfo{"int16", 2, "sbe.GetInt16", "sbe.PutInt16", "sbe.NullInt16", true}, nil
	case schema.PrimUint32:
		return primInfo{"uint32", 4, "sbe.GetUint32", "sbe.PutUint32", "sbe.NullUint32", true}, nil
	case schema.PrimInt32:
		return primInfo{"int32", 4, "sbe.GetInt32", "sbe.PutInt32", "sbe.NullInt32", true}, nil
	case schema.PrimUint64:
		return primInfo{"uint64", 8, "sbe.GetUint64", "sbe.PutUint64", "sbe.NullUint64", true}, nil
	case schema.PrimInt64:
		return primInfo{"int64", 8, "sbe.GetInt64", "sbe.PutInt64", "sbe.NullInt64", true}, nil
	case schema.PrimFloat32:
		return primInfo{"float32", 4, "sbe.GetFloat32", "sbe.PutFloat32", "sbe.NullFloat32()", true}, nil
	case schema.PrimFloat64:
		return primInfo{"float64", 8, "sbe.GetFloat64", "sbe.PutFloat64", "sbe.NullFloat64()", true}, nil
	default:
		return primInfo{}, fmt.Errorf("codegen: no Go mapping for primitive %v", p)
	}
}
