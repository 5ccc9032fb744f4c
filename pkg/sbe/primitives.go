package sbe

import (
	"encoding/binary"
	"math"
)

// The Get/Put pairs below are the runtime's endian-aware primitive I/O.
// Each is a fixed-width typed read or write at a caller-supplied offset —
// no allocation, no branch beyond the bounds check the caller already
// performed at wrap time. Generated accessors call these directly; they
// never touch encoding/binary themselves.

func GetUint8(buf []byte, offset int) uint8   { return buf[offset] }
func PutUint8(buf []byte, offset int, v uint8) { buf[offset] = v }
func GetInt8(buf []byte, offset int) int8      { return int8(buf[offset]) }
func PutInt8(buf []byte, offset int, v int8)   { buf[offset] = byte(v) }
func GetChar(buf []byte, offset int) byte      { return buf[offset] }
func PutChar(buf []byte, offset int, v byte)   { buf[offset] = v }

// GetCharArray borrows n bytes at offset; callers that want a trimmed Go
// string should pass the result through TrimPadding.
func GetCharArray(buf []byte, offset, n int) []byte { return buf[offset : offset+n] }

// PutCharArray copies v into the n-byte field at offset, zero-padding any
// remainder — the conventional SBE fixed char-array encoding.
func PutCharArray(buf []byte, offset, n int, v []byte) {
	copy(buf[offset:offset+n], v)
	for i := len(v); i < n; i++ {
		buf[offset+i] = 0
	}
}

// TrimPadding trims trailing NUL bytes from a fixed char array read.
func TrimPadding(b []byte) []byte {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return b[:end]
}

func GetUint16(buf []byte, offset int, order binary.ByteOrder) uint16 {
	return order.Uint16(buf[offset : offset+2])
}
func PutUint16(buf []byte, offset int, v uint16, order binary.ByteOrder) {
	order.PutUint16(buf[offset:offset+2], v)
}
func GetInt16(buf []byte, offset int, order binary.ByteOrder) int16 {
	return int16(order.Uint16(buf[offset : offset+2]))
}
func PutInt16(buf []byte, offset int, v int16, order binary.ByteOrder) {
	order.PutUint16(buf[offset:offset+2], uint16(v))
}

func GetUint32(buf []byte, offset int, order binary.ByteOrder) uint32 {
	return order.Uint32(buf[offset : offset+4])
}
func PutUint32(buf []byte, offset int, v uint32, order binary.ByteOrder) {
	order.PutUint32(buf[offset:offset+4], v)
}
func GetInt32(buf []byte, offset int, order binary.ByteOrder) int32 {
	return int32(order.Uint32(buf[offset : offset+4]))
}
func PutInt32(buf []byte, offset int, v int32, order binary.ByteOrder) {
	order.PutUint32(buf[offset:offset+4], uint32(v))
}

func GetUint64(buf []byte, offset int, order binary.ByteOrder) uint64 {
	return order.Uint64(buf[offset : offset+8])
}
func PutUint64(buf []byte, offset int, v uint64, order binary.ByteOrder) {
	order.PutUint64(buf[offset:offset+8], v)
}
func GetInt64(buf []byte, offset int, order binary.ByteOrder) int64 {
	return int64(order.Uint64(buf[offset : offset+8]))
}
func PutInt64(buf []byte, offset int, v int64, order binary.ByteOrder) {
	order.PutUint64(buf[offset:offset+8], uint64(v))
}

func GetFloat32(buf []byte, offset int, order binary.ByteOrder) float32 {
	return math.Float32frombits(order.Uint32(buf[offset : offset+4]))
}
func PutFloat32(buf []byte, offset int, v float32, order binary.ByteOrder) {
	order.PutUint32(buf[offset:offset+4], math.Float32bits(v))
}
func GetFloat64(buf []byte, offset int, order binary.ByteOrder) float64 {
	return math.Float64frombits(order.Uint64(buf[offset : offset+8]))
}
func PutFloat64(buf []byte, offset int, v float64, order binary.ByteOrder) {
	order.PutUint64(buf[offset:offset+8], math.Float64bits(v))
}

// Null sentinels: max of the unsigned type, min of the signed type, NaN for
// floats — the conventional SBE in-band absence markers. Generated decoder
// getters return the field's sentinel when the frame's version predates the
// field; a value read from the wire is returned without comparing it to these.
const (
	NullUint8  uint8  = 0xFF
	NullUint16 uint16 = 0xFFFF
	NullUint32 uint32 = 0xFFFFFFFF
	NullUint64 uint64 = 0xFFFFFFFFFFFFFFFF
	NullInt8   int8   = -128
	NullInt16  int16  = -32768
	NullInt32  int32  = -2147483648
	NullInt64  int64  = -9223372036854775808
)

func NullFloat32() float32 { return math.Float32frombits(0x7FC00000) }
func NullFloat64() float64 { return math.Float64frombits(0x7FF8000000000000) }
