package sbe

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrimitives_RoundTrip(t *testing.T) {
	buf := make([]byte, 64)

	PutUint16(buf, 0, 0xBEEF, binary.LittleEndian)
	require.Equal(t, uint16(0xBEEF), GetUint16(buf, 0, binary.LittleEndian))

	PutInt32(buf, 2, -12345, binary.LittleEndian)
	require.Equal(t, int32(-12345), GetInt32(buf, 2, binary.LittleEndian))

	PutUint64(buf, 6, 0x0102030405060708, binary.LittleEndian)
	require.Equal(t, uint64(0x0102030405060708), GetUint64(buf, 6, binary.LittleEndian))

	PutFloat64(buf, 14, 3.141592653589793, binary.LittleEndian)
	require.Equal(t, 3.141592653589793, GetFloat64(buf, 14, binary.LittleEndian))
}

func TestPrimitives_Endianness(t *testing.T) {
	buf := make([]byte, 4)
	PutUint32(buf, 0, 0x01020304, binary.BigEndian)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf)

	PutUint32(buf, 0, 0x01020304, binary.LittleEndian)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf)
}

func TestPrimitives_NullSentinels(t *testing.T) {
	require.Equal(t, uint8(0xFF), NullUint8)
	require.Equal(t, uint16(0xFFFF), NullUint16)
	require.Equal(t, int8(-128), NullInt8)
	require.True(t, NullFloat32() != NullFloat32()) // NaN != NaN
	require.True(t, NullFloat64() != NullFloat64())
}

func TestCharArray_PadAndTrim(t *testing.T) {
	buf := make([]byte, 8)
	PutCharArray(buf, 0, 8, []byte("AB"))
	require.Equal(t, []byte("AB\x00\x00\x00\x00\x00\x00"), buf)
	require.Equal(t, []byte("AB"), TrimPadding(GetCharArray(buf, 0, 8)))
}
