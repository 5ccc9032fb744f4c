package sbe

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageHeader_RoundTrip(t *testing.T) {
	buf := make([]byte, MessageHeaderSize)
	want := MessageHeader{BlockLength: 48, TemplateID: 1, SchemaID: 1, Version: 0}
	EncodeMessageHeader(buf, want, binary.LittleEndian)
	got := DecodeMessageHeader(buf, binary.LittleEndian)
	require.Equal(t, want, got)
}

func TestGroupHeader_RoundTrip(t *testing.T) {
	buf := make([]byte, GroupHeaderSize+8)
	want := GroupHeader{BlockLength: 4, NumInGroup: 2}
	EncodeGroupHeader(buf, 0, want, binary.LittleEndian)
	got, err := DecodeGroupHeader(buf, 0, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestGroupHeader_BadHeaderOverflow(t *testing.T) {
	buf := make([]byte, GroupHeaderSize+4)
	EncodeGroupHeader(buf, 0, GroupHeader{BlockLength: 4, NumInGroup: 10}, binary.LittleEndian)
	_, err := DecodeGroupHeader(buf, 0, binary.LittleEndian)
	require.Error(t, err)
	var se *Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, BadGroupHeader, se.Kind)
}

func TestVarData_U16RoundTrip(t *testing.T) {
	buf := make([]byte, 32)
	end, err := EncodeVarDataU16(buf, 0, []byte("hello"), binary.LittleEndian)
	require.NoError(t, err)
	got, next, err := DecodeVarDataU16(buf, 0, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), got)
	require.Equal(t, end, next)
}

func TestVarData_U32RoundTrip(t *testing.T) {
	buf := make([]byte, 32)
	end, err := EncodeVarDataU32(buf, 0, []byte("world"), binary.LittleEndian)
	require.NoError(t, err)
	got, next, err := DecodeVarDataU32(buf, 0, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, []byte("world"), got)
	require.Equal(t, end, next)
}

func TestBuffer_PeekPlaceBounds(t *testing.T) {
	b := Wrap(make([]byte, 4))
	require.NoError(t, b.Place(0, []byte{1, 2, 3, 4}))
	got, err := b.Peek(0, 4)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4}, got)

	_, err = b.Peek(2, 4)
	require.Error(t, err)
	var se *Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, BufferTooSmall, se.Kind)
}

func TestAlignedBuffer_IsCacheLineAligned(t *testing.T) {
	ab := NewAlignedBuffer(128)
	require.Len(t, ab.Bytes(), 128)
	require.Equal(t, 0, alignmentPadding(ab.Bytes()))
}
