package sbe

import "encoding/binary"

// GroupHeaderSize is the byte size of the default SBE group dimension
// header: blockLength and numInGroup, each a uint16.
const GroupHeaderSize = 4

// GroupHeader is the default-layout repeating-group dimension header that
// precedes every group's entries.
type GroupHeader struct {
	BlockLength uint16
	NumInGroup  uint16
}

// EncodeGroupHeader writes h at offset.
func EncodeGroupHeader(buf []byte, offset int, h GroupHeader, order binary.ByteOrder) {
	PutUint16(buf, offset, h.BlockLength, order)
	PutUint16(buf, offset+2, h.NumInGroup, order)
}

// DecodeGroupHeader reads a GroupHeader from buf at offset. Returns
// BadGroupHeader if numInGroup together with blockLength would run the
// group's entries past the end of buf.
func DecodeGroupHeader(buf []byte, offset int, order binary.ByteOrder) (GroupHeader, error) {
	if offset+GroupHeaderSize > len(buf) {
		return GroupHeader{}, &Error{Kind: BadGroupHeader, Detail: "group header truncated"}
	}
	h := GroupHeader{
		BlockLength: GetUint16(buf, offset, order),
		NumInGroup:  GetUint16(buf, offset+2, order),
	}
	need := offset + GroupHeaderSize + int(h.BlockLength)*int(h.NumInGroup)
	if need > len(buf) {
		return GroupHeader{}, &Error{Kind: BadGroupHeader, Detail: "group entries run past end of buffer"}
	}
	return h, nil
}
