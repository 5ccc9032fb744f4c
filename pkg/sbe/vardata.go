package sbe

import "encoding/binary"

// EncodeVarDataU16 writes a uint16 length prefix followed by data at offset,
// returning the offset immediately past the encoded field.
func EncodeVarDataU16(buf []byte, offset int, data []byte, order binary.ByteOrder) (int, error) {
	end := offset + 2 + len(data)
	if end > len(buf) {
		return 0, bufferTooSmall(end, len(buf))
	}
	if len(data) > int(NullUint16)-1 {
		return 0, &Error{Kind: VarDataOverflow, Detail: "length exceeds uint16 range"}
	}
	PutUint16(buf, offset, uint16(len(data)), order)
	copy(buf[offset+2:end], data)
	return end, nil
}

// DecodeVarDataU16 reads a uint16-length-prefixed field at offset, returning
// a borrowed slice of the payload and the offset immediately past it.
func DecodeVarDataU16(buf []byte, offset int, order binary.ByteOrder) ([]byte, int, error) {
	if offset+2 > len(buf) {
		return nil, 0, bufferTooSmall(offset+2, len(buf))
	}
	n := int(GetUint16(buf, offset, order))
	end := offset + 2 + n
	if end > len(buf) {
		return nil, 0, bufferTooSmall(end, len(buf))
	}
	return buf[offset+2 : end], end, nil
}

// EncodeVarDataU32 is the uint32-length-prefixed variant, used by var-data
// fields whose schema declares a wider length type.
func EncodeVarDataU32(buf []byte, offset int, data []byte, order binary.ByteOrder) (int, error) {
	end := offset + 4 + len(data)
	if end > len(buf) {
		return 0, bufferTooSmall(end, len(buf))
	}
	if uint64(len(data)) > uint64(NullUint32)-1 {
		return 0, &Error{Kind: VarDataOverflow, Detail: "length exceeds uint32 range"}
	}
	PutUint32(buf, offset, uint32(len(data)), order)
	copy(buf[offset+4:end], data)
	return end, nil
}

// DecodeVarDataU32 is the uint32-length-prefixed variant of DecodeVarDataU16.
func DecodeVarDataU32(buf []byte, offset int, order binary.ByteOrder) ([]byte, int, error) {
	if offset+4 > len(buf) {
		return nil, 0, bufferTooSmall(offset+4, len(buf))
	}
	n := int(GetUint32(buf, offset, order))
	end := offset + 4 + n
	if end > len(buf) {
		return nil, 0, bufferTooSmall(end, len(buf))
	}
	return buf[offset+4 : end], end, nil
}
