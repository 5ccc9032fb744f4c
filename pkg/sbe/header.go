package sbe

import "encoding/binary"

// MessageHeaderSize is the byte size of the default SBE message header:
// blockLength, templateId, schemaId, version, each a uint16.
const MessageHeaderSize = 8

// MessageHeader is the default-layout SBE message header. A schema may
// declare a different composite for its header, but generated code for
// schemas that don't override it uses this one directly.
type MessageHeader struct {
	BlockLength uint16
	TemplateID  uint16
	SchemaID    uint16
	Version     uint16
}

// EncodeMessageHeader writes h into buf at offset 0, in order.
func EncodeMessageHeader(buf []byte, h MessageHeader, order binary.ByteOrder) {
	PutUint16(buf, 0, h.BlockLength, order)
	PutUint16(buf, 2, h.TemplateID, order)
	PutUint16(buf, 4, h.SchemaID, order)
	PutUint16(buf, 6, h.Version, order)
}

// DecodeMessageHeader reads a MessageHeader from buf at offset 0. The
// caller is responsible for having checked len(buf) >= MessageHeaderSize.
func DecodeMessageHeader(buf []byte, order binary.ByteOrder) MessageHeader {
	return MessageHeader{
		BlockLength: GetUint16(buf, 0, order),
		TemplateID:  GetUint16(buf, 2, order),
		SchemaID:    GetUint16(buf, 4, order),
		Version:     GetUint16(buf, 6, order),
	}
}
