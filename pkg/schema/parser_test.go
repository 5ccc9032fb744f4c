package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const orderSchemaXML = `<?xml version="1.0" encoding="UTF-8"?>
<messageSchema xmlns:sbe="http://fixprotocol.io/2016/sbe" id="1" version="0" byteOrder="littleEndian" package="example">
  <types>
    <type name="clOrdIdType" primitiveType="char" length="20"/>
    <type name="symbolType" primitiveType="char" length="8"/>
    <enum name="Side" encodingType="uint8">
      <validValue name="Buy">0</validValue>
      <validValue name="Sell">1</validValue>
    </enum>
  </types>
  <sbe:message id="1" name="Order" blockLength="48">
    <field id="1" name="clOrdId" type="clOrdIdType" offset="0"/>
    <field id="2" name="symbol" type="symbolType" offset="20"/>
    <field id="3" name="side" type="Side" offset="28"/>
    <field id="4" name="price" type="int64Type" offset="29"/>
    <field id="5" name="quantity" type="uint64Type" offset="37"/>
  </sbe:message>
</messageSchema>`

func mustLoad(t *testing.T, doc string) *Schema {
	t.Helper()
	s, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	return s
}

func TestLoad_OrderSchema_OffsetsAndBlockLength(t *testing.T) {
	// add the two primitive types referenced by price/quantity field offsets.
	xml := strings.Replace(orderSchemaXML, "</types>",
		`<type name="int64Type" primitiveType="int64"/><type name="uint64Type" primitiveType="uint64"/></types>`, 1)

	s := mustLoad(t, xml)
	require.Equal(t, uint16(1), s.ID)
	require.Len(t, s.Messages, 1)

	msg := s.MessageByID(1)
	require.NotNil(t, msg)
	require.Equal(t, 48, msg.BlockLength)

	offsets := map[string]int{}
	for _, f := range msg.Fields {
		offsets[f.Name] = f.Offset
	}
	require.Equal(t, 0, offsets["clOrdId"])
	require.Equal(t, 20, offsets["symbol"])
	require.Equal(t, 28, offsets["side"])
	require.Equal(t, 29, offsets["price"])
	require.Equal(t, 37, offsets["quantity"])
}

func TestLoad_OffsetMismatch(t *testing.T) {
	xml := strings.Replace(orderSchemaXML, "</types>",
		`<type name="int64Type" primitiveType="int64"/><type name="uint64Type" primitiveType="uint64"/></types>`, 1)
	xml = strings.Replace(xml, `offset="20"`, `offset="21"`, 1)

	_, err := Load(strings.NewReader(xml))
	require.Error(t, err)
	var se *Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, OffsetMismatch, se.Kind)
}

func TestLoad_DuplicateEnumValue(t *testing.T) {
	xml := `<messageSchema id="1" version="0" byteOrder="littleEndian">
  <types>
    <enum name="Side" encodingType="uint8">
      <validValue name="Buy">0</validValue>
      <validValue name="Sell">0</validValue>
    </enum>
  </types>
</messageSchema>`
	_, err := Load(strings.NewReader(xml))
	require.Error(t, err)
}

func TestLoad_InvalidByteOrder(t *testing.T) {
	xml := `<messageSchema id="1" version="0" byteOrder="middleEndian"><types/></messageSchema>`
	_, err := Load(strings.NewReader(xml))
	require.Error(t, err)
	var se *Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, InvalidByteOrder, se.Kind)
}

func TestLoad_CompositeOffsets(t *testing.T) {
	xml := `<messageSchema id="1" version="0" byteOrder="littleEndian">
  <types>
    <composite name="MessageHeader">
      <type name="blockLength" primitiveType="uint16"/>
      <type name="templateId" primitiveType="uint16"/>
      <type name="schemaId" primitiveType="uint16"/>
      <type name="version" primitiveType="uint16"/>
    </composite>
  </types>
</messageSchema>`
	s := mustLoad(t, xml)
	td, ok := s.Types["MessageHeader"].(*CompositeType)
	require.True(t, ok)
	require.Len(t, td.Members, 4)
	require.Equal(t, 0, td.Members[0].Offset)
	require.Equal(t, 2, td.Members[1].Offset)
	require.Equal(t, 4, td.Members[2].Offset)
	require.Equal(t, 6, td.Members[3].Offset)
	sz, err := td.Size(s)
	require.NoError(t, err)
	require.Equal(t, 8, sz)
}

func TestLoad_GroupAndVarData(t *testing.T) {
	xml := `<messageSchema id="1" version="0" byteOrder="littleEndian">
  <types>
    <type name="uint32Type" primitiveType="uint32"/>
    <composite name="varDataEncoding">
      <type name="length" primitiveType="uint16"/>
      <type name="varData" primitiveType="uint8" length="0"/>
    </composite>
  </types>
  <sbe:message xmlns:sbe="http://fixprotocol.io/2016/sbe" id="2" name="Snapshot" blockLength="0">
    <group id="1" name="Entries" blockLength="4">
      <field id="1" name="price" type="uint32Type" offset="0"/>
    </group>
    <data id="2" name="text" type="varDataEncoding"/>
  </sbe:message>
</messageSchema>`
	s := mustLoad(t, xml)
	msg := s.MessageByID(2)
	require.Len(t, msg.Groups, 1)
	require.Equal(t, "Entries", msg.Groups[0].Name)
	require.Equal(t, 4, msg.Groups[0].BlockLength)
	require.Len(t, msg.VarData, 1)
	require.Equal(t, PrimUint16, msg.VarData[0].LengthType)
}

func TestLoad_DuplicateTemplateID(t *testing.T) {
	xml := `<messageSchema id="1" version="0" byteOrder="littleEndian">
  <types><type name="uint32Type" primitiveType="uint32"/></types>
  <sbe:message xmlns:sbe="http://fixprotocol.io/2016/sbe" id="1" name="A" blockLength="4">
    <field id="1" name="x" type="uint32Type" offset="0"/>
  </sbe:message>
  <sbe:message xmlns:sbe="http://fixprotocol.io/2016/sbe" id="1" name="B" blockLength="4">
    <field id="1" name="x" type="uint32Type" offset="0"/>
  </sbe:message>
</messageSchema>`
	_, err := Load(strings.NewReader(xml))
	require.Error(t, err)
}

func TestLoad_BlockLengthTooSmall(t *testing.T) {
	xml := `<messageSchema id="1" version="0" byteOrder="littleEndian">
  <types><type name="uint32Type" primitiveType="uint32"/></types>
  <sbe:message xmlns:sbe="http://fixprotocol.io/2016/sbe" id="1" name="A" blockLength="2">
    <field id="1" name="x" type="uint32Type" offset="0"/>
  </sbe:message>
</messageSchema>`
	_, err := Load(strings.NewReader(xml))
	require.Error(t, err)
	var se *Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, OffsetMismatch, se.Kind)
}
