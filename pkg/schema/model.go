package schema

// TypeDef is the tagged union of named type definitions a schema's
// <types> section can declare: Primitive, Enum, Set, Composite, or Ref.
type TypeDef interface {
	TypeName() string
	// Size returns the type's fixed size in bytes once references are
	// resolved against the owning schema.
	Size(s *Schema) (int, error)
}

// PrimitiveType is an array (length 1 for scalars) of one underlying
// primitive kind.
type PrimitiveType struct {
	Name      string
	Kind      Primitive
	Length    int // >= 1; >1 means a fixed-size character/byte array
	Character bool
}

func (t *PrimitiveType) TypeName() string { return t.Name }
func (t *PrimitiveType) Size(*Schema) (int, error) {
	return t.Kind.Size() * t.Length, nil
}

// EnumType is an underlying unsigned primitive plus named integer values.
type EnumType struct {
	Name       string
	Underlying Primitive
	Values     []EnumValue // name -> value, declared order preserved
}

// EnumValue is one (name, value) pair of an EnumType.
type EnumValue struct {
	Name  string
	Value uint64
}

func (t *EnumType) TypeName() string { return t.Name }
func (t *EnumType) Size(*Schema) (int, error) { return t.Underlying.Size(), nil }

// SetType is an underlying unsigned primitive plus named bit positions.
type SetType struct {
	Name       string
	Underlying Primitive
	Choices    []SetChoice
}

// SetChoice is one named bit position of a SetType.
type SetChoice struct {
	Name string
	Bit  uint8
}

func (t *SetType) TypeName() string { return t.Name }
func (t *SetType) Size(*Schema) (int, error) { return t.Underlying.Size(), nil }

// RefType is a symbolic reference to another named type, resolved during
// schema loading.
type RefType struct {
	Name   string
	Target string
}

func (t *RefType) TypeName() string { return t.Name }
func (t *RefType) Size(s *Schema) (int, error) {
	target, ok := s.Types[t.Target]
	if !ok {
		return 0, &Error{Kind: UnresolvedReference, Construct: "ref " + t.Name, Detail: "target " + t.Target + " not found"}
	}
	return target.Size(s)
}

// CompositeMember is one named field of a CompositeType: either an inline
// Primitive/Enum/Set definition or, for a ref, the named type it resolves to.
type CompositeMember struct {
	Name   string
	Type   TypeDef // *PrimitiveType, *EnumType, *SetType, or a ref's target (possibly *CompositeType)
	Offset int     // computed (or validated) absolute offset from composite start
}

// CompositeType is an ordered sequence of named, offset-computed members.
type CompositeType struct {
	Name    string
	Members []CompositeMember
}

func (t *CompositeType) TypeName() string { return t.Name }
func (t *CompositeType) Size(s *Schema) (int, error) {
	total := 0
	for _, m := range t.Members {
		sz, err := m.Type.Size(s)
		if err != nil {
			return 0, err
		}
		total = m.Offset + sz
	}
	return total, nil
}

// Field is a root-block or group-block field: a reference to a type plus
// its computed absolute byte offset and the schema version it was
// introduced in.
type Field struct {
	ID            int
	Name          string
	TypeName      string
	Type          TypeDef // resolved after schema load
	Offset        int
	DeclaredOffset *int // non-nil if the schema declared an explicit offset
	SinceVersion  int
}

// VarData is a variable-length data entry: a length prefix of LengthType
// followed by that many raw bytes.
type VarData struct {
	ID           int
	Name         string
	LengthType   Primitive // typically Uint16 or Uint32
	SinceVersion int
}

// Group is a nested, repeating message template: its own block of fields,
// optionally its own nested groups and var-data.
type Group struct {
	ID           int
	Name         string
	BlockLength  int
	DimensionType string // composite name used for the group header, usually "groupSizeEncoding"
	Fields       []Field
	Groups       []Group
	VarData      []VarData
	SinceVersion int
}

// Message is a top-level message template.
type Message struct {
	ID            int
	Name          string
	BlockLength   int
	SinceVersion  int
	Fields        []Field
	Groups        []Group
	VarData       []VarData
}

// HeaderSpec describes the MessageHeader composite's field widths. The
// default SBE header is 8 bytes: blockLength, templateId, schemaId,
// version, each a little/big-endian uint16 per the schema's byte order.
type HeaderSpec struct {
	BlockLengthWidth Primitive
	TemplateIDWidth  Primitive
	SchemaIDWidth    Primitive
	VersionWidth     Primitive
}

// DefaultHeaderSpec is the 8-byte MessageHeader used when a schema does not
// customize the composite.
func DefaultHeaderSpec() HeaderSpec {
	return HeaderSpec{
		BlockLengthWidth: PrimUint16,
		TemplateIDWidth:  PrimUint16,
		SchemaIDWidth:    PrimUint16,
		VersionWidth:     PrimUint16,
	}
}

// Size returns the total encoded width of the header.
func (h HeaderSpec) Size() int {
	return h.BlockLengthWidth.Size() + h.TemplateIDWidth.Size() + h.SchemaIDWidth.Size() + h.VersionWidth.Size()
}

// GroupHeaderSpec describes a repeating group's header: blockLength and
// numInGroup widths, customizable per schema but defaulting to uint16 each.
type GroupHeaderSpec struct {
	BlockLengthWidth Primitive
	NumInGroupWidth  Primitive
}

// DefaultGroupHeaderSpec is the 4-byte group header (blockLength:u16,
// numInGroup:u16) used when a schema does not customize it.
func DefaultGroupHeaderSpec() GroupHeaderSpec {
	return GroupHeaderSpec{BlockLengthWidth: PrimUint16, NumInGroupWidth: PrimUint16}
}

// Size returns the total encoded width of the group header.
func (g GroupHeaderSpec) Size() int {
	return g.BlockLengthWidth.Size() + g.NumInGroupWidth.Size()
}

// Schema is a named, versioned collection of type definitions and message
// templates, immutable after Load.
type Schema struct {
	ID          uint16
	Version     uint16
	ByteOrder   ByteOrder
	Package     string
	Header      HeaderSpec
	GroupHeader GroupHeaderSpec
	Types       map[string]TypeDef
	Messages    []*Message
}

// MessageByID returns the template with the given id, or nil.
func (s *Schema) MessageByID(id int) *Message {
	for _, m := range s.Messages {
		if m.ID == id {
			return m
		}
	}
	return nil
}
