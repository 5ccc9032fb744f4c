package schema

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
)

// LoadFile reads and parses the schema XML document at path.
func LoadFile(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: ParseError, Detail: err.Error()}
	}
	defer f.Close()
	return Load(f)
}

// Load parses a messageSchema XML document, resolves every reference,
// computes (or validates declared) field offsets, and runs the full
// validation pass before returning.
func Load(r io.Reader) (*Schema, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &Error{Kind: ParseError, Detail: err.Error()}
	}

	byteOrder, err := ParseByteOrder(doc.ByteOrder)
	if err != nil {
		return nil, err
	}

	types, err := buildTypes(doc.Types)
	if err != nil {
		return nil, err
	}

	s := &Schema{
		ID:          uint16(doc.ID),
		Version:     uint16(doc.Version),
		ByteOrder:   byteOrder,
		Package:     doc.Package,
		Header:      DefaultHeaderSpec(),
		GroupHeader: DefaultGroupHeaderSpec(),
		Types:       types,
	}

	for _, xm := range doc.Messages {
		msg, err := buildMessage(xm, types)
		if err != nil {
			return nil, err
		}
		s.Messages = append(s.Messages, msg)
	}

	if errs := Validate(s); len(errs) > 0 {
		return nil, errs[0]
	}
	return s, nil
}

func buildTypes(x xmlTypes) (map[string]TypeDef, error) {
	types := make(map[string]TypeDef)

	for _, t := range x.Types {
		if _, exists := types[t.Name]; exists {
			return nil, &Error{Kind: DuplicateID, Construct: "type " + t.Name, Detail: "duplicate type name"}
		}
		prim, err := ParsePrimitive(t.PrimitiveType)
		if err != nil {
			return nil, err
		}
		length := t.Length
		if length == 0 {
			length = 1
		}
		types[t.Name] = &PrimitiveType{Name: t.Name, Kind: prim, Length: length, Character: prim == PrimChar}
	}

	for _, e := range x.Enums {
		td, err := buildEnum(e)
		if err != nil {
			return nil, err
		}
		if _, exists := types[e.Name]; exists {
			return nil, &Error{Kind: DuplicateID, Construct: "enum " + e.Name, Detail: "duplicate type name"}
		}
		types[e.Name] = td
	}

	for _, st := range x.Sets {
		td, err := buildSet(st)
		if err != nil {
			return nil, err
		}
		if _, exists := types[st.Name]; exists {
			return nil, &Error{Kind: DuplicateID, Construct: "set " + st.Name, Detail: "duplicate type name"}
		}
		types[st.Name] = td
	}

	for _, r := range x.Refs {
		if _, exists := types[r.Name]; exists {
			return nil, &Error{Kind: DuplicateID, Construct: "ref " + r.Name, Detail: "duplicate type name"}
		}
		types[r.Name] = &RefType{Name: r.Name, Target: r.Type}
	}

	pending := x.Composites
	for len(pending) > 0 {
		var next []xmlComposite
		progressed := false
		for _, c := range pending {
			members, ready, err := buildCompositeMembers(c, types)
			if err != nil {
				return nil, err
			}
			if !ready {
				next = append(next, c)
				continue
			}
			if _, exists := types[c.Name]; exists {
				return nil, &Error{Kind: DuplicateID, Construct: "composite " + c.Name, Detail: "duplicate type name"}
			}
			types[c.Name] = &CompositeType{Name: c.Name, Members: members}
			progressed = true
		}
		if !progressed {
			return nil, &Error{Kind: UnresolvedReference, Detail: "composite reference cannot be resolved (missing target or cycle)"}
		}
		pending = next
	}

	return types, nil
}

func buildEnum(e xmlEnum) (*EnumType, error) {
	underlying, err := ParsePrimitive(e.EncodingType)
	if err != nil {
		return nil, err
	}
	if !underlying.Unsigned() {
		return nil, &Error{Kind: ParseError, Construct: "enum " + e.Name, Detail: "underlying type must be unsigned"}
	}
	seen := make(map[uint64]bool, len(e.ValidValues))
	values := make([]EnumValue, 0, len(e.ValidValues))
	for _, vv := range e.ValidValues {
		n, err := strconv.ParseUint(vv.Value, 10, 64)
		if err != nil {
			return nil, &Error{Kind: ParseError, Construct: "enum " + e.Name + "." + vv.Name, Detail: err.Error()}
		}
		if seen[n] {
			return nil, &Error{Kind: DuplicateID, Construct: "enum " + e.Name, Detail: fmt.Sprintf("duplicate value %d", n)}
		}
		seen[n] = true
		values = append(values, EnumValue{Name: vv.Name, Value: n})
	}
	return &EnumType{Name: e.Name, Underlying: underlying, Values: values}, nil
}

func buildSet(st xmlSet) (*SetType, error) {
	underlying, err := ParsePrimitive(st.EncodingType)
	if err != nil {
		return nil, err
	}
	if !underlying.Unsigned() {
		return nil, &Error{Kind: ParseError, Construct: "set " + st.Name, Detail: "underlying type must be unsigned"}
	}
	width := underlying.Size() * 8
	seen := make(map[uint8]bool, len(st.Choices))
	choices := make([]SetChoice, 0, len(st.Choices))
	for _, c := range st.Choices {
		n, err := strconv.ParseUint(c.Bit, 10, 8)
		if err != nil {
			return nil, &Error{Kind: ParseError, Construct: "set " + st.Name + "." + c.Name, Detail: err.Error()}
		}
		bit := uint8(n)
		if int(bit) >= width {
			return nil, &Error{Kind: ParseError, Construct: "set " + st.Name + "." + c.Name, Detail: fmt.Sprintf("bit %d out of range [0,%d)", bit, width)}
		}
		if seen[bit] {
			return nil, &Error{Kind: DuplicateID, Construct: "set " + st.Name, Detail: fmt.Sprintf("duplicate bit %d", bit)}
		}
		seen[bit] = true
		choices = append(choices, SetChoice{Name: c.Name, Bit: bit})
	}
	return &SetType{Name: st.Name, Underlying: underlying, Choices: choices}, nil
}

// buildCompositeMembers returns ready=false when a <ref> member's target
// has not been built yet, so the caller can retry once more types exist.
func buildCompositeMembers(c xmlComposite, types map[string]TypeDef) ([]CompositeMember, bool, error) {
	offset := 0
	members := make([]CompositeMember, 0, len(c.Members))
	lookup := &Schema{Types: types}

	for _, raw := range c.Members {
		var td TypeDef
		switch raw.Kind {
		case "type":
			prim, err := ParsePrimitive(raw.Type.PrimitiveType)
			if err != nil {
				return nil, false, err
			}
			length := raw.Type.Length
			if length == 0 {
				length = 1
			}
			td = &PrimitiveType{Name: raw.Type.Name, Kind: prim, Length: length, Character: prim == PrimChar}
		case "enum":
			e, err := buildEnum(*raw.Enum)
			if err != nil {
				return nil, false, err
			}
			td = e
		case "set":
			st, err := buildSet(*raw.Set)
			if err != nil {
				return nil, false, err
			}
			td = st
		case "ref":
			target, ok := types[raw.Ref.Type]
			if !ok {
				return nil, false, nil
			}
			td = target
		default:
			return nil, false, &Error{Kind: ParseError, Construct: "composite " + c.Name, Detail: "unknown member kind"}
		}

		sz, err := td.Size(lookup)
		if err != nil {
			return nil, false, err
		}
		members = append(members, CompositeMember{Name: raw.name(), Type: td, Offset: offset})
		offset += sz
	}
	return members, true, nil
}

func buildMessage(xm xmlMessage, types map[string]TypeDef) (*Message, error) {
	fields, err := buildFields(xm.Fields, types, "message "+xm.Name)
	if err != nil {
		return nil, err
	}
	if err := ComputeFieldOffsets(fields, types, "message "+xm.Name); err != nil {
		return nil, err
	}
	groups, err := buildGroups(xm.Groups, types, "message "+xm.Name)
	if err != nil {
		return nil, err
	}
	varData, err := buildVarData(xm.Data, types, "message "+xm.Name)
	if err != nil {
		return nil, err
	}
	return &Message{
		ID:           xm.ID,
		Name:         xm.Name,
		BlockLength:  xm.BlockLength,
		SinceVersion: xm.SinceVersion,
		Fields:       fields,
		Groups:       groups,
		VarData:      varData,
	}, nil
}

func buildGroups(xgs []xmlGroup, types map[string]TypeDef, owner string) ([]Group, error) {
	groups := make([]Group, 0, len(xgs))
	for _, xg := range xgs {
		construct := owner + "." + xg.Name
		fields, err := buildFields(xg.Fields, types, construct)
		if err != nil {
			return nil, err
		}
		if err := ComputeFieldOffsets(fields, types, construct); err != nil {
			return nil, err
		}
		nested, err := buildGroups(xg.Groups, types, construct)
		if err != nil {
			return nil, err
		}
		varData, err := buildVarData(xg.Data, types, construct)
		if err != nil {
			return nil, err
		}
		dim := xg.DimensionType
		if dim == "" {
			dim = "groupSizeEncoding"
		}
		groups = append(groups, Group{
			ID:            xg.ID,
			Name:          xg.Name,
			BlockLength:   xg.BlockLength,
			DimensionType: dim,
			Fields:        fields,
			Groups:        nested,
			VarData:       varData,
			SinceVersion:  xg.SinceVersion,
		})
	}
	return groups, nil
}

func buildFields(xfs []xmlField, types map[string]TypeDef, owner string) ([]Field, error) {
	fields := make([]Field, 0, len(xfs))
	for _, xf := range xfs {
		td, ok := types[xf.Type]
		if !ok {
			return nil, &Error{Kind: UnresolvedReference, Construct: owner + "." + xf.Name, Detail: "unknown type " + xf.Type}
		}
		f := Field{ID: xf.ID, Name: xf.Name, TypeName: xf.Type, Type: td, SinceVersion: xf.SinceVersion}
		if xf.Offset != "" {
			n, err := strconv.Atoi(xf.Offset)
			if err != nil {
				return nil, &Error{Kind: ParseError, Construct: owner + "." + xf.Name, Detail: err.Error()}
			}
			f.DeclaredOffset = &n
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func buildVarData(xds []xmlData, types map[string]TypeDef, owner string) ([]VarData, error) {
	vds := make([]VarData, 0, len(xds))
	for _, xd := range xds {
		lengthType, err := varDataLengthType(xd.Type, types)
		if err != nil {
			return nil, &Error{Kind: UnresolvedReference, Construct: owner + "." + xd.Name, Detail: err.Error()}
		}
		vds = append(vds, VarData{ID: xd.ID, Name: xd.Name, LengthType: lengthType, SinceVersion: xd.SinceVersion})
	}
	return vds, nil
}

// varDataLengthType inspects the composite a <data> element points to
// (conventionally "length" followed by "varData") and returns the width of
// its length-prefix member. Unresolvable references default to uint32, the
// common SBE convention, per the Open Question in spec.md §9(b): the
// length-prefix width follows the schema's own declaration, never a
// hard-coded 16 vs 32 bit choice.
func varDataLengthType(typeName string, types map[string]TypeDef) (Primitive, error) {
	td, ok := types[typeName]
	if !ok {
		return PrimUint32, nil
	}
	composite, ok := td.(*CompositeType)
	if !ok || len(composite.Members) == 0 {
		return PrimUint32, nil
	}
	first := composite.Members[0].Type
	prim, ok := first.(*PrimitiveType)
	if !ok || !prim.Kind.Unsigned() {
		return PrimUint32, fmt.Errorf("var-data type %s has no unsigned length member", typeName)
	}
	return prim.Kind, nil
}
