package codegen

import (
	"fmt"
	"sort"

	"github.com/luxfi/sbe/pkg/schema"
)

// The IR types below are what the templates actually range over. Building
// them up front keeps the templates declarative — no type switches or
// offset arithmetic inside template text.

type fieldIR struct {
	Name         string
	GoName       string
	Offset       int
	SinceVersion int

	Kind string // "primitive", "char", "enum", "set", "composite"
	Prim primInfo

	ArrayLen int // char/char-array length, 0 for scalar

	RefType   string // exported Go type name for enum/set/composite
	RefSchema string // schema type name, for diagnostics
}

type groupIR struct {
	Name         string
	GoName       string
	BlockLength  int
	SinceVersion int
	Fields       []fieldIR
	Groups       []groupIR
	VarData      []varDataIR
}

type varDataIR struct {
	Name         string
	GoName       string
	SinceVersion int
	LengthPrim   primInfo
	Width        int // 2 or 4
}

type messageIR struct {
	Name        string
	GoName      string
	ID          int
	BlockLength int
	Fields      []fieldIR
	Groups      []groupIR
	VarData     []varDataIR
}

type enumIR struct {
	Name     string
	GoName   string
	Prim     primInfo
	Values   []enumValueIR
}

type enumValueIR struct {
	Name   string
	GoName string
	Value  uint64
}

type setIR struct {
	Name    string
	GoName  string
	Prim    primInfo
	Choices []setChoiceIR
}

type setChoiceIR struct {
	Name   string
	GoName string
	Bit    uint8
}

type compositeIR struct {
	Name    string
	GoName  string
	Size    int
	Members []fieldIR
}

type schemaIR struct {
	Package    string
	SchemaID   int
	Version    int
	ByteOrder  string // "binary.LittleEndian" or "binary.BigEndian"
	Enums      []enumIR
	Sets       []setIR
	Composites []compositeIR
	Messages   []messageIR
}

func buildSchemaIR(s *schema.Schema, goPackage string) (*schemaIR, error) {
	order := "binary.LittleEndian"
	if s.ByteOrder == schema.BigEndian {
		order = "binary.BigEndian"
	}
	ir := &schemaIR{
		Package:   goPackage,
		SchemaID:  int(s.ID),
		Version:   int(s.Version),
		ByteOrder: order,
	}

	names := make([]string, 0, len(s.Types))
	for name := range s.Types {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		td := s.Types[name]
		switch t := td.(type) {
		case *schema.EnumType:
			e, err := buildEnumIR(name, t)
			if err != nil {
				return nil, err
			}
			ir.Enums = append(ir.Enums, e)
		case *schema.SetType:
			st, err := buildSetIR(name, t)
			if err != nil {
				return nil, err
			}
			ir.Sets = append(ir.Sets, st)
		case *schema.CompositeType:
			c, err := buildCompositeIR(s, name, t)
			if err != nil {
				return nil, err
			}
			ir.Composites = append(ir.Composites, c)
		}
	}

	for _, m := range s.Messages {
		mi, err := buildMessageIR(s, m)
		if err != nil {
			return nil, err
		}
		ir.Messages = append(ir.Messages, *mi)
	}

	return ir, nil
}

func buildEnumIR(name string, t *schema.EnumType) (enumIR, error) {
	pi, err := primitiveInfo(t.Underlying)
	if err != nil {
		return enumIR{}, fmt.Errorf("enum %s: %w", name, err)
	}
	e := enumIR{Name: name, GoName: exportName(name), Prim: pi}
	for _, v := range t.Values {
		e.Values = append(e.Values, enumValueIR{Name: v.Name, GoName: exportName(name) + "_" + exportName(v.Name), Value: v.Value})
	}
	return e, nil
}

func buildSetIR(name string, t *schema.SetType) (setIR, error) {
	pi, err := primitiveInfo(t.Underlying)
	if err != nil {
		return setIR{}, fmt.Errorf("set %s: %w", name, err)
	}
	st := setIR{Name: name, GoName: exportName(name), Prim: pi}
	for _, c := range t.Choices {
		st.Choices = append(st.Choices, setChoiceIR{Name: c.Name, GoName: exportName(name) + "_" + exportName(c.Name), Bit: c.Bit})
	}
	return st, nil
}

func buildCompositeIR(s *schema.Schema, name string, t *schema.CompositeType) (compositeIR, error) {
	sz, err := t.Size(s)
	if err != nil {
		return compositeIR{}, fmt.Errorf("composite %s: %w", name, err)
	}
	c := compositeIR{Name: name, GoName: exportName(name), Size: sz}
	for _, m := range t.Members {
		fi, err := buildFieldIR(s, m.Name, m.Type, m.Offset, 0)
		if err != nil {
			return compositeIR{}, fmt.Errorf("composite %s.%s: %w", name, m.Name, err)
		}
		c.Members = append(c.Members, fi)
	}
	return c, nil
}

func buildFieldIR(s *schema.Schema, name string, td schema.TypeDef, offset, sinceVersion int) (fieldIR, error) {
	fi := fieldIR{Name: name, GoName: exportName(name), Offset: offset, SinceVersion: sinceVersion}
	switch t := td.(type) {
	case *schema.PrimitiveType:
		pi, err := primitiveInfo(t.Kind)
		if err != nil {
			return fieldIR{}, err
		}
		fi.Prim = pi
		if t.Kind == schema.PrimChar && t.Length > 1 {
			fi.Kind = "char"
			fi.ArrayLen = t.Length
		} else {
			fi.Kind = "primitive"
		}
	case *schema.EnumType:
		fi.Kind = "enum"
		pi, err := primitiveInfo(t.Underlying)
		if err != nil {
			return fieldIR{}, err
		}
		fi.Prim = pi
		fi.RefType = exportName(t.Name)
		fi.RefSchema = t.Name
	case *schema.SetType:
		fi.Kind = "set"
		pi, err := primitiveInfo(t.Underlying)
		if err != nil {
			return fieldIR{}, err
		}
		fi.Prim = pi
		fi.RefType = exportName(t.Name)
		fi.RefSchema = t.Name
	case *schema.CompositeType:
		fi.Kind = "composite"
		sz, err := t.Size(s)
		if err != nil {
			return fieldIR{}, err
		}
		fi.ArrayLen = sz
		fi.RefType = exportName(t.Name)
		fi.RefSchema = t.Name
	case *schema.RefType:
		target, ok := s.Types[t.Target]
		if !ok {
			return fieldIR{}, fmt.Errorf("ref %s: unresolved target %s", name, t.Target)
		}
		return buildFieldIR(s, name, target, offset, sinceVersion)
	default:
		return fieldIR{}, fmt.Errorf("field %s: unsupported type %T", name, td)
	}
	return fi, nil
}

func buildMessageIR(s *schema.Schema, m *schema.Message) (*messageIR, error) {
	mi := &messageIR{Name: m.Name, GoName: exportName(m.Name), ID: m.ID, BlockLength: m.BlockLength}
	for _, f := range m.Fields {
		fi, err := buildFieldIR(s, f.Name, f.Type, f.Offset, f.SinceVersion)
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", m.Name, err)
		}
		mi.Fields = append(mi.Fields, fi)
	}
	for _, g := range m.Groups {
		gi, err := buildGroupIR(s, g)
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", m.Name, err)
		}
		mi.Groups = append(mi.Groups, gi)
	}
	for _, vd := range m.VarData {
		vi, err := buildVarDataIR(vd)
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", m.Name, err)
		}
		mi.VarData = append(mi.VarData, vi)
	}
	return mi, nil
}

func buildGroupIR(s *schema.Schema, g schema.Group) (groupIR, error) {
	gi := groupIR{Name: g.Name, GoName: exportName(g.Name), BlockLength: g.BlockLength, SinceVersion: g.SinceVersion}
	for _, f := range g.Fields {
		fi, err := buildFieldIR(s, f.Name, f.Type, f.Offset, f.SinceVersion)
		if err != nil {
			return groupIR{}, fmt.Errorf("group %s: %w", g.Name, err)
		}
		gi.Fields = append(gi.Fields, fi)
	}
	for _, sub := range g.Groups {
		sgi, err := buildGroupIR(s, sub)
		if err != nil {
			return groupIR{}, err
		}
		gi.Groups = append(gi.Groups, sgi)
	}
	for _, vd := range g.VarData {
		vi, err := buildVarDataIR(vd)
		if err != nil {
			return groupIR{}, err
		}
		gi.VarData = append(gi.VarData, vi)
	}
	return gi, nil
}

func buildVarDataIR(vd schema.VarData) (varDataIR, error) {
	pi, err := primitiveInfo(vd.LengthType)
	if err != nil {
		return varDataIR{}, fmt.Errorf("varData %s: %w", vd.Name, err)
	}
	width := 2
	if vd.LengthType == schema.PrimUint32 {
		width = 4
	}
	return varDataIR{Name: vd.Name, GoName: exportName(vd.Name), SinceVersion: vd.SinceVersion, LengthPrim: pi, Width: width}, nil
}
