package schema

import "encoding/xml"

// The structs in this file mirror the messageSchema XML document shape
// described in the wire format's external interface: a root messageSchema
// element, a <types> section holding <type>/<enum>/<set>/<composite>, and
// one or more <sbe:message> elements holding <field>/<group>/<data>.
//
// encoding/xml matches by local name, so the sbe: namespace prefix on
// <sbe:message> needs no special handling here.

type xmlDocument struct {
	XMLName   xml.Name    `xml:"messageSchema"`
	ID        int         `xml:"id,attr"`
	Version   int         `xml:"version,attr"`
	ByteOrder string      `xml:"byteOrder,attr"`
	Package   string      `xml:"package,attr"`
	Types     xmlTypes    `xml:"types"`
	Messages  []xmlMessage `xml:"message"`
}

type xmlTypes struct {
	Types      []xmlType      `xml:"type"`
	Enums      []xmlEnum      `xml:"enum"`
	Sets       []xmlSet       `xml:"set"`
	Refs       []xmlRef       `xml:"ref"`
	Composites []xmlComposite `xml:"composite"`
}

type xmlType struct {
	Name          string `xml:"name,attr"`
	PrimitiveType string `xml:"primitiveType,attr"`
	Length        int    `xml:"length,attr"`
}

type xmlValidValue struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type xmlEnum struct {
	Name         string          `xml:"name,attr"`
	EncodingType string          `xml:"encodingType,attr"`
	ValidValues  []xmlValidValue `xml:"validValue"`
}

type xmlChoice struct {
	Name string `xml:"name,attr"`
	Bit  string `xml:",chardata"`
}

type xmlSet struct {
	Name         string      `xml:"name,attr"`
	EncodingType string      `xml:"encodingType,attr"`
	Choices      []xmlChoice `xml:"choice"`
}

type xmlRef struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

// xmlMember is one member of a composite, preserving the document order of
// mixed <type>/<enum>/<set>/<ref> children, which matters because each
// member's offset is the running sum of its predecessors' sizes.
type xmlMember struct {
	Kind string // "type", "enum", "set", or "ref"
	Type *xmlType
	Enum *xmlEnum
	Set  *xmlSet
	Ref  *xmlRef
}

func (m xmlMember) name() string {
	switch m.Kind {
	case "type":
		return m.Type.Name
	case "enum":
		return m.Enum.Name
	case "set":
		return m.Set.Name
	case "ref":
		return m.Ref.Name
	default:
		return ""
	}
}

type xmlComposite struct {
	Name    string
	Members []xmlMember
}

// UnmarshalXML decodes a <composite> element token-by-token so that the
// declared order across its differently-named children is preserved.
func (c *xmlComposite) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		if a.Name.Local == "name" {
			c.Name = a.Value
		}
	}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "type":
				var v xmlType
				if err := d.DecodeElement(&v, &t); err != nil {
					return err
				}
				c.Members = append(c.Members, xmlMember{Kind: "type", Type: &v})
			case "enum":
				var v xmlEnum
				if err := d.DecodeElement(&v, &t); err != nil {
					return err
				}
				c.Members = append(c.Members, xmlMember{Kind: "enum", Enum: &v})
			case "set":
				var v xmlSet
				if err := d.DecodeElement(&v, &t); err != nil {
					return err
				}
				c.Members = append(c.Members, xmlMember{Kind: "set", Set: &v})
			case "ref":
				var v xmlRef
				if err := d.DecodeElement(&v, &t); err != nil {
					return err
				}
				c.Members = append(c.Members, xmlMember{Kind: "ref", Ref: &v})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "composite" {
				return nil
			}
		}
	}
}

type xmlField struct {
	ID           int    `xml:"id,attr"`
	Name         string `xml:"name,attr"`
	Type         string `xml:"type,attr"`
	Offset       string `xml:"offset,attr"`
	SinceVersion int    `xml:"sinceVersion,attr"`
}

type xmlData struct {
	ID           int    `xml:"id,attr"`
	Name         string `xml:"name,attr"`
	Type         string `xml:"type,attr"`
	SinceVersion int    `xml:"sinceVersion,attr"`
}

type xmlGroup struct {
	ID            int        `xml:"id,attr"`
	Name          string     `xml:"name,attr"`
	BlockLength   int        `xml:"blockLength,attr"`
	DimensionType string     `xml:"dimensionType,attr"`
	SinceVersion  int        `xml:"sinceVersion,attr"`
	Fields        []xmlField `xml:"field"`
	Groups        []xmlGroup `xml:"group"`
	Data          []xmlData  `xml:"data"`
}

type xmlMessage struct {
	ID           int        `xml:"id,attr"`
	Name         string     `xml:"name,attr"`
	BlockLength  int        `xml:"blockLength,attr"`
	SinceVersion int        `xml:"sinceVersion,attr"`
	Fields       []xmlField `xml:"field"`
	Groups       []xmlGroup `xml:"group"`
	Data         []xmlData  `xml:"data"`
}
