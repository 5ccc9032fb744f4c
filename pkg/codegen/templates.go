package codegen

import "text/template"

// funcMap is shared across every template so helper expressions look the
// same in enum, set, composite, and message bodies.
var funcMap = template.FuncMap{}

const headerTmplText = `// Code generated by sbegen. DO NOT EDIT.

package {{.Package}}

import (
	"encoding/binary"

	"github.com/luxfi/sbe/pkg/sbe"
)

// SchemaID and SchemaVersion identify the schema this file was generated
// from; encoders write them into the message header. Decoders check only
// the header's template id, not its schema id or version.
const (
	SchemaID      = {{.SchemaID}}
	SchemaVersion = {{.Version}}
)

var byteOrder binary.ByteOrder = {{.ByteOrder}}
`

const enumTmplText = `
type {{.GoName}} {{.Prim.GoType}}

const (
{{- range .Values}}
	{{.GoName}} {{$.GoName}} = {{.Value}}
{{- end}}
	{{.GoName}}NullValue {{.GoName}} = {{.GoName}}({{.Prim.Null}})
)
`

const setTmplText = `
type {{.GoName}} {{.Prim.GoType}}

const (
{{- range .Choices}}
	{{.GoName}} {{$.GoName}} = 1 << {{.Bit}}
{{- end}}
)

func (v {{.GoName}}) Has(bit {{.GoName}}) bool { return v&bit != 0 }
func (v *{{.GoName}}) Set(bit {{.GoName}})      { *v |= bit }
func (v *{{.GoName}}) Clear(bit {{.GoName}})    { *v &^= bit }
`

const compositeTmplText = `
// {{.GoName}} is {{.Size}} bytes on the wire.
type {{.GoName}} struct {
{{- range .Members}}
{{- if eq .Kind "char"}}
	{{.GoName}} [{{.ArrayLen}}]byte
{{- else if eq .Kind "composite"}}
	{{.GoName}} {{.RefType}}
{{- else if or (eq .Kind "enum") (eq .Kind "set")}}
	{{.GoName}} {{.RefType}}
{{- else}}
	{{.GoName}} {{.Prim.GoType}}
{{- end}}
{{- end}}
}

func (c *{{.GoName}}) Encode(buf []byte, offset int) {
{{- range .Members}}
{{- if eq .Kind "char"}}
	sbe.PutCharArray(buf, offset+{{.Offset}}, {{.ArrayLen}}, c.{{.GoName}}[:])
{{- else if eq .Kind "composite"}}
	c.{{.GoName}}.Encode(buf, offset+{{.Offset}})
{{- else if .Prim.Ordered}}
	{{.Prim.Setter}}(buf, offset+{{.Offset}}, {{if or (eq .Kind "enum") (eq .Kind "set")}}{{.Prim.GoType}}(c.{{.GoName}}){{else}}c.{{.GoName}}{{end}}, byteOrder)
{{- else}}
	{{.Prim.Setter}}(buf, offset+{{.Offset}}, {{if or (eq .Kind "enum") (eq .Kind "set")}}{{.Prim.GoType}}(c.{{.GoName}}){{else}}c.{{.GoName}}{{end}})
{{- end}}
{{- end}}
}

func (c *{{.GoName}}) Decode(buf []byte, offset int) {
{{- range .Members}}
{{- if eq .Kind "char"}}
	copy(c.{{.GoName}}[:], sbe.GetCharArray(buf, offset+{{.Offset}}, {{.ArrayLen}}))
{{- else if eq .Kind "composite"}}
	c.{{.GoName}}.Decode(buf, offset+{{.Offset}})
{{- else if .Prim.Ordered}}
	c.{{.GoName}} = {{if or (eq .Kind "enum") (eq .Kind "set")}}{{.RefType}}({{.Prim.Getter}}(buf, offset+{{.Offset}}, byteOrder)){{else}}{{.Prim.Getter}}(buf, offset+{{.Offset}}, byteOrder){{end}}
{{- else}}
	c.{{.GoName}} = {{if or (eq .Kind "enum") (eq .Kind "set")}}{{.RefType}}({{.Prim.Getter}}(buf, offset+{{.Offset}})){{else}}{{.Prim.Getter}}(buf, offset+{{.Offset}}){{end}}
{{- end}}
{{- end}}
}
`

// fieldAccessorTmplText is shared by message and group encoders/decoders:
// one getter and one chained setter per fixed field. Decoder getters for a
// field with SinceVersion > 0 check the wrapped header's version first and
// return the field's null sentinel when the field was not yet present —
// schema evolution never fails a decode, it reports absence.
const fieldAccessorTmplText = `
{{- range .Fields}}
{{- $versioned := and $.IsDecoder (gt .SinceVersion 0)}}
{{- if eq .Kind "char"}}
func (e *{{$.RecvType}}) {{.GoName}}() []byte {
{{- if $versioned}}
	if e.header.Version < {{.SinceVersion}} {
		return nil
	}
{{- end}}
	return sbe.TrimPadding(sbe.GetCharArray(e.buf, e.offset+{{.Offset}}, {{.ArrayLen}}))
}
func (e *{{$.RecvType}}) Set{{.GoName}}(v []byte) *{{$.RecvType}} {
	sbe.PutCharArray(e.buf, e.offset+{{.Offset}}, {{.ArrayLen}}, v)
	return e
}
{{- else if eq .Kind "composite"}}
func (e *{{$.RecvType}}) {{.GoName}}() {{.RefType}} {
	var v {{.RefType}}
	v.Decode(e.buf, e.offset+{{.Offset}})
	return v
}
func (e *{{$.RecvType}}) Set{{.GoName}}(v {{.RefType}}) *{{$.RecvType}} {
	v.Encode(e.buf, e.offset+{{.Offset}})
	return e
}
{{- else if .Prim.Ordered}}
func (e *{{$.RecvType}}) {{.GoName}}() {{if or (eq .Kind "enum") (eq .Kind "set")}}{{.RefType}}{{else}}{{.Prim.GoType}}{{end}} {
{{- if $versioned}}
	if e.header.Version < {{.SinceVersion}} {
		return {{if or (eq .Kind "enum") (eq .Kind "set")}}{{.RefType}}({{.Prim.Null}}){{else}}{{.Prim.Null}}{{end}}
	}
{{- end}}
	return {{if or (eq .Kind "enum") (eq .Kind "set")}}{{.RefType}}({{.Prim.Getter}}(e.buf, e.offset+{{.Offset}}, byteOrder)){{else}}{{.Prim.Getter}}(e.buf, e.offset+{{.Offset}}, byteOrder){{end}}
}
func (e *{{$.RecvType}}) Set{{.GoName}}(v {{if or (eq .Kind "enum") (eq .Kind "set")}}{{.RefType}}{{else}}{{.Prim.GoType}}{{end}}) *{{$.RecvType}} {
	{{.Prim.Setter}}(e.buf, e.offset+{{.Offset}}, {{.Prim.GoType}}(v), byteOrder)
	return e
}
{{- else}}
func (e *{{$.RecvType}}) {{.GoName}}() {{if or (eq .Kind "enum") (eq .Kind "set")}}{{.RefType}}{{else}}{{.Prim.GoType}}{{end}} {
{{- if $versioned}}
	if e.header.Version < {{.SinceVersion}} {
		return {{if or (eq .Kind "enum") (eq .Kind "set")}}{{.RefType}}({{.Prim.Null}}){{else}}{{.Prim.Null}}{{end}}
	}
{{- end}}
	return {{if or (eq .Kind "enum") (eq .Kind "set")}}{{.RefType}}({{.Prim.Getter}}(e.buf, e.offset+{{.Offset}})){{else}}{{.Prim.Getter}}(e.buf, e.offset+{{.Offset}}){{end}}
}
func (e *{{$.RecvType}}) Set{{.GoName}}(v {{if or (eq .Kind "enum") (eq .Kind "set")}}{{.RefType}}{{else}}{{.Prim.GoType}}{{end}}) *{{$.RecvType}} {
	{{.Prim.Setter}}(e.buf, e.offset+{{.Offset}}, {{.Prim.GoType}}(v))
	return e
}
{{- end}}
{{- end}}
`

// groupTmplText is recursive: a group's Entry can itself own nested groups
// and var-data, and each nested group is rendered by another instantiation
// of this same template. Every level — the message Encoder/Decoder and
// every Entry down the nesting chain — shares one cursor int by address,
// since SBE encodes/decodes a message as a single strictly-forward sweep
// over the buffer regardless of nesting depth. A Group's Next() reads that
// shared cursor fresh on every call, so it always starts the next entry
// right after everything — fixed block, nested groups, nested var-data —
// the previous entry actually wrote or consumed.
const groupTmplText = `
// {{.TypeName}}Group sequences entries of the {{.G.Name}} repeating group.
// Entries must be consumed in order: populate (or read) one entry fully,
// including any of its own nested groups and var-data, before calling
// Next() again.
type {{.TypeName}}Group struct {
	buf    []byte
	cursor *int
	count  int
	index  int
}

func (g *{{.TypeName}}Group) Count() int { return g.count }

func (g *{{.TypeName}}Group) HasNext() bool { return g.index < g.count }

func (g *{{.TypeName}}Group) Next() *{{.TypeName}}Entry {
	e := &{{.TypeName}}Entry{buf: g.buf, offset: *g.cursor, cursor: g.cursor}
	*g.cursor += {{.G.BlockLength}}
	g.index++
	return e
}

// {{.TypeName}}Entry is one entry of the {{.G.Name}} repeating group.
type {{.TypeName}}Entry struct {
	buf    []byte
	offset int
	cursor *int
}

{{template "fieldAccessor" (dict "RecvType" (print .TypeName "Entry") "Fields" .G.Fields "IsDecoder" false)}}

{{$entry := print .TypeName "Entry"}}
{{range .G.Groups}}
func (e *{{$entry}}) {{.GoName}}Count(n int) *{{$.TypeName}}{{.GoName}}Group {
	sbe.EncodeGroupHeader(e.buf, *e.cursor, sbe.GroupHeader{BlockLength: {{.BlockLength}}, NumInGroup: uint16(n)}, byteOrder)
	*e.cursor += sbe.GroupHeaderSize
	return &{{$.TypeName}}{{.GoName}}Group{buf: e.buf, cursor: e.cursor, count: n}
}

func (e *{{$entry}}) {{.GoName}}Group() (*{{$.TypeName}}{{.GoName}}Group, error) {
	h, err := sbe.DecodeGroupHeader(e.buf, *e.cursor, byteOrder)
	if err != nil {
		return nil, err
	}
	*e.cursor += sbe.GroupHeaderSize
	return &{{$.TypeName}}{{.GoName}}Group{buf: e.buf, cursor: e.cursor, count: int(h.NumInGroup)}, nil
}
{{end}}

{{range .G.VarData}}
func (e *{{$entry}}) Set{{.GoName}}(v []byte) (*{{$entry}}, error) {
	next, err := sbe.EncodeVarDataU{{if eq .Width 4}}32{{else}}16{{end}}(e.buf, *e.cursor, v, byteOrder)
	if err != nil {
		return e, err
	}
	*e.cursor = next
	return e, nil
}

func (e *{{$entry}}) {{.GoName}}() ([]byte, error) {
	v, next, err := sbe.DecodeVarDataU{{if eq .Width 4}}32{{else}}16{{end}}(e.buf, *e.cursor, byteOrder)
	if err != nil {
		return nil, err
	}
	*e.cursor = next
	return v, nil
}
{{end}}

{{range .G.Groups}}
{{template "group" (dict "TypeName" (print $.TypeName .GoName) "G" .)}}
{{end}}
`

const messageTmplText = `
// {{.GoName}}Encoder wraps a buffer for writing a {{.Name}} (template id {{.ID}}).
type {{.GoName}}Encoder struct {
	buf    []byte
	offset int
	limit  int
}

// Wrap{{.GoName}}Encoder positions an encoder immediately past the message header
// at headerOffset+sbe.MessageHeaderSize, and writes that header.
func Wrap{{.GoName}}Encoder(buf []byte, headerOffset int) (*{{.GoName}}Encoder, error) {
	if headerOffset+sbe.MessageHeaderSize+{{.BlockLength}} > len(buf) {
		return nil, &sbe.Error{Kind: sbe.BufferTooSmall, Detail: "buffer too small for {{.Name}}"}
	}
	sbe.EncodeMessageHeader(buf[headerOffset:], sbe.MessageHeader{
		BlockLength: {{.BlockLength}},
		TemplateID:  {{.ID}},
		SchemaID:    SchemaID,
		Version:     SchemaVersion,
	}, byteOrder)
	e := &{{.GoName}}Encoder{buf: buf, offset: headerOffset + sbe.MessageHeaderSize, limit: headerOffset + sbe.MessageHeaderSize + {{.BlockLength}}}
	return e, nil
}

func (e *{{.GoName}}Encoder) EncodedLength() int { return e.limit - (e.offset - sbe.MessageHeaderSize) }

{{template "fieldAccessor" (dict "RecvType" (print .GoName "Encoder") "Fields" .Fields "IsDecoder" false)}}

{{$msg := .GoName}}
{{range .Groups}}
func (e *{{$msg}}Encoder) {{.GoName}}Count(n int) *{{$msg}}{{.GoName}}Group {
	sbe.EncodeGroupHeader(e.buf, e.limit, sbe.GroupHeader{BlockLength: {{.BlockLength}}, NumInGroup: uint16(n)}, byteOrder)
	e.limit += sbe.GroupHeaderSize
	return &{{$msg}}{{.GoName}}Group{buf: e.buf, cursor: &e.limit, count: n}
}
{{end}}

{{range .VarData}}
func (e *{{$msg}}Encoder) Set{{.GoName}}(v []byte) (*{{$msg}}Encoder, error) {
	next, err := sbe.EncodeVarDataU{{if eq .Width 4}}32{{else}}16{{end}}(e.buf, e.limit, v, byteOrder)
	if err != nil {
		return e, err
	}
	e.limit = next
	return e, nil
}
{{end}}

{{range .Groups}}
{{template "group" (dict "TypeName" (print $msg .GoName) "G" .)}}
{{end}}

// {{.GoName}}Decoder wraps a buffer for reading a {{.Name}}.
type {{.GoName}}Decoder struct {
	buf    []byte
	offset int
	limit  int
	header sbe.MessageHeader
}

// Wrap{{.GoName}}Decoder reads the message header at headerOffset and
// returns a decoder positioned at the root block, or UnknownTemplate if the
// header's templateId does not match.
func Wrap{{.GoName}}Decoder(buf []byte, headerOffset int) (*{{.GoName}}Decoder, error) {
	if headerOffset+sbe.MessageHeaderSize > len(buf) {
		return nil, &sbe.Error{Kind: sbe.BufferTooSmall, Detail: "buffer too small for message header"}
	}
	h := sbe.DecodeMessageHeader(buf[headerOffset:], byteOrder)
	if h.TemplateID != {{.ID}} {
		return nil, &sbe.Error{Kind: sbe.UnknownTemplate, Detail: "expected template {{.ID}}"}
	}
	d := &{{.GoName}}Decoder{
		buf:    buf,
		offset: headerOffset + sbe.MessageHeaderSize,
		limit:  headerOffset + sbe.MessageHeaderSize + int(h.BlockLength),
		header: h,
	}
	return d, nil
}

func (d *{{.GoName}}Decoder) Header() sbe.MessageHeader { return d.header }

{{template "fieldAccessor" (dict "RecvType" (print .GoName "Decoder") "Fields" .Fields "IsDecoder" true)}}

{{range .Groups}}
func (d *{{$msg}}Decoder) {{.GoName}}Group() (*{{$msg}}{{.GoName}}Group, error) {
	h, err := sbe.DecodeGroupHeader(d.buf, d.limit, byteOrder)
	if err != nil {
		return nil, err
	}
	d.limit += sbe.GroupHeaderSize
	return &{{$msg}}{{.GoName}}Group{buf: d.buf, cursor: &d.limit, count: int(h.NumInGroup)}, nil
}
{{end}}

{{range .VarData}}
func (d *{{$msg}}Decoder) {{.GoName}}() ([]byte, error) {
	v, next, err := sbe.DecodeVarDataU{{if eq .Width 4}}32{{else}}16{{end}}(d.buf, d.limit, byteOrder)
	if err != nil {
		return nil, err
	}
	d.limit = next
	return v, nil
}
{{end}}
`

func dict(pairs ...any) map[string]any {
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		m[pairs[i].(string)] = pairs[i+1]
	}
	return m
}

var templates = template.Must(template.New("root").Funcs(template.FuncMap{"dict": dict}).Funcs(funcMap).Parse(""))

func init() {
	template.Must(templates.New("header").Parse(headerTmplText))
	template.Must(templates.New("enum").Parse(enumTmplText))
	template.Must(templates.New("set").Parse(setTmplText))
	template.Must(templates.New("composite").Parse(compositeTmplText))
	template.Must(templates.New("fieldAccessor").Parse(fieldAccessorTmplText))
	template.Must(templates.New("group").Parse(groupTmplText))
	template.Must(templates.New("message").Parse(messageTmplText))
}
