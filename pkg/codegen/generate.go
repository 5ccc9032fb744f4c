// Package codegen turns a parsed schema into Go source: one encoder and one
// decoder per message, plus the enum, set, and composite types they depend
// on. Generated accessors call straight into pkg/sbe — no reflection, no
// interface dispatch, one function call per field.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"

	"github.com/luxfi/sbe/pkg/schema"
)

// Options controls where Generate reads from and what it emits.
type Options struct {
	SchemaPath string
	OutputDir  string
	GoPackage  string
}

// Generate loads the schema at opts.SchemaPath, renders it, and writes a
// single codec.go under opts.OutputDir. The output is gofmt'd before being
// written; a formatting failure means the template produced invalid Go and
// is returned as an error rather than silently writing broken source.
func Generate(opts Options) error {
	s, err := schema.LoadFile(opts.SchemaPath)
	if err != nil {
		return fmt.Errorf("codegen: loading schema: %w", err)
	}
	if s.Header != schema.DefaultHeaderSpec() {
		return fmt.Errorf("codegen: schema declares a non-default messageHeader composite; generated code always uses the 8-byte default layout (pkg/sbe.MessageHeaderSize)")
	}
	if s.GroupHeader != schema.DefaultGroupHeaderSpec() {
		return fmt.Errorf("codegen: schema declares a non-default groupSizeEncoding composite; generated code always uses the 4-byte default layout (pkg/sbe.GroupHeaderSize)")
	}

	pkg := opts.GoPackage
	if pkg == "" {
		pkg = s.Package
	}
	if pkg == "" {
		pkg = "sbegen"
	}

	ir, err := buildSchemaIR(s, pkg)
	if err != nil {
		return fmt.Errorf("codegen: building IR: %w", err)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "header", ir); err != nil {
		return fmt.Errorf("codegen: header template: %w", err)
	}
	for _, e := range ir.Enums {
		if err := templates.ExecuteTemplate(&buf, "enum", e); err != nil {
			return fmt.Errorf("codegen: enum %s: %w", e.Name, err)
		}
	}
	for _, st := range ir.Sets {
		if err := templates.ExecuteTemplate(&buf, "set", st); err != nil {
			return fmt.Errorf("codegen: set %s: %w", st.Name, err)
		}
	}
	for _, c := range ir.Composites {
		if err := templates.ExecuteTemplate(&buf, "composite", c); err != nil {
			return fmt.Errorf("codegen: composite %s: %w", c.Name, err)
		}
	}
	for _, m := range ir.Messages {
		if err := templates.ExecuteTemplate(&buf, "message", m); err != nil {
			return fmt.Errorf("codegen: message %s: %w", m.Name, err)
		}
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("codegen: generated source does not gofmt: %w", err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("codegen: creating output dir: %w", err)
	}
	outPath := filepath.Join(opts.OutputDir, "codec.go")
	if err := os.WriteFile(outPath, formatted, 0o644); err != nil {
		return fmt.Errorf("codegen: writing %s: %w", outPath, err)
	}
	return nil
}
