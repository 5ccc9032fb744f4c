package schema

// ComputeFieldOffsets assigns each field's absolute byte offset as the sum
// of the preceding fields' sizes within the same block. If a field
// declares an explicit offset, it is validated against the computed value
// rather than overridden: the schema loader "validates that declared and
// computed offsets agree" before falling back to emitting the computed
// value when nothing was declared.
func ComputeFieldOffsets(fields []Field, types map[string]TypeDef, owner string) error {
	offset := 0
	lookup := &Schema{Types: types}
	for i := range fields {
		f := &fields[i]
		sz, err := f.Type.Size(lookup)
		if err != nil {
			return err
		}
		if f.DeclaredOffset != nil {
			if *f.DeclaredOffset != offset {
				return &Error{
					Kind:      OffsetMismatch,
					Construct: owner + "." + f.Name,
					Detail:    "declared offset disagrees with computed offset",
				}
			}
			f.Offset = *f.DeclaredOffset
		} else {
			f.Offset = offset
		}
		offset = f.Offset + sz
	}
	return nil
}
