package schema

import "fmt"

// Validate runs every structural check from the loader's responsibilities
// and returns every violation found, rather than stopping at the first one,
// so a single bad schema document reports all offending constructs at once.
func Validate(s *Schema) []error {
	var errs []error

	seenTemplate := make(map[[2]int]bool) // [templateId, sinceVersion]
	for _, m := range s.Messages {
		key := [2]int{m.ID, m.SinceVersion}
		if seenTemplate[key] {
			errs = append(errs, &Error{Kind: DuplicateID, Construct: "message " + m.Name, Detail: fmt.Sprintf("duplicate (templateId=%d, version=%d)", m.ID, m.SinceVersion)})
		}
		seenTemplate[key] = true

		if err := validateMonotonicOffsets(m.Fields, "message "+m.Name); err != nil {
			errs = append(errs, err)
		}
		sum := sumFieldSizes(s, m.Fields)
		if m.BlockLength < sum {
			errs = append(errs, &Error{
				Kind:      OffsetMismatch,
				Construct: "message " + m.Name,
				Detail:    fmt.Sprintf("blockLength %d smaller than sum of root field sizes %d", m.BlockLength, sum),
			})
		}
		errs = append(errs, validateGroups(s, m.Groups, "message "+m.Name)...)
	}

	return errs
}

func validateGroups(s *Schema, groups []Group, owner string) []error {
	var errs []error
	for _, g := range groups {
		construct := owner + "." + g.Name
		if err := validateMonotonicOffsets(g.Fields, construct); err != nil {
			errs = append(errs, err)
		}
		sum := sumFieldSizes(s, g.Fields)
		if g.BlockLength < sum {
			errs = append(errs, &Error{
				Kind:      OffsetMismatch,
				Construct: construct,
				Detail:    fmt.Sprintf("blockLength %d smaller than sum of field sizes %d", g.BlockLength, sum),
			})
		}
		errs = append(errs, validateGroups(s, g.Groups, construct)...)
	}
	return errs
}

// validateMonotonicOffsets re-checks, independent of ComputeFieldOffsets,
// that the field offsets within a block are strictly increasing — the
// spec.md invariant that root-field offsets are strictly monotonic.
func validateMonotonicOffsets(fields []Field, owner string) error {
	last := -1
	for _, f := range fields {
		if f.Offset <= last {
			return &Error{Kind: OffsetMismatch, Construct: owner + "." + f.Name, Detail: "field offsets are not strictly monotonic"}
		}
		last = f.Offset
	}
	return nil
}

func sumFieldSizes(s *Schema, fields []Field) int {
	sum := 0
	for _, f := range fields {
		sz, err := f.Type.Size(s)
		if err != nil {
			continue
		}
		sum += sz
	}
	return sum
}
