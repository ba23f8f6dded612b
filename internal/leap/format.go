package leap

import "strings"

// Format returns the canonical form of a spec. It reports false when the
// text has syntax errors. Format is idempotent.
func Format(text string) (string, bool) {
	spec, diags := Parse("", text)
	if len(diags) > 0 {
		return "", false
	}
	return Print(spec), true
}

// Print renders a parsed spec canonically: one blank line between
// definitions, four-space member indentation, comments kept in place.
func Print(spec *Spec) string {
	var b strings.Builder
	for i, d := range spec.Defs {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, c := range d.Comments {
			b.WriteString(c)
			b.WriteByte('\n')
		}
		b.WriteString("." + d.Kind + " " + d.Name)
		if len(d.Params) > 0 {
			names := make([]string, len(d.Params))
			for j, p := range d.Params {
				names[j] = p.Name
			}
			b.WriteString("[" + strings.Join(names, ", ") + "]")
		}
		b.WriteByte('\n')

		for _, m := range d.Members {
			for _, c := range m.Comments {
				b.WriteString(indent + c + "\n")
			}
			b.WriteString(indent)
			if m.Name != "" {
				b.WriteString(m.Name + ": ")
			}
			b.WriteString(m.Type.String())
			b.WriteByte('\n')
		}
	}

	if len(spec.Trailing) > 0 {
		if len(spec.Defs) > 0 {
			b.WriteByte('\n')
		}
		for _, c := range spec.Trailing {
			b.WriteString(c)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
