package engine

import (
	"strings"
)

// SingleLineMax is the largest specifier count rendered on one line.
// Longer lists render one specifier per line.
const SingleLineMax = 3

const specIndent = "  "

// RenderDeclaration renders a named-import declaration for module. The
// quote byte preserves the original file's quote style.
func RenderDeclaration(specs []Specifier, module string, typeOnly bool, quote byte) string {
	var b strings.Builder

	b.WriteString("import ")

	if typeOnly {
		b.WriteString("type ")
	}

	if len(specs) <= SingleLineMax {
		b.WriteString("{ ")

		for i, spec := range specs {
			if i > 0 {
				b.WriteString(", ")
			}

			b.WriteString(renderSpecifier(spec))
		}

		b.WriteString(" }")
	} else {
		b.WriteString("{\n")

		for i, spec := range specs {
			b.WriteString(specIndent)
			b.WriteString(renderSpecifier(spec))

			if i < len(specs)-1 {
				b.WriteByte(',')
			}

			b.WriteByte('\n')
		}

		b.WriteByte('}')
	}

	b.WriteString(" from ")
	b.WriteByte(quote)
	b.WriteString(module)
	b.WriteByte(quote)
	b.WriteByte(';')

	return b.String()
}

func renderSpecifier(spec Specifier) string {
	var b strings.Builder

	if spec.TypeOnly {
		b.WriteString("type ")
	}

	b.WriteString(spec.Name)

	if spec.Alias != "" {
		b.WriteString(" as ")
		b.WriteString(spec.Alias)
	}

	return b.String()
}
