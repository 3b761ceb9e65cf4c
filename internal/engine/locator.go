package engine

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrMalformedImport indicates a named-import block that could not be
// parsed (unbalanced braces, missing "from", missing module string).
// Callers leave the file untouched and flag it for manual review.
var ErrMalformedImport = errors.New("malformed import declaration")

// Specifier is one imported name, optionally renamed on import with
// "Name as Alias" and optionally marked as a type-only import.
type Specifier struct {
	Name     string
	Alias    string
	TypeOnly bool
}

// Local returns the name the rest of the file refers to: the alias when
// present, the imported name otherwise.
func (s Specifier) Local() string {
	if s.Alias != "" {
		return s.Alias
	}

	return s.Name
}

// Declaration is one named-import declaration located in a file, with the
// exact byte span it occupies so it can be replaced in place.
type Declaration struct {
	Specifiers []Specifier
	Module     string
	Quote      byte
	TypeOnly   bool
	Start      int
	End        int
}

// LocateImports finds every named-import declaration pulling from module,
// in source order. Default, namespace, side-effect and dynamic imports
// are not named declarations and are never returned. A named-import block
// that cannot be parsed yields ErrMalformedImport regardless of which
// module it targets, because its module string is unreachable.
func LocateImports(src []byte, module string) ([]Declaration, error) {
	if !bytes.Contains(src, []byte(module)) {
		return nil, nil
	}

	mask := codeMask(src)

	var decls []Declaration

	// A UTF-8 BOM would otherwise glue itself onto the first identifier.
	scanStart := 0
	if bytes.HasPrefix(src, []byte{0xEF, 0xBB, 0xBF}) {
		scanStart = 3
	}

	for i := scanStart; i < len(src); i++ {
		if !mask[i] || !isIdentStart(src[i]) {
			continue
		}

		start := i
		for i < len(src) && isIdentByte(src[i]) {
			i++
		}

		if string(src[start:i]) != "import" {
			continue
		}

		decl, end, err := parseImport(src, start, i)
		if err != nil {
			return nil, err
		}

		if decl == nil {
			// Not a named import; keep scanning after the keyword.
			continue
		}

		i = end - 1

		if decl.Module == module {
			decls = append(decls, *decl)
		}
	}

	return decls, nil
}

// parseImport parses a named-import declaration whose "import" keyword
// occupies src[kwStart:kwEnd]. It returns (nil, 0, nil) when the
// declaration is some other import form.
func parseImport(src []byte, kwStart, kwEnd int) (*Declaration, int, error) {
	r := &tokenReader{src: src, pos: kwEnd}
	r.skipTrivia()

	typeOnly := false

	if r.peek() != '{' {
		word, ok := r.ident()
		if !ok || word != "type" {
			return nil, 0, nil
		}

		r.skipTrivia()

		if r.peek() != '{' {
			// "import type Default from ..." or similar; unsupported form.
			return nil, 0, nil
		}

		typeOnly = true
	}

	r.pos++ // consume '{'

	specs, specErr := parseSpecifiers(r)
	if specErr != nil {
		return nil, 0, specErr
	}

	r.skipTrivia()

	word, ok := r.ident()
	if !ok || word != "from" {
		return nil, 0, fmt.Errorf("%w: missing \"from\" at offset %d", ErrMalformedImport, r.pos)
	}

	r.skipTrivia()

	module, quote, strOk := r.stringLit()
	if !strOk {
		return nil, 0, fmt.Errorf("%w: missing module string at offset %d", ErrMalformedImport, r.pos)
	}

	// A trailing semicolon belongs to the declaration span.
	end := r.pos
	if end < len(src) && src[end] == ';' {
		end++
	}

	return &Declaration{
		Specifiers: specs,
		Module:     module,
		Quote:      quote,
		TypeOnly:   typeOnly,
		Start:      kwStart,
		End:        end,
	}, end, nil
}

// parseSpecifiers consumes a brace-enclosed specifier list, the reader
// positioned just past '{'. Tolerates trailing commas, arbitrary
// whitespace and comments between tokens.
func parseSpecifiers(r *tokenReader) ([]Specifier, error) {
	var specs []Specifier

	for {
		r.skipTrivia()

		if r.peek() == '}' {
			r.pos++

			return specs, nil
		}

		spec, err := parseSpecifier(r)
		if err != nil {
			return nil, err
		}

		specs = append(specs, spec)

		r.skipTrivia()

		switch r.peek() {
		case ',':
			r.pos++
		case '}':
			// Closing brace handled on the next pass.
		default:
			return nil, fmt.Errorf("%w: unexpected byte at offset %d", ErrMalformedImport, r.pos)
		}
	}
}

func parseSpecifier(r *tokenReader) (Specifier, error) {
	var spec Specifier

	name, ok := r.ident()
	if !ok {
		return spec, fmt.Errorf("%w: expected specifier name at offset %d", ErrMalformedImport, r.pos)
	}

	// Per-specifier type prefix: "{ type LucideIcon }". A following "as"
	// means type is itself the imported symbol ("{ type as T }").
	if name == "type" {
		mark := r.pos
		r.skipTrivia()

		if inner, innerOk := r.ident(); innerOk && inner != "as" {
			spec.TypeOnly = true
			name = inner
		} else {
			r.pos = mark
		}
	}

	spec.Name = name

	mark := r.pos
	r.skipTrivia()

	if word, wordOk := r.ident(); wordOk {
		if word != "as" {
			return spec, fmt.Errorf("%w: unexpected token %q at offset %d", ErrMalformedImport, word, r.pos)
		}

		r.skipTrivia()

		alias, aliasOk := r.ident()
		if !aliasOk {
			return spec, fmt.Errorf("%w: expected alias at offset %d", ErrMalformedImport, r.pos)
		}

		spec.Alias = alias
	} else {
		r.pos = mark
	}

	return spec, nil
}

// tokenReader is a minimal cursor over source bytes for parsing import
// headers. It understands only the trivia (whitespace and comments),
// identifiers and string literals that can appear there.
type tokenReader struct {
	src []byte
	pos int
}

func (r *tokenReader) peek() byte {
	if r.pos >= len(r.src) {
		return 0
	}

	return r.src[r.pos]
}

func (r *tokenReader) skipTrivia() {
	for r.pos < len(r.src) {
		c := r.src[r.pos]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			r.pos++
		case c == '/' && r.pos+1 < len(r.src) && r.src[r.pos+1] == '/':
			for r.pos < len(r.src) && r.src[r.pos] != '\n' {
				r.pos++
			}
		case c == '/' && r.pos+1 < len(r.src) && r.src[r.pos+1] == '*':
			r.pos += 2
			for r.pos+1 < len(r.src) && !(r.src[r.pos] == '*' && r.src[r.pos+1] == '/') {
				r.pos++
			}
			r.pos += 2
		default:
			return
		}
	}
}

func (r *tokenReader) ident() (string, bool) {
	if r.pos >= len(r.src) || !isIdentStart(r.src[r.pos]) {
		return "", false
	}

	start := r.pos
	for r.pos < len(r.src) && isIdentByte(r.src[r.pos]) {
		r.pos++
	}

	return string(r.src[start:r.pos]), true
}

func (r *tokenReader) stringLit() (string, byte, bool) {
	quote := r.peek()
	if quote != '\'' && quote != '"' {
		return "", 0, false
	}

	r.pos++
	start := r.pos

	for r.pos < len(r.src) {
		c := r.src[r.pos]

		switch c {
		case '\\':
			r.pos += 2

			continue
		case quote:
			value := string(r.src[start:r.pos])
			r.pos++

			return value, quote, true
		case '\n':
			return "", 0, false
		}

		r.pos++
	}

	return "", 0, false
}
