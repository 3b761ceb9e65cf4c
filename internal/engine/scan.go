package engine

// Lexical-context scanning for JS/TS source. The rewrite engine never
// builds a syntax tree; it only needs to know, per byte, whether that
// byte is code or string/comment content so substitutions cannot corrupt
// literals.

const (
	ctxCode = iota
	ctxLineComment
	ctxBlockComment
	ctxSingleQuote
	ctxDoubleQuote
	ctxTemplate
)

// codeMask returns a slice the length of src where mask[i] is true when
// src[i] is code rather than string or comment content. String delimiters
// and comment markers count as content. Template-literal interpolations
// (`${...}`) count as code, nested templates included.
func codeMask(src []byte) []bool {
	mask := make([]bool, len(src))
	state := ctxCode

	// Brace depth of each open template interpolation, innermost last.
	// A '}' at depth zero closes the interpolation and resumes the
	// enclosing template literal.
	var interp []int

	for i := 0; i < len(src); i++ {
		c := src[i]

		switch state {
		case ctxCode:
			switch {
			case c == '/' && i+1 < len(src) && src[i+1] == '/':
				state = ctxLineComment
				i++
			case c == '/' && i+1 < len(src) && src[i+1] == '*':
				state = ctxBlockComment
				i++
			case c == '\'':
				if quoteClosesOnLine(src, i, '\'') {
					state = ctxSingleQuote
				} else {
					mask[i] = true
				}
			case c == '"':
				if quoteClosesOnLine(src, i, '"') {
					state = ctxDoubleQuote
				} else {
					mask[i] = true
				}
			case c == '`':
				state = ctxTemplate
			case c == '{' && len(interp) > 0:
				interp[len(interp)-1]++
				mask[i] = true
			case c == '}' && len(interp) > 0:
				if interp[len(interp)-1] == 0 {
					interp = interp[:len(interp)-1]
					state = ctxTemplate
				} else {
					interp[len(interp)-1]--
					mask[i] = true
				}
			default:
				mask[i] = true
			}

		case ctxLineComment:
			if c == '\n' {
				state = ctxCode
			}

		case ctxBlockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				state = ctxCode
				i++
			}

		case ctxSingleQuote, ctxDoubleQuote:
			quote := byte('\'')
			if state == ctxDoubleQuote {
				quote = '"'
			}

			switch {
			case c == '\\':
				i++
			case c == quote:
				state = ctxCode
			case c == '\n':
				// Unterminated string; do not poison the rest of the file.
				state = ctxCode
			}

		case ctxTemplate:
			switch {
			case c == '\\':
				i++
			case c == '`':
				state = ctxCode
			case c == '$' && i+1 < len(src) && src[i+1] == '{':
				interp = append(interp, 0)
				state = ctxCode
				i++
			}
		}
	}

	return mask
}

// quoteClosesOnLine reports whether the quote opened at src[i] terminates
// before the end of its line. A raw newline is illegal inside a JS quoted
// string, so an opener with no closer on the line is plain text, not a
// string delimiter. Apostrophes in JSX copy ("It's ...") hit this case.
// An escaped newline is a legal line continuation and keeps the scan going.
func quoteClosesOnLine(src []byte, i int, quote byte) bool {
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case quote:
			return true
		case '\n':
			return false
		}
	}

	return false
}

// isIdentStart reports whether c can begin a JS identifier. Multi-byte
// UTF-8 sequences are treated as identifier characters so substitution
// never splits a Unicode identifier.
func isIdentStart(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

// isIdentByte reports whether c can continue a JS identifier.
func isIdentByte(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
