package token

import (
	"bytes"

	"github.com/toon-format/go-toon/diag"
)

// validEscapes is the closed set of escape characters TOON recognizes
// after a backslash inside a quoted string.
const validEscapes = `nrt\"'`

// scanQuoted scans a quoted string starting at d[0], which must be a
// single or double quote. It never fails: an invalid escape is recorded
// and left verbatim in the token, and a string cut off by a newline or
// end of input is recorded as unterminated and emitted with everything
// scanned so far.
func scanQuoted(d []byte, at Pos, errs *diag.List) (consumed int) {
	q := d[0]
	i := 1
	for i < len(d) {
		c := d[i]
		switch c {
		case q:
			return i + 1
		case '\n':
			errs.Addf(diag.CodeUnterminatedString,
				at.Offset, i, at.Line, at.Col,
				"unterminated string")
			return i
		case '\\':
			if i+1 >= len(d) {
				i++
				continue
			}
			if bytes.IndexByte([]byte(validEscapes), d[i+1]) < 0 {
				errs.Addf(diag.CodeInvalidEscape,
					at.Offset+i, 2, at.Line, at.Col+i,
					"invalid escape sequence %q", string(d[i:i+2]))
			}
			i += 2
		default:
			i++
		}
	}
	errs.Addf(diag.CodeUnterminatedString,
		at.Offset, i, at.Line, at.Col,
		"unterminated string")
	return i
}

// Unquote decodes the raw bytes of a TString token. It is lenient: a
// missing closing quote or an unrecognized escape never fails, the
// offending text is kept verbatim. Unquote of an unquoted raw (for
// example a leading-zero numeric reclassified as a string) returns it
// as is.
func Unquote(d []byte) string {
	if len(d) == 0 {
		return ""
	}
	q := d[0]
	if q != '"' && q != '\'' {
		return string(d)
	}
	d = d[1:]
	if len(d) > 0 && d[len(d)-1] == q {
		d = d[:len(d)-1]
	}
	if bytes.IndexByte(d, '\\') < 0 {
		return string(d)
	}
	var b bytes.Buffer
	b.Grow(len(d))
	for i := 0; i < len(d); i++ {
		c := d[i]
		if c != '\\' || i+1 >= len(d) {
			b.WriteByte(c)
			continue
		}
		switch d[i+1] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\', '"', '\'':
			b.WriteByte(d[i+1])
		default:
			// invalid escape: keep the backslash and the
			// character verbatim
			b.WriteByte(c)
			b.WriteByte(d[i+1])
		}
		i++
	}
	return b.String()
}

// Quote encodes s as a double quoted TOON string.
func Quote(s string) string {
	var b bytes.Buffer
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// NeedsQuote reports whether s cannot survive a round trip as a bare
// word and must be double quoted when encoded.
func NeedsQuote(s string) bool {
	if s == "" || s == "-" {
		return true
	}
	switch s {
	case "true", "false", "null":
		return true
	}
	// anything the lexer would read back as numeric, including
	// leading-zero forms, needs quotes to stay a string
	if n, _, _ := number([]byte(s)); n == len(s) {
		return true
	}
	if s[0] == ' ' || s[len(s)-1] == ' ' {
		return true
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case ':', ',', '|', '[', ']', '{', '}', '"', '\'', '#':
			return true
		default:
			if c < 0x20 {
				return true
			}
		}
		if s[i] == '/' && i+1 < len(s) && s[i+1] == '/' && i > 0 && s[i-1] == ' ' {
			return true
		}
	}
	return false
}
