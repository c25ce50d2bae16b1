package token

import (
	"github.com/toon-format/go-toon/diag"
)

// tokenizer holds the state for one pass over one document. It is
// constructed per call and discarded; nothing is shared across calls.
type tokenizer struct {
	d   []byte
	i   int
	pos Pos
	opt tokenOpts

	out   []Token
	errs  diag.List
	count int
	// set once the token ceiling is hit; scanning stops
	truncated bool
}

func (tk *tokenizer) emit(typ TokenType, raw []byte) bool {
	if tk.count >= tk.opt.maxTokens {
		if !tk.truncated {
			tk.truncated = true
			tk.errs.Addf(diag.CodeTokenLimit,
				tk.pos.Offset, len(raw), tk.pos.Line, tk.pos.Col,
				"token count exceeds limit of %d", tk.opt.maxTokens)
		}
		return false
	}
	tk.count++
	switch typ {
	case TString, TLiteral:
		if len(raw) > tk.opt.maxStrLen {
			tk.errs.Addf(diag.CodeStringTooLong,
				tk.pos.Offset, len(raw), tk.pos.Line, tk.pos.Col,
				"literal length %d exceeds limit of %d", len(raw), tk.opt.maxStrLen)
		}
	}
	tk.out = append(tk.out, Token{Type: typ, Pos: tk.pos, Bytes: raw})
	return true
}

// advance emits a token for d[i:i+n] and moves past it.
func (tk *tokenizer) advance(typ TokenType, n int) bool {
	raw := tk.d[tk.i : tk.i+n]
	ok := tk.emit(typ, raw)
	tk.i += n
	tk.pos = tk.pos.Advance(raw)
	return ok
}

func (tk *tokenizer) run() {
	d := tk.d
	n := len(d)

	// leading indentation of the first line
	if w := spaceRun(d); w > 0 {
		if !tk.advance(TIndent, w) {
			return
		}
	}
	for tk.i < n && !tk.truncated {
		c := d[tk.i]
		switch {
		case c == '\n':
			if !tk.advance(TNewline, 1) {
				return
			}
			if w := spaceRun(d[tk.i:]); w > 0 {
				if !tk.advance(TIndent, w) {
					return
				}
			}
		case c == ' ' || c == '\t' || c == '\r':
			if !tk.advance(TSpace, spaceRun(d[tk.i:])) {
				return
			}
		case c == '#':
			if !tk.advance(TComment, lineRun(d[tk.i:])) {
				return
			}
		case c == '/' && tk.i+1 < n && d[tk.i+1] == '/' && tk.afterSpace():
			if !tk.advance(TComment, lineRun(d[tk.i:])) {
				return
			}
		case c == '"' || c == '\'':
			w := scanQuoted(d[tk.i:], tk.pos, &tk.errs)
			if !tk.advance(TString, w) {
				return
			}
		case c == '-' && tk.dashIsElt():
			if !tk.advance(TDash, 1) {
				return
			}
		case structural(c) != TInvalid:
			if !tk.advance(structural(c), 1) {
				return
			}
		case c < 0x20:
			tk.errs.Addf(diag.CodeInvalidToken,
				tk.pos.Offset, 1, tk.pos.Line, tk.pos.Col,
				"invalid character %#x", c)
			if !tk.advance(TInvalid, 1) {
				return
			}
		default:
			w := wordRun(d[tk.i:])
			if !tk.advance(classifyWord(d[tk.i:tk.i+w]), w) {
				return
			}
		}
	}
	tk.emitEOF()
}

func (tk *tokenizer) emitEOF() {
	tk.out = append(tk.out, Token{Type: TEOF, Pos: tk.pos})
}

// afterSpace reports whether the current position follows whitespace or
// starts the document. A "//" comment only opens there, so bare URLs
// remain literals.
func (tk *tokenizer) afterSpace() bool {
	if tk.i == 0 {
		return true
	}
	switch tk.d[tk.i-1] {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

// dashIsElt reports whether the '-' at the current position is a list
// element marker rather than the start of a negative number or word.
func (tk *tokenizer) dashIsElt() bool {
	if tk.i+1 >= len(tk.d) {
		return true
	}
	switch tk.d[tk.i+1] {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

func structural(c byte) TokenType {
	switch c {
	case ':':
		return TColon
	case ',':
		return TComma
	case '|':
		return TPipe
	case '[':
		return TLSquare
	case ']':
		return TRSquare
	case '{':
		return TLCurl
	case '}':
		return TRCurl
	default:
		return TInvalid
	}
}

func spaceRun(d []byte) int {
	i := 0
	for i < len(d) {
		switch d[i] {
		case ' ', '\t', '\r':
			i++
		default:
			return i
		}
	}
	return i
}

func lineRun(d []byte) int {
	i := 0
	for i < len(d) && d[i] != '\n' {
		i++
	}
	return i
}

func wordRun(d []byte) int {
	i := 0
	if i < len(d) && d[i] == '-' {
		i++
	}
	for i < len(d) {
		c := d[i]
		if !isWordByte(c) || c < 0x20 {
			return i
		}
		i++
	}
	return i
}
