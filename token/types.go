package token

import "fmt"

type TokenType int

const (
	TInvalid TokenType = iota
	TString
	TNumber
	TTrue
	TFalse
	TNull
	TLiteral
	TColon
	TComma
	TPipe
	TLSquare
	TRSquare
	TLCurl
	TRCurl
	TDash
	TNewline
	TIndent
	TSpace
	TComment
	TEOF
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TInvalid: "TInvalid",
		TString:  "TString",
		TNumber:  "TNumber",
		TTrue:    "TTrue",
		TFalse:   "TFalse",
		TNull:    "TNull",
		TLiteral: "TLiteral",
		TColon:   "TColon",
		TComma:   "TComma",
		TPipe:    "TPipe",
		TLSquare: "TLSquare",
		TRSquare: "TRSquare",
		TLCurl:   "TLCurl",
		TRCurl:   "TRCurl",
		TDash:    "TDash",
		TNewline: "TNewline",
		TIndent:  "TIndent",
		TSpace:   "TSpace",
		TComment: "TComment",
		TEOF:     "TEOF",
	}[t]
}

// IsLayout reports whether t is a layout token (whitespace bookkeeping
// the parser filters out when matching grammar productions).
func (t TokenType) IsLayout() bool {
	switch t {
	case TNewline, TIndent, TSpace:
		return true
	default:
		return false
	}
}

// IsValue reports whether t can begin a value literal.
func (t TokenType) IsValue() bool {
	switch t {
	case TString, TNumber, TTrue, TFalse, TNull, TLiteral:
		return true
	default:
		return false
	}
}

// Token is one lexeme with its exact source span. Bytes holds the raw
// text verbatim, quotes and escapes included, so the original document
// can always be reconstructed from the token stream.
type Token struct {
	Type  TokenType
	Pos   Pos
	Bytes []byte
}

func (t *Token) Len() int {
	return len(t.Bytes)
}

// End is the position just past the token. Tokens never span lines.
func (t *Token) End() Pos {
	return Pos{
		Offset: t.Pos.Offset + len(t.Bytes),
		Line:   t.Pos.Line,
		Col:    t.Pos.Col + len(t.Bytes),
	}
}

func (t *Token) Span() Span {
	return Span{Start: t.Pos, End: t.End()}
}

// String returns the decoded value of the token: quoted strings are
// unescaped, everything else is the raw text.
func (t *Token) String() string {
	switch t.Type {
	case TString:
		return Unquote(t.Bytes)
	default:
		return string(t.Bytes)
	}
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %q %s", t.Type, string(t.Bytes), t.Pos)
}
