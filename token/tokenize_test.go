package token

import (
	"bytes"
	"testing"

	"github.com/toon-format/go-toon/diag"
)

func typesOf(toks []Token) []TokenType {
	res := make([]TokenType, len(toks))
	for i := range toks {
		res[i] = toks[i].Type
	}
	return res
}

func sameTypes(a, b []TokenType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTokenizeTypes(t *testing.T) {
	tests := []struct {
		in   string
		want []TokenType
	}{
		{"a: 1", []TokenType{TLiteral, TColon, TSpace, TNumber, TEOF}},
		{"items[3]: a,b", []TokenType{
			TLiteral, TLSquare, TNumber, TRSquare, TColon, TSpace,
			TLiteral, TComma, TLiteral, TEOF}},
		{"u[2]{id,name}:", []TokenType{
			TLiteral, TLSquare, TNumber, TRSquare, TLCurl,
			TLiteral, TComma, TLiteral, TRCurl, TColon, TEOF}},
		{"- x", []TokenType{TDash, TSpace, TLiteral, TEOF}},
		{"-1", []TokenType{TNumber, TEOF}},
		{"-", []TokenType{TDash, TEOF}},
		{"# note", []TokenType{TComment, TEOF}},
		{"a // note", []TokenType{TLiteral, TSpace, TComment, TEOF}},
		{"http://x", []TokenType{TLiteral, TColon, TLiteral, TEOF}},
		{"  x\n    y", []TokenType{TIndent, TLiteral, TNewline, TIndent, TLiteral, TEOF}},
		{`"q"`, []TokenType{TString, TEOF}},
		{"true false null", []TokenType{TTrue, TSpace, TFalse, TSpace, TNull, TEOF}},
		{"truely", []TokenType{TLiteral, TEOF}},
		{"05", []TokenType{TString, TEOF}},
		{"0", []TokenType{TNumber, TEOF}},
		{"0.5", []TokenType{TNumber, TEOF}},
		{"1e14", []TokenType{TNumber, TEOF}},
		{"a|b", []TokenType{TLiteral, TPipe, TLiteral, TEOF}},
		{"", []TokenType{TEOF}},
	}
	for _, tt := range tests {
		toks, errs := Tokenize(nil, []byte(tt.in))
		if len(errs) != 0 {
			t.Errorf("%q: unexpected errors %v", tt.in, errs)
		}
		if got := typesOf(toks); !sameTypes(got, tt.want) {
			t.Errorf("%q:\n got %v\nwant %v", tt.in, got, tt.want)
		}
	}
}

// every byte of the source appears in exactly one token, so
// concatenating token bytes reproduces the input
func TestTokenizeLossless(t *testing.T) {
	inputs := []string{
		"a: 1\nb:\n  c: [2] # note\n",
		"items[3|]: a|b|c\n\n   \n- trailing",
		"\"unterminated\nnext: 1",
		"weird\x01bytes",
	}
	for _, in := range inputs {
		toks, _ := Tokenize(nil, []byte(in))
		var b bytes.Buffer
		for i := range toks {
			b.Write(toks[i].Bytes)
		}
		if b.String() != in {
			t.Errorf("%q: token bytes reassemble to %q", in, b.String())
		}
	}
}

func TestTokenizeLeadingZero(t *testing.T) {
	toks, errs := Tokenize(nil, []byte("05"))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	if toks[0].Type != TString {
		t.Fatalf("got %s, want %s", toks[0].Type, TString)
	}
	if got := toks[0].String(); got != "05" {
		t.Errorf("got %q, want %q", got, "05")
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		in   string
		code diag.Code
	}{
		{`"unterminated`, diag.CodeUnterminatedString},
		{"\"cut\nnext", diag.CodeUnterminatedString},
		{`"bad\x"`, diag.CodeInvalidEscape},
		{"\x01", diag.CodeInvalidToken},
	}
	for _, tt := range tests {
		toks, errs := Tokenize(nil, []byte(tt.in))
		if len(errs) == 0 {
			t.Errorf("%q: no errors", tt.in)
			continue
		}
		if errs[0].Code != tt.code {
			t.Errorf("%q: got %s, want %s", tt.in, errs[0].Code, tt.code)
		}
		if toks[len(toks)-1].Type != TEOF {
			t.Errorf("%q: stream does not end with TEOF", tt.in)
		}
	}
}

func TestTokenizeMaxTokens(t *testing.T) {
	toks, errs := Tokenize(nil, []byte("a: 1\nb: 2\n"), MaxTokens(3))
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3", len(toks))
	}
	if len(errs) != 1 || errs[0].Code != diag.CodeTokenLimit {
		t.Fatalf("got errors %v, want one %s", errs, diag.CodeTokenLimit)
	}
}

func TestTokenizeMaxStringLen(t *testing.T) {
	toks, errs := Tokenize(nil, []byte(`"abcdef"`), MaxStringLen(3))
	if len(errs) != 1 || errs[0].Code != diag.CodeStringTooLong {
		t.Fatalf("got errors %v, want one %s", errs, diag.CodeStringTooLong)
	}
	// the oversized token is still in the stream
	if toks[0].Type != TString {
		t.Fatalf("got %s, want %s", toks[0].Type, TString)
	}
}

func TestTokenizePositions(t *testing.T) {
	toks, _ := Tokenize(nil, []byte("a: 1\n  b: 2"))
	var b *Token
	for i := range toks {
		if toks[i].Type == TLiteral && string(toks[i].Bytes) == "b" {
			b = &toks[i]
		}
	}
	if b == nil {
		t.Fatal("token b not found")
	}
	if b.Pos.Line != 1 || b.Pos.Col != 2 || b.Pos.Offset != 7 {
		t.Errorf("got %+v, want line 1 col 2 offset 7", b.Pos)
	}
}
