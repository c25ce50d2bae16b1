package token

import (
	"math"

	"github.com/toon-format/go-toon/diag"
)

type tokenOpts struct {
	maxTokens int
	maxStrLen int
}

type TokenOpt func(*tokenOpts)

// MaxTokens caps the number of tokens emitted. Once exceeded the
// tokenizer records a diagnostic and stops; callers get the truncated
// stream.
func MaxTokens(n int) TokenOpt {
	return func(o *tokenOpts) { o.maxTokens = n }
}

// MaxStringLen caps the byte length of string and bare-word literals.
// A violating token is still emitted, with a diagnostic.
func MaxStringLen(n int) TokenOpt {
	return func(o *tokenOpts) { o.maxStrLen = n }
}

// Tokenize scans src left to right into a flat, lossless token
// sequence, appending to dst. The stream always ends with a TEOF token
// unless the token ceiling was hit first. Tokenize never fails:
// malformed input produces diagnostics alongside best-effort tokens.
func Tokenize(dst []Token, src []byte, opts ...TokenOpt) ([]Token, []*diag.Error) {
	opt := tokenOpts{maxTokens: math.MaxInt, maxStrLen: math.MaxInt}
	for _, f := range opts {
		f(&opt)
	}
	tk := &tokenizer{d: src, opt: opt, out: dst}
	tk.run()
	return tk.out, tk.errs.Errs
}
