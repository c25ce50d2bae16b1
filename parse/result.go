package parse

import (
	"github.com/toon-format/go-toon/diag"
	"github.com/toon-format/go-toon/ir"
	"github.com/toon-format/go-toon/token"
)

// Result packages the outcome of one parse: the document tree (always
// present, possibly partial or empty), the diagnostics in encounter
// order, and the full lossless token stream. A Result and everything it
// references is frozen once returned.
type Result struct {
	Doc    *ir.Node
	Errors []*diag.Error
	Tokens []token.Token
}

// IsSuccess reports whether the parse recorded no diagnostics. A tree
// is present either way.
func (r *Result) IsSuccess() bool {
	return len(r.Errors) == 0
}
