package parse

import (
	"strconv"

	"github.com/toon-format/go-toon/ir"
	"github.com/toon-format/go-toon/token"
)

// scalar materializes one cell's tokens into a value node. A single
// token becomes its typed node; a run of tokens is folded into one
// string spanning the raw source from the first to the last token,
// which is how free-form prose values avoid quoting.
func (p *parser) scalar(cell []ltok) *ir.Node {
	if len(cell) == 0 {
		return &ir.Node{Type: ir.StringType}
	}
	if len(cell) == 1 {
		return p.scalarToken(&cell[0])
	}
	span := cellSpan(cell)
	text := string(p.src[span.Start.Offset:span.End.Offset])
	n := ir.FromString(text, text)
	n.Span = span
	return n
}

func (p *parser) scalarToken(t *ltok) *ir.Node {
	var n *ir.Node
	switch t.Type {
	case token.TNumber:
		raw := string(t.Bytes)
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			// the lexer vouched for the literal; treat an
			// overflowing value as a string rather than guess
			n = ir.FromString(raw, raw)
			break
		}
		_, isFloat, _ := token.IsNumber(t.Bytes)
		n = ir.FromNumber(f, !isFloat, raw)
	case token.TTrue:
		n = ir.FromBool(true)
	case token.TFalse:
		n = ir.FromBool(false)
	case token.TNull:
		n = ir.Null()
	case token.TString:
		n = ir.FromString(token.Unquote(t.Bytes), string(t.Bytes))
	default:
		raw := string(t.Bytes)
		n = ir.FromString(raw, raw)
	}
	n.Span = t.Span()
	return n
}

func cellSpan(cell []ltok) token.Span {
	return token.Span{
		Start: cell[0].Pos,
		End:   cell[len(cell)-1].End(),
	}
}
