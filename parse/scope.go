package parse

import (
	"github.com/toon-format/go-toon/debug"
	"github.com/toon-format/go-toon/token"
)

// Delimiter scopes. A scope is pushed for each array or table header
// and popped when its body is consumed. Plain object nesting never
// pushes, so inheritance flows through array/table scopes only.

const defaultDelimiter = ','

// pushScope resolves the scope's active delimiter from an explicit
// header marker, the nearest enclosing array/table scope, or the
// document default, then pushes it.
func (p *parser) pushScope(marker byte) byte {
	delim := marker
	if delim == 0 {
		delim = p.activeDelim()
	}
	p.scopes = append(p.scopes, delim)
	if debug.Scopes() {
		debug.Logf("scope push %q (%d deep)\n", delim, len(p.scopes))
	}
	return delim
}

func (p *parser) popScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
	if debug.Scopes() {
		debug.Logf("scope pop (%d deep)\n", len(p.scopes))
	}
}

func (p *parser) activeDelim() byte {
	if n := len(p.scopes); n > 0 {
		return p.scopes[n-1]
	}
	return defaultDelimiter
}

// isSep reports whether t terminates a cell under delim. For comma and
// pipe scopes the delimiter is its own token; for tab scopes the break
// lives in the gap before a token.
func isSep(t *ltok, delim byte) bool {
	switch delim {
	case ',':
		return t.Type == token.TComma
	case '|':
		return t.Type == token.TPipe
	default:
		return false
	}
}

// splitCells splits a run of line tokens into delimiter separated
// cells. Tab scopes split at gaps containing a tab; comma and pipe
// scopes split at their tokens, so two adjacent separators yield an
// empty cell.
func splitCells(toks []ltok, delim byte) [][]ltok {
	var (
		cells [][]ltok
		cur   []ltok
	)
	for i := range toks {
		t := &toks[i]
		if delim == '\t' && t.preTab && len(cur) > 0 {
			cells = append(cells, cur)
			cur = nil
		}
		if isSep(t, delim) {
			cells = append(cells, cur)
			cur = nil
			continue
		}
		cur = append(cur, *t)
	}
	if len(cur) > 0 || len(cells) > 0 {
		cells = append(cells, cur)
	}
	return cells
}

// countSeps counts comma and pipe tokens other than the active
// delimiter, for wrong-delimiter detection.
func countSeps(toks []ltok, delim byte) (commas, pipes int) {
	for i := range toks {
		switch toks[i].Type {
		case token.TComma:
			commas++
		case token.TPipe:
			pipes++
		}
	}
	switch delim {
	case ',':
		commas = 0
	case '|':
		pipes = 0
	}
	return commas, pipes
}
