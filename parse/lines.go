package parse

import "github.com/toon-format/go-toon/token"

// ltok is a token on a physical line, annotated with what separated it
// from its predecessor. preTab marks a gap containing a tab, which is a
// cell boundary in tab-delimited scopes.
type ltok struct {
	token.Token
	preSpace bool
	preTab   bool
}

// line is one physical source line with content on it. indent counts
// the raw leading space and tab characters; layout and comment tokens
// are filtered out of toks.
type line struct {
	indent int
	toks   []ltok
	start  token.Pos
	end    token.Pos
}

// span covers the line's significant tokens.
func (l *line) span() token.Span {
	return token.Span{Start: l.start, End: l.end}
}

// splitLines groups the token stream into content lines. Blank and
// comment-only lines are dropped; indentation comes from the leading
// whitespace run of each physical line.
func splitLines(toks []token.Token) []line {
	var (
		res     []line
		cur     *line
		indent  int
		preSp   bool
		preTab  bool
		hasTab  = func(d []byte) bool {
			for _, c := range d {
				if c == '\t' {
					return true
				}
			}
			return false
		}
	)
	flush := func() {
		if cur != nil && len(cur.toks) > 0 {
			res = append(res, *cur)
		}
		cur = nil
		preSp, preTab = false, false
	}
	for i := range toks {
		t := &toks[i]
		switch t.Type {
		case token.TNewline:
			flush()
			indent = 0
		case token.TIndent:
			indent = len(t.Bytes)
		case token.TSpace:
			preSp = true
			preTab = preTab || hasTab(t.Bytes)
		case token.TComment, token.TEOF:
			// comments are kept in the token stream but play
			// no role in the grammar
		default:
			if cur == nil {
				cur = &line{indent: indent, start: t.Pos}
			}
			cur.toks = append(cur.toks, ltok{
				Token:    *t,
				preSpace: preSp,
				preTab:   preTab,
			})
			cur.end = t.End()
			preSp, preTab = false, false
		}
	}
	flush()
	return res
}
