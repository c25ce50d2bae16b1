// Package parse provides resilient TOON parsing support.
package parse

import (
	"fmt"
	"strconv"

	"github.com/toon-format/go-toon/debug"
	"github.com/toon-format/go-toon/diag"
	"github.com/toon-format/go-toon/ir"
	"github.com/toon-format/go-toon/token"
)

// Parse consumes one TOON source end to end and returns the document
// tree together with every diagnostic and the lossless token stream.
// Malformed input never makes Parse fail: errors are recorded and
// parsing continues on a best-effort basis, so the returned document is
// never nil. The error is non-nil only for a nil source or input over
// the configured MaxInputSize.
func Parse(d []byte, opts ...ParseOption) (*Result, error) {
	pOpts := newParseOpts(opts)
	if d == nil {
		return nil, ErrNoSource
	}
	if len(d) > pOpts.limits.MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes over a limit of %d",
			ErrInputTooLarge, len(d), pOpts.limits.MaxInputSize)
	}
	toks, lexErrs := token.Tokenize(nil, d, pOpts.tokenOpts()...)
	if debug.Lex() {
		for i := range toks {
			debug.Logf("lex %v %q\n", toks[i].Type, toks[i].Bytes)
		}
	}
	p := &parser{
		src:    d,
		lines:  splitLines(toks),
		limits: pOpts.limits,
	}
	if debug.Lines() {
		for i := range p.lines {
			l := &p.lines[i]
			debug.Logf("line %d indent=%d toks=%d\n",
				l.start.Line+1, l.indent, len(l.toks))
		}
	}
	p.errs.Errs = append(p.errs.Errs, lexErrs...)
	doc := p.parseDocument()
	if len(p.lines) == 0 {
		p.errs.Addf(diag.CodeEmptyDocument, 0, 0, 0, 0,
			"document has no content")
	}
	return &Result{Doc: doc, Errors: p.errs.Errs, Tokens: toks}, nil
}

// TryParse is Parse with the fail-fast conditions folded into the
// boolean. A parse that completed with recorded diagnostics still
// reports true; inspect Result.IsSuccess for that.
func TryParse(d []byte, opts ...ParseOption) (bool, *Result) {
	res, err := Parse(d, opts...)
	if err != nil {
		return false, nil
	}
	return true, res
}

// Tokenize lexes src without building a tree, applying the configured
// token-count and string-length limits.
func Tokenize(src []byte, opts ...ParseOption) ([]token.Token, []*diag.Error) {
	return token.Tokenize(nil, src, newParseOpts(opts).tokenOpts()...)
}

// parser holds the state for one in-flight parse. Each call to Parse
// constructs a fresh one; instances must not be reused.
type parser struct {
	src    []byte
	lines  []line
	li     int
	limits Limits

	errs   diag.List
	scopes []byte
	depth  int
}

func (p *parser) spanErrf(code diag.Code, s token.Span, f string, args ...any) {
	p.errs.Addf(code, s.Start.Offset, s.Len(), s.Start.Line, s.Start.Col, f, args...)
}

func (p *parser) posErrf(code diag.Code, pos token.Pos, length int, f string, args ...any) {
	p.errs.Addf(code, pos.Offset, length, pos.Line, pos.Col, f, args...)
}

// resync implements the single recovery strategy: skip forward to the
// next line whose indentation is at or below the failed construct's.
func (p *parser) resync(indent int) {
	for p.li < len(p.lines) && p.lines[p.li].indent > indent {
		if debug.Recover() {
			debug.Logf("recover: skipping line %d (indent %d > %d)\n",
				p.lines[p.li].start.Line+1, p.lines[p.li].indent, indent)
		}
		p.li++
	}
}

// lastEnd is the end position of the most recently consumed line.
func (p *parser) lastEnd() token.Pos {
	return p.lines[p.li-1].end
}

func (p *parser) parseDocument() *ir.Node {
	doc := ir.NewDocument()
	if len(p.lines) == 0 {
		return doc
	}
	doc.Span = token.Span{
		Start: p.lines[0].start,
		End:   p.lines[len(p.lines)-1].end,
	}
	for p.li < len(p.lines) {
		start := p.li
		p.parseBlock(doc, p.lines[p.li].indent)
		if p.li == start {
			l := &p.lines[p.li]
			p.spanErrf(diag.CodeNoProgress, l.span(),
				"parser made no progress; skipping line")
			p.li++
		}
	}
	return doc
}

// parseBlock consumes the run of lines at exactly the given indent as
// sibling properties of parent. Deeper lines that no construct claimed
// are indentation errors; shallower lines end the block.
func (p *parser) parseBlock(parent *ir.Node, indent int) {
	for p.li < len(p.lines) {
		l := &p.lines[p.li]
		if l.indent < indent {
			return
		}
		if l.indent > indent {
			p.spanErrf(diag.CodeBadIndentation, l.span(),
				"indentation %d does not match enclosing block at %d",
				l.indent, indent)
			p.li++
			continue
		}
		start := p.li
		if prop := p.parseProperty(l); prop != nil {
			parent.Append(prop)
		}
		if p.li == start {
			p.spanErrf(diag.CodeNoProgress, l.span(),
				"parser made no progress; skipping line")
			p.li++
		}
	}
}

// parseProperty parses one `key ':' value` or array/table header line,
// consuming the line and any lines its value occupies.
func (p *parser) parseProperty(l *line) *ir.Node {
	keyTok := &l.toks[0]
	if !keyTok.Type.IsValue() {
		p.spanErrf(diag.CodeUnexpectedToken, keyTok.Span(),
			"unexpected %q where a key was expected", keyTok.Bytes)
		p.li++
		p.resync(l.indent)
		return nil
	}
	key := keyTok.String()
	if len(l.toks) == 1 {
		p.posErrf(diag.CodeMissingColon, keyTok.End(), 0,
			"expected ':' after key %q", key)
		p.li++
		return nil
	}
	switch sep := &l.toks[1]; sep.Type {
	case token.TColon:
		return p.parseSimple(l, key)
	case token.TLSquare:
		return p.parseArrayProp(l, key)
	default:
		p.spanErrf(diag.CodeMissingColon, sep.Span(),
			"expected ':' after key %q, found %q", key, sep.Bytes)
		p.li++
		p.resync(l.indent)
		return nil
	}
}

func (p *parser) parseSimple(l *line, key string) *ir.Node {
	prop := &ir.Node{Type: ir.PropertyType, Key: key, Indent: l.indent, Span: l.span()}
	rest := l.toks[2:]
	if len(rest) > 0 {
		val := p.scalar(rest)
		prop.Value = val
		val.Parent = prop
		p.li++
		return prop
	}
	p.li++
	if p.li < len(p.lines) && p.lines[p.li].indent > l.indent {
		val := p.parseObjectValue(l.indent)
		prop.Value = val
		val.Parent = prop
		prop.Span = prop.Span.Cover(val.Span)
		return prop
	}
	colonEnd := l.toks[1].End()
	nul := ir.Null()
	nul.Span = token.Span{Start: colonEnd, End: colonEnd}
	nul.Parent = prop
	prop.Value = nul
	return prop
}

// parseObjectValue consumes the indented block following a bare colon.
func (p *parser) parseObjectValue(parentIndent int) *ir.Node {
	first := &p.lines[p.li]
	obj := &ir.Node{Type: ir.ObjectType, Span: first.span()}
	if p.depth >= p.limits.MaxNestingDepth {
		p.spanErrf(diag.CodeDepthExceeded, first.span(),
			"nesting depth exceeds limit of %d", p.limits.MaxNestingDepth)
		p.resync(parentIndent)
		return obj
	}
	p.depth++
	p.parseBlock(obj, first.indent)
	p.depth--
	obj.Span.End = p.lastEnd()
	return obj
}

// parseArrayProp parses `key '[' size marker? ']'` followed by either a
// ':' (inline or expanded array) or a '{schema}' ':' (table array).
func (p *parser) parseArrayProp(l *line, key string) *ir.Node {
	var (
		toks      = l.toks
		size      = -1
		sizeSeen  = false
		marker    byte
		markerIdx = -1
		rsq       = -1
	)
	i := 2 // past key and '['
header:
	for ; i < len(toks); i++ {
		t := &toks[i]
		switch t.Type {
		case token.TNumber:
			v, err := strconv.Atoi(string(t.Bytes))
			if err != nil || sizeSeen {
				p.spanErrf(diag.CodeExpectedValue, t.Span(),
					"array size must be a single integer, found %q", t.Bytes)
			} else {
				size = v
			}
			sizeSeen = true
		case token.TPipe:
			marker = '|'
			markerIdx = i
		case token.TRSquare:
			if t.preTab && marker == 0 {
				marker = '\t'
			}
			rsq = i
			break header
		default:
			p.spanErrf(diag.CodeUnexpectedToken, t.Span(),
				"unexpected %q in array header", t.Bytes)
		}
	}
	if rsq < 0 {
		p.posErrf(diag.CodeMissingBracket, l.end, 0,
			"missing ']' in array header for %q", key)
		p.li++
		p.resync(l.indent)
		return nil
	}
	if markerIdx >= 0 && markerIdx != rsq-1 {
		p.spanErrf(diag.CodeMisplacedMarker, toks[markerIdx].Span(),
			"delimiter marker must sit immediately before ']'")
	}
	if !sizeSeen {
		p.spanErrf(diag.CodeExpectedValue, toks[1].Span(),
			"array %q declares no size", key)
	}
	if size > p.limits.MaxArraySize {
		p.spanErrf(diag.CodeArrayTooLarge, l.span(),
			"declared size %d exceeds limit of %d", size, p.limits.MaxArraySize)
	}

	prop := &ir.Node{Type: ir.PropertyType, Key: key, Indent: l.indent, Span: l.span()}
	var val *ir.Node
	switch next := rsq + 1; {
	case next >= len(toks):
		p.posErrf(diag.CodeMissingColon, l.end, 0,
			"expected ':' after array header for %q", key)
		p.li++
		p.resync(l.indent)
		return nil
	case toks[next].Type == token.TColon:
		val = p.parseArray(l, key, size, marker, next)
	case toks[next].Type == token.TLCurl:
		val = p.parseTable(l, key, size, marker, next)
	default:
		p.spanErrf(diag.CodeUnexpectedToken, toks[next].Span(),
			"expected ':' or '{' after array header for %q, found %q",
			key, toks[next].Bytes)
		p.li++
		p.resync(l.indent)
		return nil
	}
	if val == nil {
		return nil
	}
	prop.Value = val
	val.Parent = prop
	prop.Span = prop.Span.Cover(val.Span)
	return prop
}

// parseArray consumes an inline or expanded array body.
func (p *parser) parseArray(l *line, key string, size int, marker byte, colonIdx int) *ir.Node {
	arr := &ir.Node{Type: ir.ArrayType, DeclaredSize: size, Span: l.span()}
	delim := p.pushScope(marker)
	defer p.popScope()

	// the header diagnostic already covers a declared size over the
	// limit; don't report the cap a second time when it bites
	capped := size > p.limits.MaxArraySize
	add := func(v *ir.Node) {
		if len(arr.Values) >= p.limits.MaxArraySize {
			if !capped {
				capped = true
				p.spanErrf(diag.CodeArrayTooLarge, v.Span,
					"array %q exceeds the element limit of %d",
					key, p.limits.MaxArraySize)
			}
			return
		}
		arr.AppendValue(v)
	}

	rest := l.toks[colonIdx+1:]
	p.li++
	switch {
	case len(rest) > 0:
		p.appendCells(add, rest, delim, size)
		// continuation lines at a deeper indent, same delimiter
		for p.li < len(p.lines) && p.lines[p.li].indent > l.indent {
			p.appendCells(add, p.lines[p.li].toks, delim, size)
			p.li++
		}
	case p.li < len(p.lines) && p.lines[p.li].indent > l.indent &&
		p.lines[p.li].toks[0].Type == token.TDash:
		p.parseExpanded(add, l.indent)
	default:
		for p.li < len(p.lines) && p.lines[p.li].indent > l.indent {
			p.appendCells(add, p.lines[p.li].toks, delim, size)
			p.li++
		}
	}
	if !capped {
		p.validateCount(diag.CodeArraySizeMismatch, "array", key, size, len(arr.Values), l.span())
	}
	arr.Span.End = p.lastEnd()
	return arr
}

// appendCells splits one line's worth of inline values on the active
// delimiter and appends an element per cell. An inline list whose
// declared size promises several values but which the active delimiter
// does not split at all was almost certainly written with a different
// delimiter: that is reported, and the observed delimiter is used so
// the tree stays useful.
func (p *parser) appendCells(add func(*ir.Node), toks []ltok, delim byte, size int) {
	cells := splitCells(toks, delim)
	if len(cells) == 1 && size > 1 {
		commas, pipes := countSeps(toks, delim)
		var alt byte
		switch {
		case commas > 0:
			alt = ','
		case pipes > 0:
			alt = '|'
		}
		if alt != 0 {
			p.spanErrf(diag.CodeMixedDelimiters, cellSpan(toks),
				"values separated by %q but the active delimiter is %q",
				string(alt), string(delim))
			cells = splitCells(toks, alt)
		}
	}
	for _, cell := range cells {
		add(p.scalar(cell))
	}
}

// parseExpanded consumes `- value` item lines one level deeper than
// the header.
func (p *parser) parseExpanded(add func(*ir.Node), parentIndent int) {
	itemIndent := p.lines[p.li].indent
	for p.li < len(p.lines) {
		ln := &p.lines[p.li]
		if ln.indent <= parentIndent {
			return
		}
		if ln.indent != itemIndent {
			p.spanErrf(diag.CodeBadIndentation, ln.span(),
				"indentation %d does not match list items at %d",
				ln.indent, itemIndent)
			p.li++
			continue
		}
		if ln.toks[0].Type != token.TDash {
			p.spanErrf(diag.CodeUnexpectedToken, ln.toks[0].Span(),
				"expected '-' list item, found %q", ln.toks[0].Bytes)
			p.li++
			continue
		}
		add(p.parseItem(ln))
	}
}

// parseItem parses one `- value` line. The value may be a scalar, a
// nested object whose first field sits inline after the dash with the
// rest indented one level further, or a nested array/table header.
func (p *parser) parseItem(ln *line) *ir.Node {
	if p.depth >= p.limits.MaxNestingDepth {
		p.spanErrf(diag.CodeDepthExceeded, ln.span(),
			"nesting depth exceeds limit of %d", p.limits.MaxNestingDepth)
		p.li++
		p.resync(ln.indent)
		n := ir.Null()
		n.Span = ln.span()
		return n
	}
	p.depth++
	defer func() { p.depth-- }()

	rest := ln.toks[1:]
	if len(rest) == 0 {
		p.li++
		if p.li < len(p.lines) && p.lines[p.li].indent > ln.indent {
			obj := &ir.Node{Type: ir.ObjectType, Span: p.lines[p.li].span()}
			p.parseBlock(obj, p.lines[p.li].indent)
			obj.Span.End = p.lastEnd()
			return obj
		}
		n := ir.Null()
		n.Span = token.Span{Start: ln.end, End: ln.end}
		return n
	}
	if len(rest) >= 2 && rest[0].Type.IsValue() &&
		(rest[1].Type == token.TColon || rest[1].Type == token.TLSquare) {
		obj := &ir.Node{
			Type: ir.ObjectType,
			Span: token.Span{Start: rest[0].Pos, End: ln.end},
		}
		synth := line{indent: ln.indent, toks: rest, start: rest[0].Pos, end: ln.end}
		start := p.li
		if prop := p.parseProperty(&synth); prop != nil {
			obj.Append(prop)
		}
		if p.li == start {
			p.li++
		}
		if p.li < len(p.lines) && p.lines[p.li].indent > ln.indent {
			p.parseBlock(obj, p.lines[p.li].indent)
		}
		obj.Span.End = p.lastEnd()
		return obj
	}
	v := p.scalar(rest)
	p.li++
	return v
}

// parseTable consumes `key '[' size ']' '{' fields '}' ':'` and its
// row lines.
func (p *parser) parseTable(l *line, key string, size int, marker byte, lcIdx int) *ir.Node {
	toks := l.toks
	rc := -1
	for j := lcIdx + 1; j < len(toks); j++ {
		if toks[j].Type == token.TRCurl {
			rc = j
			break
		}
	}
	if rc < 0 {
		p.posErrf(diag.CodeMissingSchema, l.end, 0,
			"missing '}' closing the field list for %q", key)
		p.li++
		p.resync(l.indent)
		return nil
	}
	schemaToks := toks[lcIdx+1 : rc]
	// the delimiter marker may repeat just before '}'
	if n := len(schemaToks); n > 0 && schemaToks[n-1].Type == token.TPipe {
		if marker == 0 {
			marker = '|'
		}
		schemaToks = schemaToks[:n-1]
	}
	if toks[rc].preTab && marker == 0 {
		marker = '\t'
	}
	delim := p.pushScope(marker)
	defer p.popScope()

	var fields []string
	for _, cell := range splitCells(schemaToks, delim) {
		fields = append(fields, p.fieldName(cell))
	}
	if len(fields) == 0 {
		p.spanErrf(diag.CodeMissingSchema, toks[lcIdx].Span(),
			"table %q declares no fields", key)
	}
	switch {
	case rc+1 >= len(toks) || toks[rc+1].Type != token.TColon:
		p.posErrf(diag.CodeMissingColon, toks[rc].End(), 0,
			"expected ':' after table header for %q", key)
	case rc+2 < len(toks):
		p.spanErrf(diag.CodeUnexpectedToken, toks[rc+2].Span(),
			"unexpected %q after table header", toks[rc+2].Bytes)
	}

	tbl := &ir.Node{Type: ir.TableType, DeclaredSize: size, Fields: fields, Span: l.span()}
	p.li++
	rowIndent := -1
	depthHit := false
	capped := size > p.limits.MaxArraySize
	for p.li < len(p.lines) {
		ln := &p.lines[p.li]
		if ln.indent <= l.indent {
			break
		}
		if rowIndent < 0 {
			rowIndent = ln.indent
		}
		if ln.indent != rowIndent {
			p.spanErrf(diag.CodeBadIndentation, ln.span(),
				"indentation %d does not match table rows at %d",
				ln.indent, rowIndent)
			p.li++
			continue
		}
		if p.depth >= p.limits.MaxNestingDepth {
			if !depthHit {
				depthHit = true
				p.spanErrf(diag.CodeDepthExceeded, ln.span(),
					"nesting depth exceeds limit of %d", p.limits.MaxNestingDepth)
			}
			p.li++
			continue
		}
		if len(tbl.Rows) >= p.limits.MaxArraySize {
			if !capped {
				capped = true
				p.spanErrf(diag.CodeArrayTooLarge, ln.span(),
					"table %q exceeds the row limit of %d",
					key, p.limits.MaxArraySize)
			}
			p.li++
			continue
		}
		p.depth++
		cells := splitCells(ln.toks, delim)
		if len(cells) == 1 && len(fields) > 1 {
			commas, pipes := countSeps(ln.toks, delim)
			var alt byte
			switch {
			case commas > 0:
				alt = ','
			case pipes > 0:
				alt = '|'
			}
			if alt != 0 {
				p.spanErrf(diag.CodeMixedDelimiters, ln.span(),
					"row separated by %q but the active delimiter is %q",
					string(alt), string(delim))
				cells = splitCells(ln.toks, alt)
			}
		}
		row := make([]*ir.Node, len(cells))
		for i, cell := range cells {
			row[i] = p.scalar(cell)
		}
		p.depth--
		if len(row) != len(fields) {
			p.spanErrf(diag.CodeRowFieldMismatch, ln.span(),
				"row has %d values for %d fields", len(row), len(fields))
		}
		tbl.AppendRow(row)
		p.li++
	}
	if !depthHit && !capped {
		p.validateCount(diag.CodeTableSizeMismatch, "table", key, size, len(tbl.Rows), l.span())
	}
	tbl.Span.End = p.lastEnd()
	return tbl
}

// fieldName renders one schema cell as a field name.
func (p *parser) fieldName(cell []ltok) string {
	switch len(cell) {
	case 0:
		return ""
	case 1:
		return cell[0].String()
	default:
		span := cellSpan(cell)
		return string(p.src[span.Start.Offset:span.End.Offset])
	}
}

// validateCount checks the actual element count against the declared
// bracketed size. Mismatches are reported but never change the
// collected elements.
func (p *parser) validateCount(code diag.Code, what, key string, declared, actual int, span token.Span) {
	if declared < 0 || declared == actual {
		return
	}
	if actual < declared {
		p.spanErrf(code, span, "%s %q declares %d elements but has %d: missing %d",
			what, key, declared, actual, declared-actual)
		return
	}
	p.spanErrf(code, span, "%s %q declares %d elements but has %d: %d extra",
		what, key, declared, actual, actual-declared)
}
