package main

import (
	"context"

	"github.com/toon-format/go-toon/token"
	"go.lsp.dev/protocol"
)

// indices into the legend declared in Initialize
const (
	semComment uint32 = iota
	semKeyword
	semString
	semNumber
	semOperator
	semProperty
)

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.res == nil {
		return nil, nil
	}
	return &protocol.SemanticTokens{
		Data: semanticTokenData(doc.res.Tokens, -1, -1),
	}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.res == nil {
		return nil, nil
	}
	return &protocol.SemanticTokens{
		Data: semanticTokenData(doc.res.Tokens,
			int(params.Range.Start.Line), int(params.Range.End.Line)),
	}, nil
}

// semanticTokenData renders the lossless token stream in the LSP
// delta encoding: five uint32 per token. fromLine/toLine of -1 mean
// the whole document.
func semanticTokenData(toks []token.Token, fromLine, toLine int) []uint32 {
	data := []uint32{}
	prevLine, prevCol := 0, 0
	for i := range toks {
		t := &toks[i]
		typ, ok := semType(toks, i)
		if !ok {
			continue
		}
		if fromLine >= 0 && (t.Pos.Line < fromLine || t.Pos.Line > toLine) {
			continue
		}
		dl := uint32(t.Pos.Line - prevLine)
		dc := uint32(t.Pos.Col)
		if dl == 0 {
			dc = uint32(t.Pos.Col - prevCol)
		}
		data = append(data, dl, dc, uint32(t.Len()), typ, 0)
		prevLine, prevCol = t.Pos.Line, t.Pos.Col
	}
	return data
}

func semType(toks []token.Token, i int) (uint32, bool) {
	switch toks[i].Type {
	case token.TComment:
		return semComment, true
	case token.TTrue, token.TFalse, token.TNull:
		return semKeyword, true
	case token.TNumber:
		return semNumber, true
	case token.TString, token.TLiteral:
		if isKey(toks, i) {
			return semProperty, true
		}
		return semString, true
	case token.TColon, token.TComma, token.TPipe, token.TDash,
		token.TLSquare, token.TRSquare, token.TLCurl, token.TRCurl:
		return semOperator, true
	default:
		return 0, false
	}
}

// isKey reports whether toks[i] opens its line and is followed by ':'
// or '[', which is how the grammar marks a property key.
func isKey(toks []token.Token, i int) bool {
	for j := i - 1; j >= 0; j-- {
		tt := toks[j].Type
		if tt == token.TSpace {
			continue
		}
		if tt == token.TIndent || tt == token.TNewline {
			break
		}
		return false
	}
	for j := i + 1; j < len(toks); j++ {
		tt := toks[j].Type
		if tt == token.TSpace {
			continue
		}
		return tt == token.TColon || tt == token.TLSquare
	}
	return false
}
