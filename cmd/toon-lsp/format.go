package main

import (
	"bytes"
	"context"
	"strings"

	"github.com/toon-format/go-toon/encode"
	"go.lsp.dev/protocol"
)

func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.res == nil {
		return nil, nil
	}
	// only reformat clean documents; a tree recovered from errors
	// would silently drop the broken lines
	if !doc.res.IsSuccess() {
		return nil, nil
	}

	var buf bytes.Buffer
	opts := []encode.EncodeOption{}
	if params.Options.TabSize > 0 {
		opts = append(opts, encode.Indent(int(params.Options.TabSize)))
	}
	if err := encode.Encode(doc.res.Doc, &buf, opts...); err != nil {
		return nil, nil
	}
	formatted := buf.String()
	if formatted == doc.content {
		return []protocol.TextEdit{}, nil
	}

	lines := strings.Count(doc.content, "\n")
	if len(doc.content) > 0 && doc.content[len(doc.content)-1] != '\n' {
		lines++
	}
	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: uint32(lines), Character: 0},
			},
			NewText: formatted,
		},
	}, nil
}
