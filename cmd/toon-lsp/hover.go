package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/toon-format/go-toon/ir"
	"go.lsp.dev/protocol"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.res == nil {
		return nil, nil
	}
	off := lineColToOffset(doc.content, int(params.Position.Line), int(params.Position.Character))
	node := nodeAt(doc.res.Doc, off)
	if node == nil || node.Type == ir.DocumentType {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverText(node),
		},
		Range: &protocol.Range{
			Start: protocol.Position{
				Line:      uint32(node.Span.Start.Line),
				Character: uint32(node.Span.Start.Col),
			},
			End: protocol.Position{
				Line:      uint32(node.Span.End.Line),
				Character: uint32(node.Span.End.Col),
			},
		},
	}, nil
}

// nodeAt finds the innermost node whose span contains the offset.
func nodeAt(root *ir.Node, off int) *ir.Node {
	var best *ir.Node
	root.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if isPost {
			return true, nil
		}
		if n.Span.Start.Offset <= off && off < n.Span.End.Offset {
			if best == nil || n.Span.Len() <= best.Span.Len() {
				best = n
			}
			return true, nil
		}
		return false, nil
	})
	return best
}

func hoverText(n *ir.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**", n.Type)
	switch n.Type {
	case ir.PropertyType:
		fmt.Fprintf(&b, " `%s`", n.Key)
	case ir.ArrayType:
		fmt.Fprintf(&b, "\n\n%d elements", len(n.Values))
		if n.DeclaredSize >= 0 && n.DeclaredSize != len(n.Values) {
			fmt.Fprintf(&b, " (declared %d)", n.DeclaredSize)
		}
	case ir.TableType:
		fmt.Fprintf(&b, "\n\n%d rows, fields: %s", len(n.Rows), strings.Join(n.Fields, ", "))
		if n.DeclaredSize >= 0 && n.DeclaredSize != len(n.Rows) {
			fmt.Fprintf(&b, " (declared %d)", n.DeclaredSize)
		}
	case ir.ObjectType:
		fmt.Fprintf(&b, "\n\n%d properties", len(n.Props))
	default:
		if t := n.Text(); t != "" {
			fmt.Fprintf(&b, "\n\n```\n%s\n```", t)
		}
	}
	return b.String()
}
