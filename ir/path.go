package ir

import (
	"strconv"
	"strings"
)

// FindPath resolves a dotted path like "users.0.name" against a
// document or value node. Path segments select object properties by
// key, array elements and table rows by index, and table cells by field
// name. The boolean reports whether every segment resolved.
func FindPath(n *Node, path string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	if path == "" || path == "." {
		return n, true
	}
	cur := n
	for seg := range strings.SplitSeq(strings.TrimPrefix(path, "."), ".") {
		next, ok := step(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func step(n *Node, seg string) (*Node, bool) {
	switch n.Type {
	case DocumentType, ObjectType:
		return n.Get(seg)
	case PropertyType:
		return step(n.Value, seg)
	case ArrayType:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(n.Values) {
			return nil, false
		}
		return n.Values[i], true
	case TableType:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(n.Rows) {
			return nil, false
		}
		return rowObject(n, n.Rows[i]), true
	default:
		return nil, false
	}
}

// rowObject views one table row as an object keyed by the schema, so
// paths can continue through rows by field name. Cells beyond the
// schema keep positional keys.
func rowObject(table *Node, row []*Node) *Node {
	obj := &Node{Type: ObjectType, Span: table.Span}
	for i, cell := range row {
		key := strconv.Itoa(i)
		if i < len(table.Fields) {
			key = table.Fields[i]
		}
		obj.Append(&Node{
			Type:  PropertyType,
			Key:   key,
			Value: cell,
			Span:  cell.Span,
		})
	}
	return obj
}
