package ir

import (
	"math"
	"sort"
	"strconv"
)

// ToAny converts a node tree to plain Go values (map[string]any,
// []any, string, float64/int64, bool, nil), the shape encoding/json and
// friends expect. Property order is lost and duplicate keys collapse to
// the last occurrence, consistent with keyed lookup on the tree.
// Table rows become one map per row keyed by the schema.
func ToAny(n *Node) any {
	if n == nil {
		return nil
	}
	switch n.Type {
	case DocumentType, ObjectType:
		res := make(map[string]any, len(n.Props))
		for _, p := range n.Props {
			res[p.Key] = ToAny(p.Value)
		}
		return res
	case PropertyType:
		return ToAny(n.Value)
	case ArrayType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = ToAny(v)
		}
		return res
	case TableType:
		res := make([]any, len(n.Rows))
		for i, row := range n.Rows {
			m := make(map[string]any, len(row))
			for j, cell := range row {
				key := strconv.Itoa(j)
				if j < len(n.Fields) {
					key = n.Fields[j]
				}
				m[key] = ToAny(cell)
			}
			res[i] = m
		}
		return res
	case StringType:
		return n.String
	case NumberType:
		if n.IsInt {
			return int64(n.Number)
		}
		return n.Number
	case BoolType:
		return n.Bool
	default:
		return nil
	}
}

// FromAny builds a node tree from plain Go values, the inverse of
// ToAny up to property order (map keys are sorted for determinism).
// A top level map becomes a Document.
func FromAny(v any) *Node {
	n := fromAny(v)
	if n.Type == ObjectType {
		n.Type = DocumentType
	}
	return n
}

func fromAny(v any) *Node {
	switch x := v.(type) {
	case nil:
		return Null()
	case bool:
		return FromBool(x)
	case string:
		return FromString(x, x)
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return FromNumber(x, true, "")
		}
		return FromNumber(x, false, "")
	case int:
		return FromNumber(float64(x), true, "")
	case int64:
		return FromNumber(float64(x), true, "")
	case []any:
		arr := &Node{Type: ArrayType, DeclaredSize: len(x)}
		for _, e := range x {
			arr.AppendValue(fromAny(e))
		}
		return arr
	case map[string]any:
		obj := &Node{Type: ObjectType}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			obj.Append(NewProperty(k, 0, fromAny(x[k])))
		}
		return obj
	default:
		return Null()
	}
}
