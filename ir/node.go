package ir

import (
	"strconv"

	"github.com/toon-format/go-toon/token"
)

// Node is one value in a TOON document, a recursive tagged union over
// Type. Which fields are meaningful depends on the type:
//
//   - DocumentType, ObjectType: Props (PropertyType children)
//   - PropertyType: Key, Indent, Value
//   - ArrayType: DeclaredSize, Values
//   - TableType: DeclaredSize, Fields (schema), Rows
//   - StringType: String, Raw
//   - NumberType: Number, IsInt, Raw
//   - BoolType: Bool
//   - NullType: nothing beyond the span
//
// Every node carries the source span it was parsed from. Nodes are
// built append-only during descent and must not be mutated once the
// parse that created them returns.
type Node struct {
	Type Type
	Span token.Span

	Parent      *Node
	ParentIndex int

	// PropertyType
	Key    string
	Indent int
	Value  *Node

	// DocumentType, ObjectType
	Props []*Node

	// ArrayType, TableType. DeclaredSize is the author's stated
	// cardinality; it is validated against, never enforced on, the
	// actual element count.
	DeclaredSize int
	Values       []*Node
	Fields       []string
	Rows         [][]*Node

	// scalars
	String string
	Raw    string
	Number float64
	IsInt  bool
	Bool   bool
}

func FromString(v, raw string) *Node {
	return &Node{Type: StringType, String: v, Raw: raw}
}

func FromNumber(v float64, isInt bool, raw string) *Node {
	return &Node{Type: NumberType, Number: v, IsInt: isInt, Raw: raw}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func Null() *Node {
	return &Node{Type: NullType}
}

func NewDocument() *Node {
	return &Node{Type: DocumentType}
}

// NewProperty builds a key/value pair. The value's parent link is set;
// attaching the property to an object is the caller's job.
func NewProperty(key string, indent int, value *Node) *Node {
	p := &Node{Type: PropertyType, Key: key, Indent: indent, Value: value}
	if value != nil {
		value.Parent = p
	}
	return p
}

// Append attaches a property to a document or object node, keeping the
// parent backlinks consistent. Duplicate keys are legal and both are
// retained.
func (n *Node) Append(prop *Node) {
	prop.Parent = n
	prop.ParentIndex = len(n.Props)
	n.Props = append(n.Props, prop)
}

// AppendValue attaches an element to an array node.
func (n *Node) AppendValue(v *Node) {
	v.Parent = n
	v.ParentIndex = len(n.Values)
	n.Values = append(n.Values, v)
}

// AppendRow attaches a row to a table node.
func (n *Node) AppendRow(row []*Node) {
	for i, c := range row {
		c.Parent = n
		c.ParentIndex = i
	}
	n.Rows = append(n.Rows, row)
}

// Get looks up a property by key on a document or object node. When the
// key occurs more than once the last occurrence wins, matching what a
// consumer indexing by key would observe.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	for i := len(n.Props) - 1; i >= 0; i-- {
		if n.Props[i].Key == key {
			return n.Props[i].Value, true
		}
	}
	return nil, false
}

// Len returns the actual element count of an array or table.
func (n *Node) Len() int {
	switch n.Type {
	case ArrayType:
		return len(n.Values)
	case TableType:
		return len(n.Rows)
	default:
		return 0
	}
}

func (n *Node) Root() *Node {
	res := n
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// Visit walks the subtree rooted at n in document order. f is called
// before and after each node's children; returning false from the pre
// call skips the children.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range n.children() {
			if err := c.Visit(f); err != nil {
				return err
			}
		}
	}
	_, err = f(n, true)
	return err
}

func (n *Node) children() []*Node {
	switch n.Type {
	case DocumentType, ObjectType:
		return n.Props
	case PropertyType:
		if n.Value == nil {
			return nil
		}
		return []*Node{n.Value}
	case ArrayType:
		return n.Values
	case TableType:
		var res []*Node
		for _, row := range n.Rows {
			res = append(res, row...)
		}
		return res
	default:
		return nil
	}
}

// Text renders a scalar node's value as a string, for display.
func (n *Node) Text() string {
	switch n.Type {
	case StringType:
		return n.String
	case NumberType:
		if n.Raw != "" {
			return n.Raw
		}
		if n.IsInt {
			return strconv.FormatInt(int64(n.Number), 10)
		}
		return strconv.FormatFloat(n.Number, 'g', -1, 64)
	case BoolType:
		return strconv.FormatBool(n.Bool)
	case NullType:
		return "null"
	default:
		return ""
	}
}
