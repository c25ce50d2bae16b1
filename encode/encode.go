package encode

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/toon-format/go-toon/format"
	"github.com/toon-format/go-toon/ir"
	"github.com/toon-format/go-toon/token"
)

// EncState carries the encoder configuration and the running position
// of one Encode call.
type EncState struct {
	depth  int
	indent int
	delim  byte

	format format.Format

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w in the configured format. TOON is the
// default; JSON and YAML go through the generic representation of the
// tree, so their key order is alphabetic rather than source order.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
		delim:  ',',
	}
	for _, opt := range opts {
		opt(es)
	}
	switch es.format {
	case format.JSONFormat:
		d, err := json.MarshalIndent(ir.ToAny(node), "", strings.Repeat(" ", es.indent))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrEncoding, err)
		}
		d = append(d, '\n')
		_, err = w.Write(d)
		return err
	case format.YAMLFormat:
		d, err := yaml.Marshal(ir.ToAny(node))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrEncoding, err)
		}
		_, err = w.Write(d)
		return err
	}
	return es.encode(node, w)
}

func (es *EncState) encode(node *ir.Node, w io.Writer) error {
	switch node.Type {
	case ir.DocumentType, ir.ObjectType:
		return es.encodeProps(node, w)
	case ir.PropertyType:
		return es.encodeProperty(node, w)
	case ir.ArrayType:
		return es.encodeArray("", node, w)
	case ir.TableType:
		return es.encodeTable("", node, w)
	default:
		// bare scalar root
		if err := writeString(w, es.scalarText(node)); err != nil {
			return err
		}
		return writeString(w, "\n")
	}
}

func (es *EncState) encodeProps(node *ir.Node, w io.Writer) error {
	for _, prop := range node.Props {
		if err := es.encodeProperty(prop, w); err != nil {
			return err
		}
	}
	return nil
}

func (es *EncState) encodeProperty(prop *ir.Node, w io.Writer) error {
	if err := es.writeIndent(w); err != nil {
		return err
	}
	val := prop.Value
	switch {
	case val == nil:
		if err := es.writeKey(w, prop.Key); err != nil {
			return err
		}
		return writeString(w, "\n")
	case val.Type == ir.ArrayType:
		return es.encodeArray(prop.Key, val, w)
	case val.Type == ir.TableType:
		return es.encodeTable(prop.Key, val, w)
	case val.Type == ir.ObjectType:
		if err := es.writeKey(w, prop.Key); err != nil {
			return err
		}
		if err := writeString(w, "\n"); err != nil {
			return err
		}
		es.depth++
		err := es.encodeProps(val, w)
		es.depth--
		return err
	default:
		if err := es.writeKey(w, prop.Key); err != nil {
			return err
		}
		if err := writeString(w, " "); err != nil {
			return err
		}
		return writeString(w, es.scalarText(val)+"\n")
	}
}

// encodeArray writes `key[N]: a,b,c` when every element is a scalar,
// and the expanded dash form otherwise. key is empty for a nested
// array appearing as a list item.
func (es *EncState) encodeArray(key string, node *ir.Node, w io.Writer) error {
	if err := es.writeArrayHeader(w, key, len(node.Values), ""); err != nil {
		return err
	}
	if allScalar(node.Values) {
		if len(node.Values) > 0 {
			if err := writeString(w, " "); err != nil {
				return err
			}
		}
		cells := make([]string, len(node.Values))
		for i, v := range node.Values {
			cells[i] = es.scalarText(v)
		}
		return writeString(w, strings.Join(cells, es.sep())+"\n")
	}
	if err := writeString(w, "\n"); err != nil {
		return err
	}
	es.depth++
	defer func() { es.depth-- }()
	for _, v := range node.Values {
		if err := es.writeIndent(w); err != nil {
			return err
		}
		dash := "- "
		if es.Color != nil {
			dash = es.Color(ir.ArrayType, SepColor, "-") + " "
		}
		if err := writeString(w, dash); err != nil {
			return err
		}
		if err := es.encodeItem(v, w); err != nil {
			return err
		}
	}
	return nil
}

// encodeItem writes one expanded list item after its dash.
func (es *EncState) encodeItem(v *ir.Node, w io.Writer) error {
	switch v.Type {
	case ir.ObjectType:
		if len(v.Props) == 0 {
			return writeString(w, "\n")
		}
		// first field inline after the dash, the rest one level in
		first := v.Props[0]
		switch {
		case first.Value != nil && first.Value.Type == ir.ArrayType:
			if err := es.encodeArray(first.Key, first.Value, w); err != nil {
				return err
			}
		case first.Value != nil && first.Value.Type == ir.TableType:
			if err := es.encodeTable(first.Key, first.Value, w); err != nil {
				return err
			}
		case first.Value != nil && first.Value.Type == ir.ObjectType:
			if err := es.writeKey(w, first.Key); err != nil {
				return err
			}
			if err := writeString(w, "\n"); err != nil {
				return err
			}
			es.depth += 2
			if err := es.encodeProps(first.Value, w); err != nil {
				es.depth -= 2
				return err
			}
			es.depth -= 2
		default:
			if err := es.writeKey(w, first.Key); err != nil {
				return err
			}
			text := "null"
			if first.Value != nil {
				text = es.scalarText(first.Value)
			}
			if err := writeString(w, " "+text+"\n"); err != nil {
				return err
			}
		}
		es.depth++
		err := es.encodeProps(&ir.Node{Type: ir.ObjectType, Props: v.Props[1:]}, w)
		es.depth--
		return err
	case ir.ArrayType:
		return es.encodeArray("", v, w)
	case ir.TableType:
		return es.encodeTable("", v, w)
	default:
		return writeString(w, es.scalarText(v)+"\n")
	}
}

// encodeTable writes `key[N]{f1,f2}:` and one row line per row.
func (es *EncState) encodeTable(key string, node *ir.Node, w io.Writer) error {
	fields := make([]string, len(node.Fields))
	for i, f := range node.Fields {
		fields[i] = es.keyText(f)
	}
	schema := "{" + strings.Join(fields, es.sep()) + "}"
	if err := es.writeArrayHeader(w, key, len(node.Rows), schema); err != nil {
		return err
	}
	if err := writeString(w, "\n"); err != nil {
		return err
	}
	es.depth++
	defer func() { es.depth-- }()
	for _, row := range node.Rows {
		if err := es.writeIndent(w); err != nil {
			return err
		}
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = es.scalarText(v)
		}
		if err := writeString(w, strings.Join(cells, es.sep())+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// writeArrayHeader writes `key[N]` or `key[N|]` plus an optional
// schema and the trailing colon, without the newline.
func (es *EncState) writeArrayHeader(w io.Writer, key string, n int, schema string) error {
	var b strings.Builder
	if key != "" {
		b.WriteString(es.colored(ir.ObjectType, FieldColor, es.keyText(key)))
	}
	b.WriteString(es.colored(ir.ArrayType, SepColor, "["))
	b.WriteString(es.colored(ir.ArrayType, SizeColor, strconv.Itoa(n)))
	switch es.delim {
	case '|':
		b.WriteString(es.colored(ir.ArrayType, SepColor, "|"))
	case '\t':
		b.WriteByte('\t')
	}
	b.WriteString(es.colored(ir.ArrayType, SepColor, "]"))
	if schema != "" {
		b.WriteString(es.colored(ir.TableType, SepColor, schema))
	}
	b.WriteString(es.colored(ir.ObjectType, SepColor, ":"))
	return writeString(w, b.String())
}

// scalarText renders a leaf node as inline TOON text.
func (es *EncState) scalarText(n *ir.Node) string {
	switch n.Type {
	case ir.StringType:
		v := n.String
		if token.NeedsQuote(v) || es.cellUnsafe(v) {
			return es.colored(ir.StringType, ValueColor, token.Quote(v))
		}
		return es.colored(ir.StringType, LiteralColor, v)
	case ir.NumberType:
		if n.Raw != "" {
			return es.colored(ir.NumberType, ValueColor, n.Raw)
		}
		if n.IsInt {
			return es.colored(ir.NumberType, ValueColor, strconv.FormatInt(int64(n.Number), 10))
		}
		return es.colored(ir.NumberType, ValueColor, strconv.FormatFloat(n.Number, 'f', -1, 64))
	case ir.BoolType:
		return es.colored(ir.BoolType, ValueColor, strconv.FormatBool(n.Bool))
	case ir.NullType:
		return es.colored(ir.NullType, ValueColor, "null")
	default:
		// composite where a scalar is required; degrade to null
		return es.colored(ir.NullType, ValueColor, "null")
	}
}

// cellUnsafe reports whether v would split on the active delimiter if
// written bare inside a cell.
func (es *EncState) cellUnsafe(v string) bool {
	return strings.IndexByte(v, es.delim) >= 0
}

func (es *EncState) keyText(k string) string {
	if token.NeedsQuote(k) || strings.IndexByte(k, ' ') >= 0 {
		return token.Quote(k)
	}
	return k
}

func (es *EncState) writeKey(w io.Writer, key string) error {
	k := es.colored(ir.ObjectType, FieldColor, es.keyText(key))
	sep := es.colored(ir.ObjectType, SepColor, ":")
	return writeString(w, k+sep)
}

func (es *EncState) writeIndent(w io.Writer) error {
	return writeString(w, strings.Repeat(strings.Repeat(" ", es.indent), es.depth))
}

func (es *EncState) sep() string {
	s := string(es.delim)
	if es.delim == '\t' {
		return s
	}
	return es.colored(ir.ArrayType, SepColor, s)
}

func (es *EncState) colored(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func allScalar(values []*ir.Node) bool {
	for _, v := range values {
		if !v.Type.IsLeaf() {
			return false
		}
	}
	return true
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}
