package parse

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/toon-format/go-toon/diag"
	"github.com/toon-format/go-toon/ir"
)

func mustParse(t *testing.T, in string, opts ...ParseOption) *Result {
	t.Helper()
	res, err := Parse([]byte(in), opts...)
	if err != nil {
		t.Fatalf("Parse(%q): %v", in, err)
	}
	if res.Doc == nil {
		t.Fatalf("Parse(%q): nil document", in)
	}
	return res
}

func codesOf(res *Result) []diag.Code {
	var cs []diag.Code
	for _, e := range res.Errors {
		cs = append(cs, e.Code)
	}
	return cs
}

func hasCode(res *Result, c diag.Code) bool {
	for _, e := range res.Errors {
		if e.Code == c {
			return true
		}
	}
	return false
}

func TestParseBasic(t *testing.T) {
	res := mustParse(t, "name: John\nage: 30\nactive: true\nnotes: null\n")
	if !res.IsSuccess() {
		t.Fatalf("errors: %v", res.Errors)
	}
	want := map[string]any{
		"name":   "John",
		"age":    int64(30),
		"active": true,
		"notes":  nil,
	}
	if d := cmp.Diff(want, ir.ToAny(res.Doc)); d != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", d)
	}
}

func TestParseResilience(t *testing.T) {
	res := mustParse(t, "name: John\nage 30\ncity: NYC\n")
	if len(res.Errors) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(res.Errors), res.Errors)
	}
	e := res.Errors[0]
	if e.Code != diag.CodeMissingColon {
		t.Errorf("got %s, want %s", e.Code, diag.CodeMissingColon)
	}
	if e.Line != 1 {
		t.Errorf("error on line %d, want 1", e.Line)
	}
	want := map[string]any{"name": "John", "city": "NYC"}
	if d := cmp.Diff(want, ir.ToAny(res.Doc)); d != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", d)
	}
}

func TestParseMultiWordScalar(t *testing.T) {
	res := mustParse(t, "city: New York City\n")
	if !res.IsSuccess() {
		t.Fatalf("errors: %v", res.Errors)
	}
	n, ok := ir.FindPath(res.Doc, "city")
	if !ok {
		t.Fatal("city not found")
	}
	if n.Type != ir.StringType || n.String != "New York City" {
		t.Errorf("got %s %q", n.Type, n.String)
	}
}

func TestParseSizeMismatch(t *testing.T) {
	tests := []struct {
		in      string
		wantLen int
		sub     string
	}{
		{"items[3]: a,b\n", 2, "missing 1"},
		{"items[1]: a,b\n", 2, "1 extra"},
		{"items[2]: a,b\n", 2, ""},
	}
	for _, tt := range tests {
		res := mustParse(t, tt.in)
		arr, ok := ir.FindPath(res.Doc, "items")
		if !ok {
			t.Fatalf("%q: items not found", tt.in)
		}
		if len(arr.Values) != tt.wantLen {
			t.Errorf("%q: got %d elements, want %d", tt.in, len(arr.Values), tt.wantLen)
		}
		if tt.sub == "" {
			if !res.IsSuccess() {
				t.Errorf("%q: unexpected errors %v", tt.in, res.Errors)
			}
			continue
		}
		if !hasCode(res, diag.CodeArraySizeMismatch) {
			t.Errorf("%q: no %s: %v", tt.in, diag.CodeArraySizeMismatch, res.Errors)
			continue
		}
		found := false
		for _, e := range res.Errors {
			if e.Code == diag.CodeArraySizeMismatch && contains(e.Message, tt.sub) {
				found = true
			}
		}
		if !found {
			t.Errorf("%q: no message containing %q: %v", tt.in, tt.sub, res.Errors)
		}
	}
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

func TestParseLeadingZero(t *testing.T) {
	res := mustParse(t, "a: 05\nb: 0\nc: 0.5\nd: -0\n")
	if !res.IsSuccess() {
		t.Fatalf("errors: %v", res.Errors)
	}
	want := map[string]any{
		"a": "05",
		"b": int64(0),
		"c": 0.5,
		"d": int64(0),
	}
	if d := cmp.Diff(want, ir.ToAny(res.Doc)); d != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", d)
	}
}

func TestParseEscapes(t *testing.T) {
	res := mustParse(t, "msg: \"Line1\\nLine2\"\n")
	if !res.IsSuccess() {
		t.Fatalf("errors: %v", res.Errors)
	}
	n, _ := ir.FindPath(res.Doc, "msg")
	if n.String != "Line1\nLine2" {
		t.Errorf("got %q", n.String)
	}

	res = mustParse(t, "msg: \"Hello\\xWorld\"\n")
	if !hasCode(res, diag.CodeInvalidEscape) {
		t.Fatalf("no %s: %v", diag.CodeInvalidEscape, res.Errors)
	}
	n, _ = ir.FindPath(res.Doc, "msg")
	if n.String != `Hello\xWorld` {
		t.Errorf("got %q", n.String)
	}
}

func TestParseNullAndObject(t *testing.T) {
	res := mustParse(t, "a:\nb:\n  c: 1\n")
	if !res.IsSuccess() {
		t.Fatalf("errors: %v", res.Errors)
	}
	a, _ := ir.FindPath(res.Doc, "a")
	if a.Type != ir.NullType {
		t.Errorf("a: got %s, want %s", a.Type, ir.NullType)
	}
	b, _ := ir.FindPath(res.Doc, "b")
	if b.Type != ir.ObjectType || len(b.Props) != 1 {
		t.Errorf("b: got %s with %d props", b.Type, len(b.Props))
	}
}

func TestParseExpandedArray(t *testing.T) {
	res := mustParse(t, `list[4]:
  - 1
  - two words
  - name: n
    age: 3
  -
`)
	if !res.IsSuccess() {
		t.Fatalf("errors: %v", res.Errors)
	}
	want := map[string]any{
		"list": []any{
			int64(1),
			"two words",
			map[string]any{"name": "n", "age": int64(3)},
			nil,
		},
	}
	if d := cmp.Diff(want, ir.ToAny(res.Doc)); d != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", d)
	}
}

func TestParseInlineContinuation(t *testing.T) {
	res := mustParse(t, "items[5]: 1,2\n  3,4\n  5\n")
	if !res.IsSuccess() {
		t.Fatalf("errors: %v", res.Errors)
	}
	arr, _ := ir.FindPath(res.Doc, "items")
	if len(arr.Values) != 5 {
		t.Errorf("got %d elements, want 5", len(arr.Values))
	}
}

func TestParseDelimiters(t *testing.T) {
	res := mustParse(t, "items[3|]: a|b|c\n")
	if !res.IsSuccess() {
		t.Fatalf("errors: %v", res.Errors)
	}
	arr, _ := ir.FindPath(res.Doc, "items")
	if len(arr.Values) != 3 {
		t.Fatalf("got %d elements, want 3", len(arr.Values))
	}
	// comma is content under a pipe scope
	res = mustParse(t, "items[2|]: a,b|c\n")
	if !res.IsSuccess() {
		t.Fatalf("errors: %v", res.Errors)
	}
	arr, _ = ir.FindPath(res.Doc, "items")
	if arr.Values[0].String != "a,b" {
		t.Errorf("got %q, want %q", arr.Values[0].String, "a,b")
	}
}

func TestParseDelimiterInheritance(t *testing.T) {
	res := mustParse(t, `outer[2|]:
  - inner[2]: x|y
  - inner[2]: z|w
`)
	if !res.IsSuccess() {
		t.Fatalf("errors: %v", res.Errors)
	}
	n, ok := ir.FindPath(res.Doc, "outer.0.inner")
	if !ok {
		t.Fatal("outer.0.inner not found")
	}
	if len(n.Values) != 2 || n.Values[0].String != "x" {
		t.Errorf("inherited delimiter not applied: %v", ir.ToAny(n))
	}

	// plain objects pass the active delimiter through
	res = mustParse(t, `outer[1|]:
  - obj:
      inner[2]: x|y
`)
	if !res.IsSuccess() {
		t.Fatalf("errors: %v", res.Errors)
	}
	n, ok = ir.FindPath(res.Doc, "outer.0.obj.inner")
	if !ok {
		t.Fatal("outer.0.obj.inner not found")
	}
	if len(n.Values) != 2 {
		t.Errorf("got %d elements, want 2", len(n.Values))
	}
}

func TestParseWrongDelimiter(t *testing.T) {
	res := mustParse(t, "items[3]: a|b|c\n")
	if !hasCode(res, diag.CodeMixedDelimiters) {
		t.Fatalf("no %s: %v", diag.CodeMixedDelimiters, res.Errors)
	}
	arr, _ := ir.FindPath(res.Doc, "items")
	if len(arr.Values) != 3 {
		t.Errorf("resplit got %d elements, want 3", len(arr.Values))
	}
}

func TestParseTable(t *testing.T) {
	res := mustParse(t, `users[2]{id,name}:
  1,alice
  2,bob
`)
	if !res.IsSuccess() {
		t.Fatalf("errors: %v", res.Errors)
	}
	tbl, _ := ir.FindPath(res.Doc, "users")
	if tbl.Type != ir.TableType {
		t.Fatalf("got %s, want %s", tbl.Type, ir.TableType)
	}
	want := []any{
		map[string]any{"id": int64(1), "name": "alice"},
		map[string]any{"id": int64(2), "name": "bob"},
	}
	if d := cmp.Diff(want, ir.ToAny(tbl)); d != "" {
		t.Errorf("table mismatch (-want +got):\n%s", d)
	}
	name, ok := ir.FindPath(res.Doc, "users.1.name")
	if !ok || name.String != "bob" {
		t.Errorf("users.1.name: got %v %q", ok, name.String)
	}
}

func TestParseTableErrors(t *testing.T) {
	res := mustParse(t, `users[3]{id,name}:
  1,alice
  2,bob
`)
	if !hasCode(res, diag.CodeTableSizeMismatch) {
		t.Errorf("no %s: %v", diag.CodeTableSizeMismatch, res.Errors)
	}

	res = mustParse(t, `users[2]{id,name}:
  1,alice,extra
  2
`)
	cs := codesOf(res)
	n := 0
	for _, c := range cs {
		if c == diag.CodeRowFieldMismatch {
			n++
		}
	}
	if n != 2 {
		t.Errorf("got %d %s, want 2: %v", n, diag.CodeRowFieldMismatch, res.Errors)
	}
	tbl, _ := ir.FindPath(res.Doc, "users")
	// ragged rows are kept as parsed
	if len(tbl.Rows) != 2 || len(tbl.Rows[0]) != 3 || len(tbl.Rows[1]) != 1 {
		t.Errorf("rows kept wrong: %v", ir.ToAny(tbl))
	}
}

func TestParseBadIndentation(t *testing.T) {
	res := mustParse(t, "a: 1\n    b: 2\nc: 3\n")
	if !hasCode(res, diag.CodeBadIndentation) {
		t.Fatalf("no %s: %v", diag.CodeBadIndentation, res.Errors)
	}
	if _, ok := ir.FindPath(res.Doc, "a"); !ok {
		t.Error("a lost")
	}
	if _, ok := ir.FindPath(res.Doc, "c"); !ok {
		t.Error("c lost")
	}
}

func TestParseMissingBracket(t *testing.T) {
	res := mustParse(t, "arr[3: a,b\nok: 1\n")
	if !hasCode(res, diag.CodeMissingBracket) {
		t.Fatalf("no %s: %v", diag.CodeMissingBracket, res.Errors)
	}
	if _, ok := ir.FindPath(res.Doc, "ok"); !ok {
		t.Error("recovery lost the following property")
	}
}

func TestParseQuotedKey(t *testing.T) {
	res := mustParse(t, "\"a key\": 1\n")
	if !res.IsSuccess() {
		t.Fatalf("errors: %v", res.Errors)
	}
	if _, ok := ir.FindPath(res.Doc, "a key"); !ok {
		t.Error("quoted key not found")
	}
}

func TestParseDuplicateKeys(t *testing.T) {
	res := mustParse(t, "a: 1\na: 2\n")
	if !res.IsSuccess() {
		t.Fatalf("errors: %v", res.Errors)
	}
	// both occurrences are in the tree; lookup sees the last
	if len(res.Doc.Props) != 2 {
		t.Fatalf("got %d props, want 2", len(res.Doc.Props))
	}
	n, _ := ir.FindPath(res.Doc, "a")
	if n.Type != ir.NumberType || n.Number != 2 {
		t.Errorf("got %v, want 2", n.Number)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	for _, in := range []string{"", "   \n\t\n", "# only comments\n"} {
		res := mustParse(t, in)
		if !hasCode(res, diag.CodeEmptyDocument) {
			t.Errorf("%q: no %s: %v", in, diag.CodeEmptyDocument, res.Errors)
		}
		if len(res.Doc.Props) != 0 {
			t.Errorf("%q: got %d props", in, len(res.Doc.Props))
		}
	}
}

func TestParseNilSource(t *testing.T) {
	if _, err := Parse(nil); err != ErrNoSource {
		t.Errorf("got %v, want %v", err, ErrNoSource)
	}
	ok, res := TryParse(nil)
	if ok || res != nil {
		t.Errorf("TryParse(nil) = %v, %v", ok, res)
	}
}

func TestParseComments(t *testing.T) {
	res := mustParse(t, "# header\na: 1 # trailing\n// also a comment\nb: 2\n")
	if !res.IsSuccess() {
		t.Fatalf("errors: %v", res.Errors)
	}
	want := map[string]any{"a": int64(1), "b": int64(2)}
	if d := cmp.Diff(want, ir.ToAny(res.Doc)); d != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", d)
	}
}

func TestParseSpans(t *testing.T) {
	res := mustParse(t, "a: 1\nb: two\n")
	b, _ := ir.FindPath(res.Doc, "b")
	if b.Span.Start.Offset != 8 || b.Span.End.Offset != 11 {
		t.Errorf("value span %v, want offsets 8..11", b.Span)
	}
	if b.Span.Start.Line != 1 {
		t.Errorf("value on line %d, want 1", b.Span.Start.Line)
	}
}

func TestParseMisplacedMarker(t *testing.T) {
	res := mustParse(t, "items[|3]: a|b|c\n")
	n := 0
	for _, e := range res.Errors {
		if e.Code == diag.CodeMisplacedMarker {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("want one %s, got %v", diag.CodeMisplacedMarker, codesOf(res))
	}
	arr, ok := ir.FindPath(res.Doc, "items")
	if !ok {
		t.Fatal("items not found")
	}
	if len(arr.Values) != 3 {
		t.Errorf("misplaced marker should still select the delimiter: %v",
			ir.ToAny(arr))
	}
}

// The no-progress codes are a terminal backstop: every recovery path
// consumes at least one line before resynchronizing, so no input should
// ever reach them. Pin both halves of that on inputs built to stall a
// parser that forgot to consume.
func TestParseNoProgressGuard(t *testing.T) {
	inputs := []string{
		"[",
		"]:",
		": :",
		"a[|]: x",
		"a[1|:",
		"{}:",
		"a:{b\n  c",
		"- - -\n",
		"\x00\x01\x02",
		"a[2]{:\n  1",
		"x[\nx[\nx[",
	}
	for _, in := range inputs {
		res := mustParse(t, in)
		if res.Doc == nil {
			t.Fatalf("%q: nil document", in)
		}
		if hasCode(res, diag.CodeNoProgress) {
			t.Errorf("%q: backstop fired; a recovery path did not consume its line", in)
		}
	}
}
