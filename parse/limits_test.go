package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/toon-format/go-toon/diag"
	"github.com/toon-format/go-toon/ir"
)

func TestLimitInputSize(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxInputSize = 8
	_, err := Parse([]byte("this is longer than eight bytes"), WithLimits(limits))
	if !errors.Is(err, ErrInputTooLarge) {
		t.Fatalf("got %v, want %v", err, ErrInputTooLarge)
	}
	ok, _ := TryParse([]byte("this is longer than eight bytes"), WithLimits(limits))
	if ok {
		t.Error("TryParse accepted oversized input")
	}
}

func TestLimitNestingDepth(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxNestingDepth = 2
	res := mustParse(t, "a:\n  b:\n    c:\n      d: 1\n", WithLimits(limits))
	if !hasCode(res, diag.CodeDepthExceeded) {
		t.Fatalf("no %s: %v", diag.CodeDepthExceeded, res.Errors)
	}
	// the outer two levels survive
	if _, ok := ir.FindPath(res.Doc, "a.b"); !ok {
		t.Error("a.b lost")
	}
	if _, ok := ir.FindPath(res.Doc, "a.b.c.d"); ok {
		t.Error("d should have been cut off")
	}
}

func TestLimitItemDepth(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxNestingDepth = 1
	res := mustParse(t, "list[2]:\n  - a:\n      b: 1\n  - 2\n", WithLimits(limits))
	if !hasCode(res, diag.CodeDepthExceeded) {
		t.Fatalf("no %s: %v", diag.CodeDepthExceeded, res.Errors)
	}
	arr, _ := ir.FindPath(res.Doc, "list")
	// the cut subtree is dropped, siblings still parse
	if len(arr.Values) != 2 {
		t.Fatalf("got %d elements, want 2", len(arr.Values))
	}
	if _, ok := ir.FindPath(res.Doc, "list.0.a.b"); ok {
		t.Error("b should have been cut off")
	}
	if arr.Values[1].Type != ir.NumberType {
		t.Errorf("sibling is %s, want %s", arr.Values[1].Type, ir.NumberType)
	}
}

func TestLimitItemDepthNullPlaceholder(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxNestingDepth = 1
	res := mustParse(t, "list[1]:\n  - sub[1]:\n      - 1\n", WithLimits(limits))
	if !hasCode(res, diag.CodeDepthExceeded) {
		t.Fatalf("no %s: %v", diag.CodeDepthExceeded, res.Errors)
	}
	inner, ok := ir.FindPath(res.Doc, "list.0.sub")
	if !ok {
		t.Fatal("list.0.sub not found")
	}
	if len(inner.Values) != 1 || inner.Values[0].Type != ir.NullType {
		t.Errorf("cut item should be a null placeholder: %v", ir.ToAny(inner))
	}
}

func TestLimitArraySize(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxArraySize = 2
	res := mustParse(t, "items[5]: 1,2,3,4,5\n", WithLimits(limits))
	if !hasCode(res, diag.CodeArrayTooLarge) {
		t.Fatalf("no %s: %v", diag.CodeArrayTooLarge, res.Errors)
	}
	arr, _ := ir.FindPath(res.Doc, "items")
	if len(arr.Values) != 2 {
		t.Errorf("got %d elements, want 2", len(arr.Values))
	}
}

func TestLimitTokenCount(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxTokenCount = 8
	res := mustParse(t, "a: 1\nb: 2\nc: 3\n", WithLimits(limits))
	if !hasCode(res, diag.CodeTokenLimit) {
		t.Fatalf("no %s: %v", diag.CodeTokenLimit, res.Errors)
	}
	// whatever was lexed still parses
	if _, ok := ir.FindPath(res.Doc, "a"); !ok {
		t.Error("a lost in truncated parse")
	}
}

func TestLimitStringLength(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxStringLength = 4
	res := mustParse(t, "a: \"abcdefgh\"\n", WithLimits(limits))
	if !hasCode(res, diag.CodeStringTooLong) {
		t.Fatalf("no %s: %v", diag.CodeStringTooLong, res.Errors)
	}
	n, _ := ir.FindPath(res.Doc, "a")
	if n.String != "abcdefgh" {
		t.Errorf("oversized literal not kept: %q", n.String)
	}
}

func TestUnlimited(t *testing.T) {
	var b strings.Builder
	b.WriteString("top:\n")
	indent := "  "
	for i := 0; i < 150; i++ {
		b.WriteString(strings.Repeat(indent, i+1))
		b.WriteString("k:\n")
	}
	res := mustParse(t, b.String(), WithLimits(UnlimitedLimits()))
	if hasCode(res, diag.CodeDepthExceeded) {
		t.Errorf("depth limit applied under UnlimitedLimits: %v", res.Errors)
	}
}
