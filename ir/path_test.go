package ir_test

import (
	"testing"

	"github.com/toon-format/go-toon/ir"
	"github.com/toon-format/go-toon/parse"
)

func doc(t *testing.T, src string) *ir.Node {
	t.Helper()
	res, err := parse.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return res.Doc
}

func TestFindPathObjects(t *testing.T) {
	d := doc(t, "a:\n  b:\n    c: deep value\n")
	n, ok := ir.FindPath(d, "a.b.c")
	if !ok {
		t.Fatal("a.b.c not found")
	}
	if n.Type != ir.StringType || n.String != "deep value" {
		t.Errorf("got %v %q", n.Type, n.String)
	}
	if _, ok := ir.FindPath(d, "a.b.x"); ok {
		t.Error("a.b.x should not resolve")
	}
	if _, ok := ir.FindPath(d, "a.b.c.d"); ok {
		t.Error("cannot step into a scalar")
	}
}

func TestFindPathRoot(t *testing.T) {
	d := doc(t, "a: 1\n")
	for _, path := range []string{"", "."} {
		n, ok := ir.FindPath(d, path)
		if !ok || n != d {
			t.Errorf("%q should resolve to the document itself", path)
		}
	}
	// a leading dot is tolerated
	if _, ok := ir.FindPath(d, ".a"); !ok {
		t.Error(".a not found")
	}
}

func TestFindPathArrays(t *testing.T) {
	d := doc(t, "nums[3]: 10,20,30\n")
	n, ok := ir.FindPath(d, "nums.1")
	if !ok {
		t.Fatal("nums.1 not found")
	}
	if n.Type != ir.NumberType || n.Number != 20 {
		t.Errorf("got %v %v", n.Type, n.Number)
	}
	for _, bad := range []string{"nums.3", "nums.-1", "nums.x"} {
		if _, ok := ir.FindPath(d, bad); ok {
			t.Errorf("%q should not resolve", bad)
		}
	}
}

func TestFindPathTables(t *testing.T) {
	d := doc(t, "users[2]{id,name}:\n  1,alice\n  2,bob\n")
	n, ok := ir.FindPath(d, "users.1.name")
	if !ok {
		t.Fatal("users.1.name not found")
	}
	if n.String != "bob" {
		t.Errorf("got %q", n.String)
	}
	// a whole row resolves to an object view
	row, ok := ir.FindPath(d, "users.0")
	if !ok || row.Type != ir.ObjectType {
		t.Fatalf("users.0: ok=%v type=%v", ok, row.Type)
	}
	if len(row.Props) != 2 || row.Props[0].Key != "id" {
		t.Errorf("row props: %v", ir.ToAny(row))
	}
}

func TestFindPathTableExtraCells(t *testing.T) {
	// cells past the schema keep positional keys
	d := doc(t, "t[1]{a}:\n  1,2,3\n")
	n, ok := ir.FindPath(d, "t.0.1")
	if !ok {
		t.Fatal("t.0.1 not found")
	}
	if n.Number != 2 {
		t.Errorf("got %v", n.Number)
	}
}

func TestFindPathNil(t *testing.T) {
	if _, ok := ir.FindPath(nil, "a"); ok {
		t.Error("nil node should not resolve")
	}
}
