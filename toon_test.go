package toon

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/toon-format/go-toon/diag"
)

func TestUnmarshal(t *testing.T) {
	v, err := Unmarshal([]byte("name: Ada\nnums[2]: 1,2\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"name": "Ada",
		"nums": []any{int64(1), int64(2)},
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestUnmarshalRecovered(t *testing.T) {
	v, err := Unmarshal([]byte("name: Ada\nage 30\ncity: NYC\n"))
	if err == nil {
		t.Fatal("expected a joined diagnostic error")
	}
	if !strings.Contains(err.Error(), string(diag.CodeMissingColon)) {
		t.Errorf("error should carry the code: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok || m["name"] != "Ada" || m["city"] != "NYC" {
		t.Errorf("recovered value: %v", v)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	in := map[string]any{
		"a":    int64(1),
		"list": []any{"x", "y z"},
	}
	data, err := Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("%s: %v", data, err)
	}
	if diff := cmp.Diff(in, back); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestValid(t *testing.T) {
	if !Valid([]byte("a: 1\n")) {
		t.Error("clean document")
	}
	if Valid([]byte("a[2]: 1\n")) {
		t.Error("size mismatch should not be valid")
	}
	if Valid(nil) {
		t.Error("nil input")
	}
}

func TestFormat(t *testing.T) {
	got, err := Format([]byte("users[1]{id,name}:\n  1,ann\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := "users[1]{id,name}:\n  1,ann\n"
	if string(got) != want {
		t.Errorf("got %q want %q", got, want)
	}
	if _, err := Format([]byte("broken [\n")); err == nil {
		t.Error("broken input should not format")
	}
}
