package debug

import (
	"testing"

	"github.com/toon-format/go-toon/ir"
)

func TestBoolEnv(t *testing.T) {
	cases := []struct {
		val  string
		want bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"0", false},
		{"false", false},
		{"junk", false},
		{"", false},
	}
	for _, c := range cases {
		t.Setenv("TOON_DEBUG_TEST_VAR", c.val)
		if got := boolEnv("TOON_DEBUG_TEST_VAR"); got != c.want {
			t.Errorf("boolEnv(%q) = %v, want %v", c.val, got, c.want)
		}
	}
}

func TestToonString(t *testing.T) {
	doc := ir.FromAny(map[string]any{"a": int64(1)})
	got := Toon{doc}.String()
	if got != "a: 1\n" {
		t.Errorf("got %q", got)
	}
}
