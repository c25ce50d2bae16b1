package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Lex     bool
	Lines   bool
	Scopes  bool
	Recover bool
}

var d *debug

func init() {
	d = &debug{}
	d.Lex = boolEnv("TOON_DEBUG_LEX")
	d.Lines = boolEnv("TOON_DEBUG_LINES")
	d.Scopes = boolEnv("TOON_DEBUG_SCOPES")
	d.Recover = boolEnv("TOON_DEBUG_RECOVER")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Lex() bool {
	return d.Lex
}
func Lines() bool {
	return d.Lines
}
func Scopes() bool {
	return d.Scopes
}
func Recover() bool {
	return d.Recover
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}
