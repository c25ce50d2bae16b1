// Package toon provides one-call helpers over the parse, ir and encode
// packages for programs that just want values in and text out.
package toon

import (
	"bytes"
	"errors"

	"github.com/toon-format/go-toon/encode"
	"github.com/toon-format/go-toon/ir"
	"github.com/toon-format/go-toon/parse"
)

// Unmarshal parses TOON text into plain Go values (map[string]any,
// []any, string, int64/float64, bool, nil). Recoverable problems in the
// input are joined into the returned error; the value reflects whatever
// could be parsed and is usable even when err is non-nil.
func Unmarshal(data []byte) (any, error) {
	res, err := parse.Parse(data)
	if err != nil {
		return nil, err
	}
	return ir.ToAny(res.Doc), joined(res)
}

// Marshal renders plain Go values as TOON text.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode.Encode(ir.FromAny(v), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Valid reports whether data parses without a single diagnostic.
func Valid(data []byte) bool {
	ok, res := parse.TryParse(data)
	return ok && res.IsSuccess()
}

// Format re-encodes a document canonically: two-space indentation,
// comma delimiters, source key order. It refuses documents with
// diagnostics, since re-encoding a recovered tree would silently drop
// the broken lines.
func Format(data []byte) ([]byte, error) {
	res, err := parse.Parse(data)
	if err != nil {
		return nil, err
	}
	if !res.IsSuccess() {
		return nil, joined(res)
	}
	var buf bytes.Buffer
	if err := encode.Encode(res.Doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func joined(res *parse.Result) error {
	if res.IsSuccess() {
		return nil
	}
	errs := make([]error, len(res.Errors))
	for i, e := range res.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}
