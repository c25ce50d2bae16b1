package encode

import (
	"errors"

	"github.com/toon-format/go-toon/format"
)

// ErrEncoding wraps failures from the JSON and YAML backends.
var ErrEncoding = errors.New("encoding error")

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

// Indent sets the spaces per nesting level. The default is 2.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// Delimiter sets the cell delimiter for inline arrays and table rows:
// ',' (the default), '|' or '\t'. Non-comma delimiters are written as
// header markers so the output reads back with the same delimiter.
func Delimiter(d byte) EncodeOption {
	return func(es *EncState) {
		switch d {
		case ',', '|', '\t':
			es.delim = d
		}
	}
}

func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
