// Package encode renders ir document trees as TOON text, or as JSON
// or YAML through the generic representation.
//
// # Usage
//
//	res, _ := parse.Parse(src)
//	err := encode.Encode(res.Doc, os.Stdout)
//
//	// pipe-delimited output
//	err = encode.Encode(res.Doc, os.Stdout, encode.Delimiter('|'))
//
//	// JSON
//	err = encode.Encode(res.Doc, os.Stdout, encode.EncodeFormat(format.JSONFormat))
//
// # Related Packages
//
//   - github.com/toon-format/go-toon/ir - document representation
//   - github.com/toon-format/go-toon/parse - parse text to ir
package encode
