// Package parse turns TOON source into ir document trees.
//
// The parser is total: any byte sequence within the configured limits
// produces a document plus a list of diagnostics, never a bare error.
// Recovery is uniform: when a construct fails, the parser reports it
// and skips to the next line at or below the construct's indentation.
//
// Typical use:
//
//	res, err := parse.Parse(src)
//	if err != nil {
//		// nil source or input over the size limit
//	}
//	for _, e := range res.Errors {
//		fmt.Println(e)
//	}
//	walk(res.Doc)
package parse
