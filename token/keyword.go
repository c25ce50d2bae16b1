package token

// classifyWord maps a complete bare word to its token type. The
// reserved words only count when they form the whole token; quoting
// them yields an ordinary string, handled elsewhere. A word that scans
// entirely as a numeric literal is a number, unless it carries a
// forbidden leading zero, in which case it is reclassified as a string
// right here at emission time.
func classifyWord(d []byte) TokenType {
	switch string(d) {
	case "true":
		return TTrue
	case "false":
		return TFalse
	case "null":
		return TNull
	}
	n, _, leadingZero := number(d)
	if n == len(d) {
		if leadingZero {
			return TString
		}
		return TNumber
	}
	return TLiteral
}

// isWordByte reports whether c may appear inside a bare word. Words end
// at structural punctuation, whitespace, quotes, and comment starts.
func isWordByte(c byte) bool {
	switch c {
	case ':', ',', '|', '[', ']', '{', '}', ' ', '\t', '\n', '\r', '"', '\'', '#':
		return false
	default:
		return true
	}
}
