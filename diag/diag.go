// Package diag defines the diagnostic records produced by tokenizing and
// parsing TOON documents.
//
// Every problem detected in a source document is recorded as an Error
// carrying a stable Code for programmatic filtering, a human readable
// message, and the exact source span of the offending text. Diagnostics
// never abort a parse; they accumulate in encounter order.
package diag

import "fmt"

// Code identifies a class of diagnostic. Codes are stable across
// releases and grouped by component:
//
//	TOON1xxx  lexer
//	TOON2xxx  parser structure
//	TOON3xxx  size validation
//	TOON4xxx  delimiters
//	TOON5xxx  indentation
//	TOON9xxx  internal guards
type Code string

const (
	CodeUnterminatedString Code = "TOON1001"
	CodeInvalidEscape      Code = "TOON1002"
	CodeStringTooLong      Code = "TOON1003"
	CodeTokenLimit         Code = "TOON1004"
	CodeInvalidToken       Code = "TOON1005"

	CodeMissingColon    Code = "TOON2001"
	CodeMissingBracket  Code = "TOON2002"
	CodeMissingSchema   Code = "TOON2003"
	CodeExpectedValue   Code = "TOON2004"
	CodeUnexpectedToken Code = "TOON2005"
	CodeEmptyDocument   Code = "TOON2006"

	CodeArraySizeMismatch Code = "TOON3001"
	CodeTableSizeMismatch Code = "TOON3002"
	CodeRowFieldMismatch  Code = "TOON3003"
	CodeArrayTooLarge     Code = "TOON3004"

	CodeMixedDelimiters Code = "TOON4001"
	CodeMisplacedMarker Code = "TOON4002"

	CodeBadIndentation Code = "TOON5001"

	CodeNoProgress    Code = "TOON9001"
	CodeDepthExceeded Code = "TOON9002"
)

// Error is one recorded problem. Offset and Length delimit the span in
// bytes; Line and Col are zero based and derived from the same span.
// Errors are immutable once recorded.
type Error struct {
	Code    Code
	Message string
	Offset  int
	Length  int
	Line    int
	Col     int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s at %d:%d", e.Code, e.Message, e.Line+1, e.Col+1)
}

// Newf builds an Error at the given span.
func Newf(code Code, off, length, line, col int, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Offset:  off,
		Length:  length,
		Line:    line,
		Col:     col,
	}
}

// List accumulates diagnostics in encounter order.
type List struct {
	Errs []*Error
}

func (l *List) Add(e *Error) {
	l.Errs = append(l.Errs, e)
}

func (l *List) Addf(code Code, off, length, line, col int, format string, args ...any) {
	l.Add(Newf(code, off, length, line, col, format, args...))
}

func (l *List) Empty() bool {
	return len(l.Errs) == 0
}
